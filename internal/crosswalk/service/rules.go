package service

import (
	"strings"

	"github.com/stu2454/enableNSWmapping/internal/crosswalk/model"
)

// ruleMatchScore is the fixed score reported for rule-based matches.
const ruleMatchScore = 95

// DefaultRules returns the built-in EnableNSW → NDIS mapping rules. The
// slice order is load-bearing: evaluation stops at the first rule with any
// keyword hit (FIRST_MATCH policy), so reordering changes results.
func DefaultRules() []model.Rule {
	return []model.Rule{
		// Personal Mobility
		{
			Name:           "manual wheelchair",
			Keywords:       []string{"manual", "wheelchair", "push"},
			TargetCategory: "Personal Mobility",
			Tier:           model.TierHigh,
		},
		{
			Name:           "power wheelchair",
			Keywords:       []string{"power", "electric", "motorised", "wheelchair"},
			TargetCategory: "Personal Mobility",
			Tier:           model.TierHigh,
		},
		{
			Name:           "mobility scooter",
			Keywords:       []string{"scooter", "mobility"},
			TargetCategory: "Personal Mobility",
			Tier:           model.TierHigh,
		},
		{
			Name:           "walking frame",
			Keywords:       []string{"walking frame", "walker", "rollator"},
			TargetCategory: "Personal Mobility",
			Tier:           model.TierHigh,
		},

		// Communication
		{
			Name:           "speech device",
			Keywords:       []string{"speech", "communication", "voice", "aac"},
			TargetCategory: "Communication",
			Tier:           model.TierHigh,
		},
		{
			Name:           "hearing aid",
			Keywords:       []string{"hearing", "audio", "amplification"},
			TargetCategory: "Hearing",
			Tier:           model.TierHigh,
		},

		// Vision
		{
			Name:           "magnifier",
			Keywords:       []string{"magnify", "vision", "low vision", "sight"},
			TargetCategory: "Vision",
			Tier:           model.TierHigh,
		},
		{
			Name:           "braille",
			Keywords:       []string{"braille", "tactile"},
			TargetCategory: "Vision",
			Tier:           model.TierHigh,
		},

		// Daily Living
		{
			Name:           "bathroom aid",
			Keywords:       []string{"bathroom", "toilet", "shower", "bath"},
			TargetCategory: "Daily Living",
			Tier:           model.TierBestFit,
		},
		{
			Name:           "kitchen aid",
			Keywords:       []string{"kitchen", "cooking", "dining"},
			TargetCategory: "Daily Living",
			Tier:           model.TierBestFit,
		},

		// Seating and Positioning
		{
			Name:           "cushion",
			Keywords:       []string{"cushion", "seating", "positioning"},
			TargetCategory: "Seating and Positioning",
			Tier:           model.TierHigh,
		},
	}
}

// matchRules evaluates the rules in order against the normalized
// subcategory+description text. The first rule with at least one keyword
// present wins; keywords are reported in the rule's declared order. A nil
// return means no rule fired, which is a normal outcome.
func matchRules(rules []model.Rule, subcategory, description string) *model.RuleMatch {
	text := Normalize(subcategory + " " + description)
	if text == "" {
		return nil
	}
	for _, rule := range rules {
		var found []string
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				found = append(found, kw)
			}
		}
		if len(found) > 0 {
			return &model.RuleMatch{
				RuleName:        rule.Name,
				TargetCategory:  rule.TargetCategory,
				Tier:            rule.Tier,
				KeywordsMatched: found,
				Score:           ruleMatchScore,
			}
		}
	}
	return nil
}
