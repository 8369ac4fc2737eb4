package service

import "github.com/stu2454/enableNSWmapping/internal/crosswalk/model"

// classify maps a match score to a confidence tier. Rule-based matches are
// classified by the rule itself, not by score.
func classify(score float64, ruleBased bool) model.Tier {
	switch {
	case ruleBased:
		return model.TierHigh
	case score >= 90:
		return model.TierHigh
	case score >= 75:
		return model.TierBestFit
	default:
		return model.TierReview
	}
}
