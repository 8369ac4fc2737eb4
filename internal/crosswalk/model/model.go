package model

// Confidence tiers, ordered from strongest to weakest. The display strings
// are part of the output contract (reports and summary counts key off them).
type Tier string

const (
	TierHigh    Tier = "Direct line item (High confidence)"
	TierBestFit Tier = "Best-fit (Functional equivalent)"
	TierReview  Tier = "No clear equivalent (Review required)"
)

// Matching method tags carried on every mapping record.
type Method string

const (
	MethodNone  Method = "None"
	MethodRule  Method = "Rule-based"
	MethodFuzzy Method = "Fuzzy matching"
)

// SourceEntry is one EnableNSW category/subcategory row to be mapped.
type SourceEntry struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
}

// CatalogEntry is one priced, coded NDIS support item.
type CatalogEntry struct {
	ItemCode    string  `json:"item_code"`
	ItemName    string  `json:"item_name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
	SourceLabel string  `json:"source_label"`
}

// Rule is one keyword-trigger mapping rule. Rules are evaluated in slice
// order and the first rule with any keyword hit wins, so declaration order
// is part of the contract.
type Rule struct {
	Name           string
	Keywords       []string
	TargetCategory string
	Tier           Tier
}

// RuleMatch is the outcome of a successful rule evaluation.
type RuleMatch struct {
	RuleName        string
	TargetCategory  string
	Tier            Tier
	KeywordsMatched []string
	Score           float64
}

// Candidate is one scored approximate-match candidate.
type Candidate struct {
	Index       int     `json:"catalog_index"`
	Score       float64 `json:"score"`
	MatchedText string  `json:"matched_text"`
}

// MappingRecord is the crosswalk outcome for a single source entry. The
// json tags are the stable column names consumed by the report renderer.
type MappingRecord struct {
	EnableNSWCategory    string   `json:"EnableNSW_Category"`
	EnableNSWSubcategory string   `json:"EnableNSW_Subcategory"`
	EnableNSWDescription string   `json:"EnableNSW_Description"`
	NDISItemCode         string   `json:"NDIS_Support_Item_Number"`
	NDISItemName         string   `json:"NDIS_Support_Item_Name"`
	NDISCategory         string   `json:"NDIS_Category"`
	NDISDescription      string   `json:"NDIS_Description"`
	NDISUnitPrice        *float64 `json:"NDIS_Unit_Price"`
	NDISSourceTable      string   `json:"NDIS_Source_Table"`
	Confidence           Tier     `json:"Mapping_Confidence"`
	MatchScore           float64  `json:"Match_Score"`
	Method               Method   `json:"Matching_Method"`
	KeywordsMatched      []string `json:"Keywords_Matched"`
	RepairCode           string   `json:"Repair_Maintenance_Code"`
}

// Mapped reports whether the record was bound to a catalog item.
func (r MappingRecord) Mapped() bool { return r.NDISItemCode != "" }

// CategorySummary is the per-source-category rollup.
type CategorySummary struct {
	Category       string `json:"EnableNSW_Category"`
	Total          int    `json:"Total_Subcategories"`
	Mapped         int    `json:"Mapped_Items"`
	MappingRate    string `json:"Mapping_Rate"`
	NDISCategories string `json:"NDIS_Categories"`
	HighConfidence int    `json:"High_Confidence"`
	BestFit        int    `json:"Best_Fit"`
	ReviewRequired int    `json:"Review_Required"`
}

// Options is the per-run configuration surface.
type Options struct {
	Threshold          int  `json:"confidence_threshold"` // fuzzy acceptance score, 60..95
	IncludeRepairCodes bool `json:"include_repair_codes"`
}

// Metadata describes a completed run.
type Metadata struct {
	TotalItems          int    `json:"total_items"`
	MappedItems         int    `json:"mapped_items"`
	AnalysisDate        string `json:"analysis_date"`
	ConfidenceThreshold int    `json:"confidence_threshold"`
}

// Result is the full crosswalk output.
type Result struct {
	Records []MappingRecord   `json:"crosswalk"`
	Summary []CategorySummary `json:"pivot_summary"`
	Meta    Metadata          `json:"metadata"`
	Opts    Options           `json:"options"`
}
