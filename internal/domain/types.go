package domain

// RuleFragment is the atomic indexed unit: one flattened line of rule text
// tagged with the document it came from.
type RuleFragment struct {
	Source string
	Text   string
}

// OutfitItem describes a single garment by its classification and free-text
// attributes. All fields are optional; empty fields are skipped when the
// item is rendered into a query string.
type OutfitItem struct {
	GeneralCategory  string `json:"general_category"`
	SpecificCategory string `json:"specific_category,omitempty"`
	CustomCategory   string `json:"custom_category,omitempty"`
	Tags             string `json:"tags,omitempty"`
	Colors           string `json:"colors,omitempty"`
}

// BreakdownEntry records the contribution of one retrieved rule fragment to
// the total score. Fragments below the relevance threshold are kept with a
// zero score so the caller can see everything that was considered.
type BreakdownEntry struct {
	Criterion    string  `json:"criterion"`
	Score        int     `json:"score"`
	RuleCitation string  `json:"rule_citation"`
	Similarity   float64 `json:"similarity"`
}

// ScoreResult is the outcome of semantic outfit scoring. TotalScore is
// always within [1, 100].
type ScoreResult struct {
	TotalScore int              `json:"total_score"`
	Breakdown  []BreakdownEntry `json:"breakdown"`
	Critique   string           `json:"critique"`
}
