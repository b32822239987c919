package types

// Suggestion is a discrete AI-proposed change the user may accept or ignore
// when refining a plan. IDs are unique within one plan version.
type Suggestion struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"` // feature|design|tech|monetization|other
	Selected    bool   `json:"selected"`
	Rank        *int   `json:"rank,omitempty"`
}

// PlanContent is the structured document stored on every plan version.
// PlanText is markdown and may embed fenced diagram blocks.
type PlanContent struct {
	PlanText    string       `json:"planText"`
	Suggestions []Suggestion `json:"suggestions"`
}

type TargetAudience struct {
	Description  string   `json:"description"`
	Demographics []string `json:"demographics,omitempty"`
}

type Competitor struct {
	Name       string   `json:"name"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// ResearchData holds the market findings synthesized once at initial plan
// creation and carried forward across refinements.
type ResearchData struct {
	TargetAudience         TargetAudience `json:"targetAudience"`
	CompetitorAnalysis     []Competitor   `json:"competitorAnalysis,omitempty"`
	Keywords               []string       `json:"keywords,omitempty"`
	TechnologyTrends       []string       `json:"technologyTrends,omitempty"`
	APIIntegrations        []string       `json:"apiIntegrations,omitempty"`
	UniqueValueProposition string         `json:"uniqueValueProposition,omitempty"`
	MonetizationStrategies []string       `json:"monetizationStrategies,omitempty"`
}

type PromptItem struct {
	Title      string `json:"title"`
	PromptText string `json:"promptText"`
}

// ImplementationPrompts maps a category name ("frontend", "backend",
// "database", ...) to an ordered prompt list.
type ImplementationPrompts map[string][]PromptItem
