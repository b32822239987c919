package entities

import "time"

const (
	PlanTypeInitial = "INITIAL"
	PlanTypeRefined = "REFINED"
)

// Plan is one immutable version of a project's generated plan. Rows are
// append-only: only the two derived-prompt cache columns are ever written
// after creation.
type Plan struct {
	PlanID    uint   `gorm:"primaryKey" json:"plan_id"`
	ProjectID uint   `json:"project_id" gorm:"index;uniqueIndex:idx_project_version,priority:1"`
	Version   int    `json:"version" gorm:"uniqueIndex:idx_project_version,priority:2"`
	PlanType  string `json:"plan_type"` // INITIAL|REFINED

	// Serialized plan/types.PlanContent and plan/types.ResearchData.
	ContentJSON  string `json:"content_json"`
	ResearchJSON string `json:"research_json"`

	// Free-text feedback that triggered this version; nil for INITIAL.
	FeedbackText *string `json:"feedback_text,omitempty"`

	// Lazily computed caches, nil until first derivation.
	PromptsJSON   *string `json:"prompts_json,omitempty"`
	OneShotPrompt *string `json:"one_shot_prompt,omitempty"`

	CreatedAt time.Time
}

const ActivityPlanVersionCreated = "PLAN_VERSION_CREATED"

// Activity is an append-only audit record written as a side effect of plan
// operations. Never updated, never deleted except via project cascade.
type Activity struct {
	ActivityID uint   `gorm:"primaryKey" json:"activity_id"`
	Type       string `json:"type"`
	UserID     string `json:"user_id" gorm:"index"`
	ProjectID  uint   `json:"project_id" gorm:"index"`
	PlanID     *uint  `json:"plan_id,omitempty"`
	Details    string `json:"details"`
	CreatedAt  time.Time
}
