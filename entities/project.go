package entities

import "time"

type Project struct {
	ProjectID      uint      `gorm:"primaryKey" json:"project_id"`
	UserID         string    `json:"user_id" gorm:"index"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	TargetAudience string    `json:"target_audience"`
	KeyGoals       string    `json:"key_goals"`
	CodeEditor     string    `json:"code_editor"` // cursor|windsurf|vscode|other
	Status         string    `json:"status"`      // in-progress|completed

	CreatedAt time.Time
	UpdatedAt time.Time
}
