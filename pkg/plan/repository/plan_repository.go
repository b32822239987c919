package repository

import (
	"errors"
	"time"

	"webplanner/entities"
)

var (
	ErrNotFound = errors.New("plan version not found")
	ErrConflict = errors.New("plan version number conflict")
)

type VersionMeta struct {
	PlanID    uint      `json:"plan_id"`
	Version   int       `json:"version"`
	PlanType  string    `json:"plan_type"`
	CreatedAt time.Time `json:"created_at"`
}

// PlanRepository is the append-only store of plan versions. Versions are
// immutable after creation except the two derived-prompt caches.
type PlanRepository interface {
	// CreateInitial writes version 1 for a project; ErrConflict if a version
	// 1 already exists.
	CreateInitial(p *entities.Plan) error
	// CreateRefined assigns (current max version)+1 atomically with respect
	// to concurrent refinements of the same project.
	CreateRefined(p *entities.Plan) error
	LatestByProject(projectID uint) (*entities.Plan, error)
	FindByID(planID uint) (*entities.Plan, error)
	ListByProject(projectID uint) ([]entities.Plan, error)
	ListMetaByProject(projectID uint) ([]VersionMeta, error)

	// Write-once cache setters: when the field is already set the call is a
	// silent no-op, not an error.
	SetCachedPrompts(planID uint, promptsJSON string) error
	SetCachedOneShot(planID uint, prompt string) error
	// OverwriteOneShot is the one deliberate post-set mutation, used by
	// user-directed one-shot refinement.
	OverwriteOneShot(planID uint, prompt string) error
}
