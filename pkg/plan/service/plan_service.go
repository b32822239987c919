package service

import (
	"errors"

	"webplanner/entities"
	"webplanner/pkg/plan/repository"
	"webplanner/pkg/plan/types"
)

// Domain errors surfaced to controllers. Upstream error internals never
// travel past the service boundary.
var (
	ErrGenerationFailed = errors.New("plan generation failed, please try again")
	ErrMalformedOutput  = errors.New("could not interpret AI output")
	ErrNothingToRefine  = errors.New("no one-shot prompt to refine")
)

// RefineRequest is the caller's intent snapshot for one refinement: per-section
// free-text feedback plus the ids of previously offered suggestions the user
// accepted.
type RefineRequest struct {
	UserWrittenFeedback   map[string]string
	LatestVersionID       string
	SelectedSuggestionIDs []string
}

type OneShotOptions struct {
	TargetEditor string
	DatabaseInfo string
	UserProfile  string
}

type PlanService interface {
	GenerateInitialPlan(project *entities.Project) (*entities.Plan, error)
	Refine(project *entities.Project, req RefineRequest) (*entities.Plan, error)
	ListVersions(projectID uint) ([]repository.VersionMeta, error)
	VersionsWithContent(projectID uint) ([]entities.Plan, error)
	ImplementationPrompts(project *entities.Project, planID uint) (types.ImplementationPrompts, error)
	OneShotPrompt(project *entities.Project, opts OneShotOptions) (string, error)
	RefineOneShot(project *entities.Project, feedback, targetEditor string) (string, error)
}
