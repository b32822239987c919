// Package activity writes audit records as a best-effort side effect: a
// failed write is logged and swallowed so it can never mask the outcome of
// the operation being audited.
package activity

import (
	"log"

	"webplanner/entities"
	"webplanner/pkg/activity/repository"
)

type Recorder struct{ repo repository.ActivityRepository }

func NewRecorder(repo repository.ActivityRepository) *Recorder { return &Recorder{repo: repo} }

func (r *Recorder) Record(typ, uid string, projectID uint, planID *uint, details string) {
	if r == nil || r.repo == nil {
		return
	}
	a := &entities.Activity{
		Type:      typ,
		UserID:    uid,
		ProjectID: projectID,
		PlanID:    planID,
		Details:   details,
	}
	if err := r.repo.Create(a); err != nil {
		log.Printf("[activity] record %s for project %d failed: %v", typ, projectID, err)
	}
}
