package repositoryImp

import (
	"gorm.io/gorm"

	"webplanner/entities"
	"webplanner/pkg/activity/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

func (r *activityRepo) Create(a *entities.Activity) error { return r.db.Create(a).Error }

func (r *activityRepo) ListByProject(projectID uint, limit int) ([]entities.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	var as []entities.Activity
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&as).Error
	return as, err
}
