package repositoryImp

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"webplanner/entities"
	"webplanner/pkg/plan/repository"
)

// Bounded retries for the read-increment-write race on version numbers; the
// unique index on (project_id, version) makes the loser fail cleanly.
const maxVersionRetries = 3

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) CreateInitial(p *entities.Plan) error {
	p.Version = 1
	p.PlanType = entities.PlanTypeInitial
	if err := r.db.Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *planRepo) CreateRefined(p *entities.Plan) error {
	p.PlanType = entities.PlanTypeRefined
	var lastErr error
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		err := r.db.Transaction(func(tx *gorm.DB) error {
			var max int
			if err := tx.Model(&entities.Plan{}).
				Where("project_id = ?", p.ProjectID).
				Select("COALESCE(MAX(version), 0)").
				Scan(&max).Error; err != nil {
				return err
			}
			p.PlanID = 0
			p.Version = max + 1
			return tx.Create(p).Error
		})
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	log.Printf("[plan] version allocation for project %d lost %d races: %v", p.ProjectID, maxVersionRetries, lastErr)
	return repository.ErrConflict
}

// LatestByProject orders by version, newest first. SQLite sorts NULL below
// every value in DESC order, so legacy rows without a version fall back to
// created_at ordering among themselves.
func (r *planRepo) LatestByProject(projectID uint) (*entities.Plan, error) {
	var p entities.Plan
	err := r.db.Where("project_id = ?", projectID).
		Order("version DESC, created_at DESC").
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *planRepo) FindByID(planID uint) (*entities.Plan, error) {
	var p entities.Plan
	if err := r.db.First(&p, planID).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *planRepo) ListByProject(projectID uint) ([]entities.Plan, error) {
	var ps []entities.Plan
	err := r.db.Where("project_id = ?", projectID).
		Order("version DESC, created_at DESC").
		Find(&ps).Error
	return ps, err
}

func (r *planRepo) ListMetaByProject(projectID uint) ([]repository.VersionMeta, error) {
	var metas []repository.VersionMeta
	err := r.db.Model(&entities.Plan{}).
		Select("plan_id, version, plan_type, created_at").
		Where("project_id = ?", projectID).
		Order("version DESC, created_at DESC").
		Scan(&metas).Error
	return metas, err
}

func (r *planRepo) SetCachedPrompts(planID uint, promptsJSON string) error {
	return r.setOnce(planID, "prompts_json", promptsJSON)
}

func (r *planRepo) SetCachedOneShot(planID uint, prompt string) error {
	return r.setOnce(planID, "one_shot_prompt", prompt)
}

func (r *planRepo) OverwriteOneShot(planID uint, prompt string) error {
	res := r.db.Model(&entities.Plan{}).
		Where("plan_id = ?", planID).
		Update("one_shot_prompt", prompt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// setOnce writes the cache column only while it is still NULL. Zero rows
// affected means either the version is gone (ErrNotFound) or someone already
// cached a value, which callers treat as success.
func (r *planRepo) setOnce(planID uint, column, value string) error {
	res := r.db.Model(&entities.Plan{}).
		Where("plan_id = ? AND "+column+" IS NULL", planID).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.Model(&entities.Plan{}).Where("plan_id = ?", planID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrNotFound
		}
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
