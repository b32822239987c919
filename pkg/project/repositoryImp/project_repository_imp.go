package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"webplanner/entities"
	"webplanner/pkg/project/repository"
)

type projectRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProjectRepository { return &projectRepo{db} }

func (r *projectRepo) Create(p *entities.Project) error { return r.db.Create(p).Error }

func (r *projectRepo) FindByID(id uint, uid string) (*entities.Project, error) {
	var p entities.Project
	err := r.db.Where("project_id = ? AND user_id = ?", id, uid).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListByUser(uid string) ([]entities.Project, error) {
	var ps []entities.Project
	return ps, r.db.Where("user_id = ?", uid).Order("created_at DESC").Find(&ps).Error
}

func (r *projectRepo) UpdateStatus(id uint, uid string, status string) error {
	res := r.db.Model(&entities.Project{}).
		Where("project_id = ? AND user_id = ?", id, uid).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *projectRepo) Delete(id uint, uid string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var p entities.Project
		if err := tx.Where("project_id = ? AND user_id = ?", id, uid).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&entities.Plan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&entities.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}
