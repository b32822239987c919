package repository

import (
	"errors"

	"webplanner/entities"
)

var ErrNotFound = errors.New("project not found")

type ProjectRepository interface {
	Create(p *entities.Project) error
	FindByID(id uint, uid string) (*entities.Project, error)
	ListByUser(uid string) ([]entities.Project, error)
	UpdateStatus(id uint, uid string, status string) error
	// Delete removes the project and cascades to its plan versions and
	// activity records.
	Delete(id uint, uid string) error
}
