package repository

import "webplanner/entities"

type ActivityRepository interface {
	Create(a *entities.Activity) error
	ListByProject(projectID uint, limit int) ([]entities.Activity, error)
}
