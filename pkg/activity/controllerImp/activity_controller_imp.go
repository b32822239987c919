package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"webplanner/pkg/activity/repository"
	projrepo "webplanner/pkg/project/repository"
)

type ActivityCtrl struct {
	repo     repository.ActivityRepository
	projects projrepo.ProjectRepository
}

func New(repo repository.ActivityRepository, projects projrepo.ProjectRepository) *ActivityCtrl {
	return &ActivityCtrl{repo: repo, projects: projects}
}

// GET /projects/:id/activity
func (h *ActivityCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}
	project, err := h.projects.FindByID(uint(id), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "project not found"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	as, err := h.repo.ListByProject(project.ProjectID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"activity": as})
}
