package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"webplanner/entities"
	"webplanner/pkg/project/repository"
)

type ProjectCtrl struct{ repo repository.ProjectRepository }

func New(repo repository.ProjectRepository) *ProjectCtrl { return &ProjectCtrl{repo} }

type createReq struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TargetAudience string `json:"target_audience"`
	KeyGoals       string `json:"key_goals"`
	CodeEditor     string `json:"code_editor"`
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *ProjectCtrl) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Description) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and description are required"})
	}
	p := &entities.Project{
		UserID:         uid,
		Name:           req.Name,
		Description:    req.Description,
		TargetAudience: req.TargetAudience,
		KeyGoals:       req.KeyGoals,
		CodeEditor:     req.CodeEditor,
		Status:         "in-progress",
	}
	if err := h.repo.Create(p); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProjectCtrl) Get(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.repo.FindByID(uint(id), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProjectCtrl) List(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	ps, err := h.repo.ListByUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"projects": ps})
}

func (h *ProjectCtrl) UpdateStatus(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, _ := strconv.Atoi(c.Param("id"))
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Status != "in-progress" && req.Status != "completed" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "status must be in-progress or completed"})
	}
	if err := h.repo.UpdateStatus(uint(id), uid, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

func (h *ProjectCtrl) Delete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id), uid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
