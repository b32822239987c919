package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"webplanner/entities"
	"webplanner/pkg/export"
	planrepo "webplanner/pkg/plan/repository"
	"webplanner/pkg/plan/service"
	projrepo "webplanner/pkg/project/repository"
)

type PlanCtrl struct {
	svc      service.PlanService
	projects projrepo.ProjectRepository
}

func NewPlanCtrl(svc service.PlanService, projects projrepo.ProjectRepository) *PlanCtrl {
	return &PlanCtrl{svc: svc, projects: projects}
}

type refineReq struct {
	UserWrittenFeedback   map[string]string `json:"userWrittenFeedback"`
	LatestVersionID       string            `json:"latestVersionId"`
	SelectedSuggestionIDs []string          `json:"selectedSuggestionIds"`
}

type oneShotRefineReq struct {
	Feedback     string `json:"feedback"`
	TargetEditor string `json:"targetEditor"`
}

// POST /projects/:id/plan
func (h *PlanCtrl) Generate(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	p, err := h.svc.GenerateInitialPlan(project)
	if err != nil {
		return h.planError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"planVersion": p})
}

// POST /projects/:id/plan-versions
func (h *PlanCtrl) Refine(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	var body refineReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("bad json"))
	}
	if body.UserWrittenFeedback == nil && body.SelectedSuggestionIDs == nil {
		return c.JSON(http.StatusBadRequest, errBody("userWrittenFeedback or selectedSuggestionIds required"))
	}
	p, err := h.svc.Refine(project, service.RefineRequest{
		UserWrittenFeedback:   body.UserWrittenFeedback,
		LatestVersionID:       body.LatestVersionID,
		SelectedSuggestionIDs: body.SelectedSuggestionIDs,
	})
	if err != nil {
		return h.planError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"planVersion": p})
}

// GET /projects/:id/plan-versions
func (h *PlanCtrl) ListVersions(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	metas, err := h.svc.ListVersions(project.ProjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errBody(err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]any{"versions": metas})
}

// GET /projects/:id/plan-versions/:versionId/implementation-prompts
func (h *PlanCtrl) ImplementationPrompts(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	vid, err := strconv.Atoi(c.Param("versionId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errBody("bad version id"))
	}
	prompts, err := h.svc.ImplementationPrompts(project, uint(vid))
	if err != nil {
		return h.planError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"prompts": prompts})
}

// GET /projects/:id/one-shot-prompt
func (h *PlanCtrl) OneShot(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	prompt, err := h.svc.OneShotPrompt(project, service.OneShotOptions{
		TargetEditor: c.QueryParam("editor"),
		DatabaseInfo: c.QueryParam("database"),
		UserProfile:  c.QueryParam("profile"),
	})
	if err != nil {
		return h.planError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"oneShotPrompt": prompt})
}

// PUT /projects/:id/one-shot-prompt
func (h *PlanCtrl) RefineOneShot(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	var body oneShotRefineReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errBody("bad json"))
	}
	if body.Feedback == "" {
		return c.JSON(http.StatusBadRequest, errBody("feedback required"))
	}
	prompt, err := h.svc.RefineOneShot(project, body.Feedback, body.TargetEditor)
	if err != nil {
		return h.planError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"oneShotPrompt": prompt})
}

// GET /projects/:id/export.xlsx
func (h *PlanCtrl) Export(c echo.Context) error {
	project, err := h.project(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, errBody("project not found"))
	}
	plans, err := h.svc.VersionsWithContent(project.ProjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errBody(err.Error()))
	}
	f, err := export.VersionHistoryWorkbook(project, plans)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errBody(err.Error()))
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errBody(err.Error()))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="project-%d-versions.xlsx"`, project.ProjectID))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *PlanCtrl) project(c echo.Context) (*entities.Project, error) {
	uid, _ := c.Get("uid").(string)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, projrepo.ErrNotFound
	}
	return h.projects.FindByID(uint(id), uid)
}

func (h *PlanCtrl) planError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, planrepo.ErrNotFound), errors.Is(err, projrepo.ErrNotFound):
		return c.JSON(http.StatusNotFound, errBody("plan version not found"))
	case errors.Is(err, planrepo.ErrConflict):
		return c.JSON(http.StatusConflict, errBody("a concurrent update won, please retry"))
	case errors.Is(err, service.ErrNothingToRefine):
		return c.JSON(http.StatusBadRequest, errBody(service.ErrNothingToRefine.Error()))
	case errors.Is(err, service.ErrMalformedOutput):
		return c.JSON(http.StatusInternalServerError, errBody(service.ErrMalformedOutput.Error()))
	case errors.Is(err, service.ErrGenerationFailed):
		return c.JSON(http.StatusInternalServerError, errBody(service.ErrGenerationFailed.Error()))
	default:
		// Infrastructure failure: generic body, detail stays in server logs.
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errBody("internal error"))
	}
}

func errBody(msg string) map[string]string { return map[string]string{"error": msg} }
