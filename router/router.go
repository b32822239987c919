package router

import (
	"github.com/labstack/echo/v4"

	"webplanner/pkg/middleware"
)

func New(
	e *echo.Echo,
	requireAuth bool,
	projectCtrl interface {
		Create(echo.Context) error
		Get(echo.Context) error
		List(echo.Context) error
		UpdateStatus(echo.Context) error
		Delete(echo.Context) error
	},
	planCtrl interface {
		Generate(echo.Context) error
		Refine(echo.Context) error
		ListVersions(echo.Context) error
		ImplementationPrompts(echo.Context) error
		OneShot(echo.Context) error
		RefineOneShot(echo.Context) error
		Export(echo.Context) error
	},
	kbCtrl interface {
		IngestText(echo.Context) error
		IngestURL(echo.Context) error
		ListDocs(echo.Context) error
		Search(echo.Context) error
	},
	activityCtrl interface{ List(echo.Context) error },
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
	billingWebhook echo.HandlerFunc,
) *echo.Echo {
	// Webhook is authenticated by its Stripe signature, not a user identity.
	e.POST("/billing/webhook", billingWebhook)
	e.GET("/health", healthCtrl.Health)

	ident := middleware.DevLogin()
	if requireAuth {
		ident = middleware.RequireUser(true)
	}

	api := e.Group("", ident)
	api.GET("/whoami", authCtrl.WhoAmI)
	api.GET("/devlogin", authCtrl.DevLogin)

	api.POST("/kb/ingest", kbCtrl.IngestText)
	api.POST("/kb/ingest/url", kbCtrl.IngestURL)
	api.GET("/kb/docs", kbCtrl.ListDocs)
	api.GET("/kb/search", kbCtrl.Search)

	api.POST("/projects", projectCtrl.Create)
	api.GET("/projects", projectCtrl.List)
	api.GET("/projects/:id", projectCtrl.Get)
	api.PATCH("/projects/:id/status", projectCtrl.UpdateStatus)
	api.DELETE("/projects/:id", projectCtrl.Delete)

	g := e.Group("/projects", ident)
	g.POST("/:id/plan", planCtrl.Generate)
	g.POST("/:id/plan-versions", planCtrl.Refine)
	g.GET("/:id/plan-versions", planCtrl.ListVersions)
	g.GET("/:id/plan-versions/:versionId/implementation-prompts", planCtrl.ImplementationPrompts)
	g.GET("/:id/one-shot-prompt", planCtrl.OneShot)
	g.PUT("/:id/one-shot-prompt", planCtrl.RefineOneShot)
	g.GET("/:id/export.xlsx", planCtrl.Export)
	g.GET("/:id/activity", activityCtrl.List)

	return e
}
