package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"webplanner/config"
	"webplanner/database"
	"webplanner/router"

	// Auth + health
	authCtrlImp "webplanner/pkg/auth/controllerImp"
	healthCtrlImp "webplanner/pkg/health/controllerImp"

	// Project
	projCtrlImp "webplanner/pkg/project/controllerImp"
	projRepoImp "webplanner/pkg/project/repositoryImp"

	// Plan
	planCtrlImp "webplanner/pkg/plan/controllerImp"
	planRepoImp "webplanner/pkg/plan/repositoryImp"
	planSvcImp "webplanner/pkg/plan/serviceImp"

	// Activity
	"webplanner/pkg/activity"
	actCtrlImp "webplanner/pkg/activity/controllerImp"
	actRepoImp "webplanner/pkg/activity/repositoryImp"

	// Generation
	"webplanner/pkg/ai"
	"webplanner/pkg/gen"

	// KB
	kbCtrlImp "webplanner/pkg/kb/controllerImp"
	kbEmbedder "webplanner/pkg/kb/embedder"
	kbRepoImp "webplanner/pkg/kb/repositoryImp"
	kbSvcImp "webplanner/pkg/kb/serviceImp"

	// Billing
	"webplanner/pkg/billing"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	// 4) LLM (mock fallback when unconfigured)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSec)*time.Second)
	} else {
		log.Printf("WARN: no LLM endpoint configured, using mock client")
		llm = ai.NewMock()
	}
	gateway := gen.New(llm)

	// 5) KB wiring
	var emb *kbEmbedder.Client
	if cfg.EmbEndpoint != "" {
		emb = kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	}
	kbRepo := kbRepoImp.New(db)
	kbSvc := kbSvcImp.New(kbRepo, emb)
	kbCtrl := kbCtrlImp.New(kbSvc)

	// 6) Repos / services / controllers
	pRepo := projRepoImp.New(db)
	plRepo := planRepoImp.New(db)
	actRepo := actRepoImp.New(db)
	recorder := activity.NewRecorder(actRepo)

	planSvc := planSvcImp.NewPlanService(gateway, plRepo, recorder, kbSvc)
	planCtrl := planCtrlImp.NewPlanCtrl(planSvc, pRepo)
	projCtrl := projCtrlImp.New(pRepo)
	actCtrl := actCtrlImp.New(actRepo, pRepo)

	authCtrl := authCtrlImp.NewAuthController(db)
	hCtrl := healthCtrlImp.NewHealthCtrl(db)
	webhook := billing.NewWebhookCtrl(db, cfg.StripeWHSecret)

	// 7) Router
	r := router.New(
		e,
		cfg.RequireAuth,
		projCtrl,
		planCtrl,
		kbCtrl,
		actCtrl,
		authCtrl,
		hCtrl,
		webhook.Handle,
	)

	// 8) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
