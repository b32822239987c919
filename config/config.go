package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port           string
	DBPath         string
	LLMEndpoint    string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeoutSec  int
	EmbEndpoint    string
	EmbAPIKey      string
	EmbModel       string
	StripeWHSecret string
	RequireAuth    bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	timeout, _ := strconv.Atoi(get("LLM_TIMEOUT_SEC", "90"))
	cfg := AppConfig{
		Port:           get("PORT", "8080"),
		DBPath:         get("DB_PATH", "webplanner.db"),
		LLMEndpoint:    get("LLM_ENDPOINT", ""),
		LLMAPIKey:      get("LLM_API_KEY", ""),
		LLMModel:       get("LLM_MODEL", "gpt-4o-mini"),
		LLMTimeoutSec:  timeout,
		EmbEndpoint:    get("EMB_ENDPOINT", ""),
		EmbAPIKey:      get("EMB_API_KEY", ""),
		EmbModel:       get("EMB_MODEL", "text-embedding-3-small"),
		StripeWHSecret: get("STRIPE_WEBHOOK_SECRET", ""),
		RequireAuth:    get("REQUIRE_AUTH", "false") == "true",
	}
	log.Printf("[cfg] port=%s db=%s llm=%s model=%s auth=%v",
		cfg.Port, cfg.DBPath, cfg.LLMEndpoint, cfg.LLMModel, cfg.RequireAuth)
	return cfg
}
