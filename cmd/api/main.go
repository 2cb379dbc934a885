package main

import (
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"call-quality-go/internal/analysis"
	"call-quality-go/internal/api"
	"call-quality-go/internal/api/handler"
	"call-quality-go/internal/config"
	"call-quality-go/internal/logger"
	"call-quality-go/internal/pipeline"
	"call-quality-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "call-quality-go").Info("starting service")

	cfg := config.Load()
	if cfg.TranscriptionKey == "" {
		log.Warn("TRANSCRIBE_API_KEY not set; analyze requests will fail until configured")
	}
	if cfg.AnalysisKey == "" {
		log.Warn("LLM_API_KEY not set; analyze requests will fail until configured")
	}

	pipe := pipeline.New(transcription.NewClient(cfg), analysis.NewClient(cfg))

	router := api.NewRouter(api.Dependencies{
		HealthHandler:  handler.NewHealthHandler(),
		AnalyzeHandler: handler.NewAnalyzeHandler(pipe),
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
