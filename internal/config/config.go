package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Credential errors are sentinels checked at call time, so a missing key
// fails the request rather than the process.
var (
	ErrMissingTranscriptionKey = errors.New("TRANSCRIBE_API_KEY not set")
	ErrMissingAnalysisKey      = errors.New("LLM_API_KEY not set")
)

// Config carries every externally sourced setting. It is built once at
// startup and injected into the clients; nothing reads the environment per
// request.
type Config struct {
	TranscriptionURL   string
	TranscriptionKey   string
	TranscriptionModel string

	AnalysisURL   string
	AnalysisKey   string
	AnalysisModel string

	// UpstreamTimeout bounds each external exchange; expiry is treated the
	// same as an upstream HTTP failure.
	UpstreamTimeout time.Duration

	Port        string
	Environment string
}

func Load() Config {
	return Config{
		TranscriptionURL:   envOr("TRANSCRIBE_URL", "https://api.openai.com/v1/audio/transcriptions"),
		TranscriptionKey:   os.Getenv("TRANSCRIBE_API_KEY"),
		TranscriptionModel: envOr("TRANSCRIBE_MODEL", "whisper-1"),
		AnalysisURL:        envOr("LLM_GATEWAY_URL", "https://api.openai.com/v1/chat/completions"),
		AnalysisKey:        os.Getenv("LLM_API_KEY"),
		AnalysisModel:      envOr("LLM_MODEL", "gpt-4o-mini"),
		UpstreamTimeout:    secondsOr("UPSTREAM_TIMEOUT_SEC", 60),
		Port:               envOr("PORT", "8080"),
		Environment:        envOr("ENVIRONMENT", "local"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func secondsOr(k string, def int) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}
