package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"TRANSCRIBE_URL", "TRANSCRIBE_API_KEY", "TRANSCRIBE_MODEL", "LLM_GATEWAY_URL", "LLM_API_KEY", "LLM_MODEL", "UPSTREAM_TIMEOUT_SEC", "PORT", "ENVIRONMENT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "https://api.openai.com/v1/audio/transcriptions", cfg.TranscriptionURL)
	assert.Equal(t, "whisper-1", cfg.TranscriptionModel)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.AnalysisURL)
	assert.Equal(t, "gpt-4o-mini", cfg.AnalysisModel)
	assert.Equal(t, 60*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.TranscriptionKey)
	assert.Empty(t, cfg.AnalysisKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRANSCRIBE_URL", "http://stt.local")
	t.Setenv("TRANSCRIBE_API_KEY", "stt-key")
	t.Setenv("LLM_GATEWAY_URL", "http://llm.local")
	t.Setenv("LLM_API_KEY", "llm-key")
	t.Setenv("LLM_MODEL", "my-model")
	t.Setenv("UPSTREAM_TIMEOUT_SEC", "15")
	t.Setenv("PORT", "9090")

	cfg := Load()
	assert.Equal(t, "http://stt.local", cfg.TranscriptionURL)
	assert.Equal(t, "stt-key", cfg.TranscriptionKey)
	assert.Equal(t, "http://llm.local", cfg.AnalysisURL)
	assert.Equal(t, "llm-key", cfg.AnalysisKey)
	assert.Equal(t, "my-model", cfg.AnalysisModel)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT_SEC", "not-a-number")
	assert.Equal(t, 60*time.Second, Load().UpstreamTimeout)

	t.Setenv("UPSTREAM_TIMEOUT_SEC", "-5")
	assert.Equal(t, 60*time.Second, Load().UpstreamTimeout)
}
