package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptEmbedsTranscriptAndDuration(t *testing.T) {
	p := BuildPrompt("hello from the call", 185)
	assert.Contains(t, p, "hello from the call")
	assert.Contains(t, p, "185 seconds")
}

func TestBuildPromptSchemaFields(t *testing.T) {
	p := BuildPrompt("x", 60)
	for _, field := range []string{`"objective"`, `"transcript"`, `"anomalies"`, `"conclusion"`, `"suggestions"`, `"score"`, `"scoreReasoning"`, "PartyA", "PartyB"} {
		assert.Contains(t, p, field)
	}
}

func TestBuildPromptRubric(t *testing.T) {
	p := BuildPrompt("x", 60)
	assert.Contains(t, p, "0.1 increments")
	assert.Contains(t, p, "critical=1.0")
	assert.Contains(t, p, "Objective achievement: 2.5")
}

func TestBuildPromptDurationBuckets(t *testing.T) {
	assert.Contains(t, BuildPrompt("x", 60), "short call")
	assert.Contains(t, BuildPrompt("x", 300), "medium call")
	assert.Contains(t, BuildPrompt("x", 900), "long call")
}

func TestBuildPromptPure(t *testing.T) {
	a := BuildPrompt("same", 120)
	b := BuildPrompt("same", 120)
	assert.Equal(t, a, b)
	assert.True(t, strings.Contains(a, "follow-up"))
}
