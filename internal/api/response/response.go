package response

import (
	"encoding/json"
	"net/http"

	"call-quality-go/internal/types"
)

// AnalyzeResponse is the flat contract older consumers depend on, with the
// structured analysis alongside. The anomalies field is the legacy flattened
// projection; analysis.anomalies stays canonical.
type AnalyzeResponse struct {
	Transcript   string             `json:"transcript"`
	Anomalies    []string           `json:"anomalies"`
	Suggestions  []string           `json:"suggestions"`
	Duration     int                `json:"duration"`
	Analysis     types.CallAnalysis `json:"analysis"`
	AgentRole    types.Speaker      `json:"agentRole"`
	CustomerRole types.Speaker      `json:"customerRole"`
}

// ErrorResponse keeps the same top-level keys as the success shape so
// rendering code never branches on missing fields.
type ErrorResponse struct {
	Error       string             `json:"error"`
	Stack       string             `json:"stack,omitempty"`
	Transcript  string             `json:"transcript"`
	Anomalies   []string           `json:"anomalies"`
	Suggestions []string           `json:"suggestions"`
	Duration    int                `json:"duration"`
	Analysis    types.CallAnalysis `json:"analysis"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// Failure writes the fixed 500 shape used for the fatal pipeline states.
func Failure(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:       message,
		Transcript:  "Error during transcription",
		Anomalies:   []string{},
		Suggestions: []string{},
		Duration:    0,
		Analysis:    types.Empty(),
	})
}

// BadRequest reports a malformed client request; unlike Failure, the
// pipeline never ran so the legacy shape is not needed.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
