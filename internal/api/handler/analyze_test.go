package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-quality-go/internal/analysis"
	"call-quality-go/internal/api"
	"call-quality-go/internal/api/response"
	"call-quality-go/internal/pipeline"
	"call-quality-go/internal/types"
)

type stubRunner struct {
	res pipeline.Result
	err error
	got pipeline.Input
}

func (s *stubRunner) Run(ctx context.Context, in pipeline.Input) (pipeline.Result, error) {
	s.got = in
	return s.res, s.err
}

func completedResult() pipeline.Result {
	a := types.CallAnalysis{
		Objective: "Sales Inquiry",
		Transcript: []types.SpeakerSegment{
			{Speaker: types.PartyA, Text: "hi", Timestamp: "00:01"},
		},
		Anomalies: map[types.Speaker]types.AnomalyBucket{
			types.PartyA: {Positive: []string{}, Negative: []string{"talked over the agent"}},
			types.PartyB: {Positive: []string{"explained the plan clearly"}, Negative: []string{}},
		},
		Conclusion:     "went well",
		Suggestions:    []string{"send a recap email"},
		Score:          7.3,
		ScoreReasoning: "solid across sub-categories",
	}
	return pipeline.Result{
		AnalysisID:      "test-id",
		State:           pipeline.StateCompleted,
		Analysis:        a,
		Roles:           types.RoleMap{AgentRole: types.PartyB, CustomerRole: types.PartyA},
		FlatAnomalies:   analysis.FlattenAnomalies(a),
		Transcript:      "hi there",
		DurationSeconds: 42,
	}
}

func analyzeBody(t *testing.T, audio []byte) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(map[string]string{
		"audio":    base64.StdEncoding.EncodeToString(audio),
		"fileName": "call.mp3",
		"fileType": "audio/mpeg",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestAnalyzeSuccess(t *testing.T) {
	runner := &stubRunner{res: completedResult()}
	h := NewAnalyzeHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/analyze", analyzeBody(t, []byte("fake-audio")))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got response.AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "hi there", got.Transcript)
	assert.Equal(t, []string{"talked over the agent", "explained the plan clearly"}, got.Anomalies)
	assert.Equal(t, []string{"send a recap email"}, got.Suggestions)
	assert.Equal(t, 42, got.Duration)
	assert.Equal(t, 7.3, got.Analysis.Score)
	assert.Equal(t, types.PartyB, got.AgentRole)
	assert.Equal(t, types.PartyA, got.CustomerRole)

	// base64 was decoded before the pipeline saw it
	assert.Equal(t, []byte("fake-audio"), runner.got.Audio)
	assert.Equal(t, "audio/mpeg", runner.got.MIMEType)
	assert.Equal(t, "call.mp3", runner.got.FileName)
}

func TestAnalyzePipelineFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("transcription service returned status 502: bad gateway")}
	h := NewAnalyzeHandler(runner)

	req := httptest.NewRequest(http.MethodPost, "/analyze", analyzeBody(t, []byte("x")))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var got response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Error, "status 502")
	assert.Equal(t, "Error during transcription", got.Transcript)
	assert.Empty(t, got.Anomalies)
	assert.Empty(t, got.Suggestions)
	assert.Zero(t, got.Duration)

	// the embedded analysis is empty but structurally complete
	assert.NotNil(t, got.Analysis.Transcript)
	assert.Contains(t, got.Analysis.Anomalies, types.PartyA)
	assert.Contains(t, got.Analysis.Anomalies, types.PartyB)
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	h := NewAnalyzeHandler(&stubRunner{res: completedResult()})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeInvalidBase64(t *testing.T) {
	h := NewAnalyzeHandler(&stubRunner{res: completedResult()})
	body := bytes.NewBufferString(`{"audio": "!!not-base64!!", "fileName": "a.mp3", "fileType": "audio/mpeg"}`)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	rec := httptest.NewRecorder()
	h(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeXLSXReport(t *testing.T) {
	h := NewAnalyzeHandler(&stubRunner{res: completedResult()})
	req := httptest.NewRequest(http.MethodPost, "/analyze?format=xlsx", analyzeBody(t, []byte("x")))
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func TestRouterCORSPreflight(t *testing.T) {
	router := api.NewRouter(api.Dependencies{
		HealthHandler:  NewHealthHandler(),
		AnalyzeHandler: NewAnalyzeHandler(&stubRunner{res: completedResult()}),
	})

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRouterHealth(t *testing.T) {
	router := api.NewRouter(api.Dependencies{
		HealthHandler:  NewHealthHandler(),
		AnalyzeHandler: NewAnalyzeHandler(&stubRunner{res: completedResult()}),
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
