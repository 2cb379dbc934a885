package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"call-quality-go/internal/api/response"
	"call-quality-go/internal/logger"
	"call-quality-go/internal/pipeline"
	"call-quality-go/internal/report"
)

// Uploads above this size are rejected before base64 decoding.
const maxRequestBytes = 48 << 20

// Runner is the pipeline dependency the handler needs.
type Runner interface {
	Run(ctx context.Context, in pipeline.Input) (pipeline.Result, error)
}

type analyzeRequest struct {
	Audio    string `json:"audio"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// NewAnalyzeHandler returns the handler for POST /analyze. A recovered
// fallback analysis is a 200 like any other completed run; only the fatal
// pipeline states produce the 500 shape.
func NewAnalyzeHandler(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.New().WithRequest(r).WithField("handler", "analyze")

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.WithError(err).Warn("invalid request body")
			response.BadRequest(w, "invalid JSON body")
			return
		}
		audio, err := base64.StdEncoding.DecodeString(req.Audio)
		if err != nil {
			log.WithError(err).Warn("invalid audio encoding")
			response.BadRequest(w, "audio must be valid base64")
			return
		}

		res, err := runner.Run(r.Context(), pipeline.Input{
			Audio:    audio,
			MIMEType: req.FileType,
			FileName: req.FileName,
		})
		if err != nil {
			log.WithError(err).Error("pipeline failed")
			response.Failure(w, err.Error())
			return
		}

		if r.URL.Query().Get("format") == "xlsx" {
			writeReport(w, log, res)
			return
		}

		response.JSON(w, http.StatusOK, response.AnalyzeResponse{
			Transcript:   res.Transcript,
			Anomalies:    res.FlatAnomalies,
			Suggestions:  res.Analysis.Suggestions,
			Duration:     res.DurationSeconds,
			Analysis:     res.Analysis,
			AgentRole:    res.Roles.AgentRole,
			CustomerRole: res.Roles.CustomerRole,
		})
	}
}

func writeReport(w http.ResponseWriter, log *logrus.Entry, res pipeline.Result) {
	f, err := report.Build(res)
	if err != nil {
		log.WithError(err).Error("report generation failed")
		response.Failure(w, "report generation failed: "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="call-quality-report.xlsx"`)
	if err := f.Write(w); err != nil {
		log.WithError(err).Error("failed to stream report")
	}
}
