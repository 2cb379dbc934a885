package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"call-quality-go/internal/analysis"
	"call-quality-go/internal/logger"
	"call-quality-go/internal/types"
)

// State tracks pipeline progress for logging and failure reporting.
type State string

const (
	StatePending      State = "pending"
	StateTranscribing State = "transcribing"
	StateAnalyzing    State = "analyzing"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
)

// Transcriber converts raw audio into plain text plus a duration in seconds.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, fileName string) (string, int, error)
}

// Completer sends a prompt to the language model and returns its raw reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Input is one call recording to analyze.
type Input struct {
	Audio    []byte
	MIMEType string
	FileName string
}

// Result is the pipeline's output. Analysis is always structurally complete;
// Fallback reports whether the model response failed validation and the
// sentinel content was substituted.
type Result struct {
	AnalysisID      string
	State           State
	Analysis        types.CallAnalysis
	Roles           types.RoleMap
	FlatAnomalies   []string
	Transcript      string
	DurationSeconds int
	Fallback        bool
	ElapsedMs       int64
}

// Pipeline runs one strictly sequential analysis per invocation: transcribe,
// prompt, complete, sanitize, parse-or-fallback, infer roles, flatten. The
// only suspension points are the two upstream calls.
type Pipeline struct {
	transcriber Transcriber
	completer   Completer
	log         *logrus.Entry
}

func New(t Transcriber, c Completer) *Pipeline {
	return &Pipeline{
		transcriber: t,
		completer:   c,
		log:         logger.WithComponent("pipeline"),
	}
}

// Run executes the pipeline for one recording. Only failures with no
// recoverable content return an error: missing credential, missing audio, or
// an upstream failure from either service. A model response that cannot be
// validated is absorbed into a fallback result and still completes.
func (p *Pipeline) Run(ctx context.Context, in Input) (Result, error) {
	start := time.Now()
	res := Result{AnalysisID: uuid.New().String(), State: StatePending}
	log := p.log.WithFields(logrus.Fields{
		"analysis_id": res.AnalysisID,
		"file_name":   in.FileName,
	})

	res.State = StateTranscribing
	transcript, duration, err := p.transcriber.Transcribe(ctx, in.Audio, in.MIMEType, in.FileName)
	if err != nil {
		res.State = StateFailed
		res.ElapsedMs = time.Since(start).Milliseconds()
		log.WithError(err).Error("transcription failed")
		return res, err
	}
	res.Transcript = transcript
	res.DurationSeconds = duration

	res.State = StateAnalyzing
	prompt := analysis.BuildPrompt(transcript, duration)
	rawReply, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		res.State = StateFailed
		res.ElapsedMs = time.Since(start).Milliseconds()
		log.WithError(err).Error("analysis request failed")
		return res, err
	}

	parsed, ok := analysis.ParseAnalysis(analysis.StripFences(rawReply), transcript)
	if !ok {
		log.Warn("model response failed validation, substituting fallback analysis")
	}

	res.Analysis = parsed
	res.Fallback = !ok
	res.Roles = analysis.InferRoles(parsed)
	res.FlatAnomalies = analysis.FlattenAnomalies(parsed)
	res.State = StateCompleted
	res.ElapsedMs = time.Since(start).Milliseconds()

	log.WithFields(logrus.Fields{
		"score":      parsed.Score,
		"fallback":   res.Fallback,
		"agent_role": res.Roles.AgentRole,
		"elapsed_ms": res.ElapsedMs,
	}).Info("analysis completed")
	return res, nil
}
