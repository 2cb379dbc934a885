package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"call-quality-go/internal/types"
)

// Sentinel content used when the model response cannot be validated. The
// values are fixed so humans and downstream consumers can recognize a
// degraded result without a separate flag.
const (
	FallbackObjective  = "Objective undetermined"
	FallbackFinding    = "Analysis error - manual review required"
	FallbackConclusion = "Analysis could not be completed"
	FallbackSuggestion = "Manual review recommended"
	FallbackReasoning  = "Score unavailable: the analysis response could not be validated. The neutral 5.0 is a sentinel, not a measurement."

	// FallbackScore is a sentinel midpoint, not a measurement.
	FallbackScore = 5.0

	fallbackTranscriptLimit = 500
)

// Pointer fields make an absent key distinguishable from a zero value, so a
// missing field fails validation instead of silently defaulting.
type rawSegment struct {
	Speaker   *string `json:"speaker"`
	Text      *string `json:"text"`
	Timestamp *string `json:"timestamp"`
}

type rawBucket struct {
	Positive *[]string `json:"positive"`
	Negative *[]string `json:"negative"`
}

type rawAnalysis struct {
	Objective      *string              `json:"objective"`
	Transcript     *[]rawSegment        `json:"transcript"`
	Anomalies      map[string]rawBucket `json:"anomalies"`
	Conclusion     *string              `json:"conclusion"`
	Suggestions    *[]string            `json:"suggestions"`
	Score          *float64             `json:"score"`
	ScoreReasoning *string              `json:"scoreReasoning"`
}

// ParseAnalysis validates sanitized model output against the CallAnalysis
// shape. It never fails: any structural problem yields the deterministic
// fallback built from the raw transcript, and ok reports which path was
// taken. Defaulting a missing anomaly list to empty is deliberately not done
// here; a missing list means the response is malformed and the whole payload
// is distrusted.
func ParseAnalysis(sanitized, rawTranscript string) (a types.CallAnalysis, ok bool) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(sanitized), &raw); err != nil {
		return Fallback(rawTranscript), false
	}
	a, err := validate(raw)
	if err != nil {
		return Fallback(rawTranscript), false
	}
	return a, true
}

func validate(raw rawAnalysis) (types.CallAnalysis, error) {
	var zero types.CallAnalysis

	if raw.Objective == nil {
		return zero, fmt.Errorf("objective missing")
	}
	if raw.Conclusion == nil {
		return zero, fmt.Errorf("conclusion missing")
	}
	if raw.ScoreReasoning == nil {
		return zero, fmt.Errorf("scoreReasoning missing")
	}
	if raw.Suggestions == nil {
		return zero, fmt.Errorf("suggestions missing")
	}
	if raw.Score == nil {
		return zero, fmt.Errorf("score missing")
	}
	if *raw.Score < 0.0 || *raw.Score > 10.0 {
		return zero, fmt.Errorf("score %.2f out of range", *raw.Score)
	}
	if raw.Transcript == nil || len(*raw.Transcript) == 0 {
		return zero, fmt.Errorf("transcript missing or empty")
	}

	segments := make([]types.SpeakerSegment, 0, len(*raw.Transcript))
	for i, s := range *raw.Transcript {
		if s.Speaker == nil || s.Text == nil || s.Timestamp == nil {
			return zero, fmt.Errorf("transcript segment %d incomplete", i)
		}
		sp := types.Speaker(*s.Speaker)
		if sp != types.PartyA && sp != types.PartyB {
			return zero, fmt.Errorf("transcript segment %d has unknown speaker %q", i, *s.Speaker)
		}
		if strings.TrimSpace(*s.Text) == "" {
			return zero, fmt.Errorf("transcript segment %d has empty text", i)
		}
		segments = append(segments, types.SpeakerSegment{Speaker: sp, Text: *s.Text, Timestamp: *s.Timestamp})
	}

	anomalies := make(map[types.Speaker]types.AnomalyBucket, 2)
	for _, party := range []types.Speaker{types.PartyA, types.PartyB} {
		bucket, found := raw.Anomalies[string(party)]
		if !found {
			return zero, fmt.Errorf("anomalies missing bucket for %s", party)
		}
		if bucket.Positive == nil {
			return zero, fmt.Errorf("%s bucket missing positive list", party)
		}
		if bucket.Negative == nil {
			return zero, fmt.Errorf("%s bucket missing negative list", party)
		}
		anomalies[party] = types.AnomalyBucket{Positive: *bucket.Positive, Negative: *bucket.Negative}
	}

	return types.CallAnalysis{
		Objective:      *raw.Objective,
		Transcript:     segments,
		Anomalies:      anomalies,
		Conclusion:     *raw.Conclusion,
		Suggestions:    *raw.Suggestions,
		Score:          *raw.Score,
		ScoreReasoning: *raw.ScoreReasoning,
	}, nil
}

// Fallback builds the deterministic degraded analysis. It is structurally
// identical to a validated one, carries a bounded prefix of the raw
// transcript, and flags both parties for manual review.
func Fallback(rawTranscript string) types.CallAnalysis {
	text := rawTranscript
	if runes := []rune(text); len(runes) > fallbackTranscriptLimit {
		text = string(runes[:fallbackTranscriptLimit])
	}
	if strings.TrimSpace(text) == "" {
		text = "(transcript unavailable)"
	}

	return types.CallAnalysis{
		Objective: FallbackObjective,
		Transcript: []types.SpeakerSegment{{
			Speaker:   types.SpeakerSystem,
			Text:      text,
			Timestamp: "00:00",
		}},
		Anomalies: map[types.Speaker]types.AnomalyBucket{
			types.PartyA: {Positive: []string{}, Negative: []string{FallbackFinding}},
			types.PartyB: {Positive: []string{}, Negative: []string{FallbackFinding}},
		},
		Conclusion:     FallbackConclusion,
		Suggestions:    []string{FallbackSuggestion},
		Score:          FallbackScore,
		ScoreReasoning: FallbackReasoning,
	}
}
