package analysis

import "fmt"

// BuildPrompt renders the rubric-constrained instruction for one call. Pure:
// the same transcript and duration always produce the same prompt.
func BuildPrompt(transcript string, durationSeconds int) string {
	prompt := `You are an expert call quality analyst for two-party business calls.

Analyze the call transcript below and return ONLY a JSON object with EXACTLY these keys:
{
  "objective": "short label for the purpose of the call",
  "transcript": [
    {"speaker": "PartyA", "text": "utterance text", "timestamp": "mm:ss"}
  ],
  "anomalies": {
    "PartyA": {"positive": [], "negative": []},
    "PartyB": {"positive": [], "negative": []}
  },
  "conclusion": "narrative summary of how the call went",
  "suggestions": [],
  "score": 0.0,
  "scoreReasoning": "justification referencing the scoring sub-categories"
}

SPEAKER DIARIZATION:
- Split the conversation between exactly two speakers, PartyA and PartyB.
- Infer who is who from conversational evidence: who initiates the call, who asks questions, who answers them.
- Estimate a mm:ss timestamp for every utterance; timestamps must never decrease.

CALL TYPE:
Classify the call internally as one of sales, support, consultation, inquiry, complaint or follow-up,
and let that classification bias your tone and weighting. Do NOT output the call type as a field.

CALL DURATION: %d seconds (%s).
%s

SCORING RUBRIC (six weighted sub-categories summing to 10.0):
- Communication quality: 2.0
- Objective achievement: 2.5
- Engagement: 1.5
- Anomaly impact: 2.0
- Context factors: 1.0
- Technical execution: 1.0
Score with 0.1 increments across the full 0.0-10.0 range. Do NOT cluster on a
safe mid-range value like 7.0; differentiate good calls from bad ones.

ANOMALY SEVERITY:
When reasoning about anomalies, weight them as critical=1.0, moderate=0.6, minor=0.3.
Severity is not a separate output field; reflect it in "score" and "scoreReasoning".

"anomalies" must list per-party findings: positive behaviors and negative behaviors.
Either list may be empty but both must always be present for both parties.
"suggestions" are recommendations directed at the caller.

TRANSCRIPT:
"""%s"""

Return ONLY the JSON object. No commentary, no markdown fences.
`
	return fmt.Sprintf(prompt, durationSeconds, durationLabel(durationSeconds), durationGuidance(durationSeconds), transcript)
}

func durationLabel(seconds int) string {
	switch {
	case seconds < 120:
		return "short call"
	case seconds <= 600:
		return "medium call"
	default:
		return "long call"
	}
}

// durationGuidance shifts which scoring sub-criteria dominate by call length.
func durationGuidance(seconds int) string {
	switch {
	case seconds < 120:
		return "For short calls (under 2 minutes), weight communication quality and technical execution more heavily; a brief call can still be excellent."
	case seconds <= 600:
		return "For medium calls (2 to 10 minutes), weight all sub-categories evenly."
	default:
		return "For long calls (over 10 minutes), weight engagement and objective achievement more heavily; sustained attention matters most."
	}
}
