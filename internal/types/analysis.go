package types

// Speaker identifies one of the two diarized parties in a call. The generic
// PartyA/PartyB labels come from diarization; semantic roles (agent,
// customer) are inferred afterwards and kept out of the stored entity.
type Speaker string

const (
	PartyA Speaker = "PartyA"
	PartyB Speaker = "PartyB"

	// SpeakerSystem tags the synthetic segment produced when the model
	// response could not be validated.
	SpeakerSystem Speaker = "System"
)

// SpeakerSegment is one utterance. Timestamp is mm:ss and non-decreasing
// across a transcript; the model estimates it when no ground truth exists.
type SpeakerSegment struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Timestamp string  `json:"timestamp"`
}

// AnomalyBucket holds one party's findings. Both lists are always present:
// an empty list means "nothing found", a missing list is a schema violation.
type AnomalyBucket struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// CallAnalysis is the root entity returned by the pipeline. It is always
// structurally complete, whether it came from a validated model response or
// from the deterministic fallback; only the content quality differs.
// Consumers never branch on "is this a fallback".
type CallAnalysis struct {
	Objective      string                    `json:"objective"`
	Transcript     []SpeakerSegment          `json:"transcript"`
	Anomalies      map[Speaker]AnomalyBucket `json:"anomalies"`
	Conclusion     string                    `json:"conclusion"`
	Suggestions    []string                  `json:"suggestions"`
	Score          float64                   `json:"score"`
	ScoreReasoning string                    `json:"scoreReasoning"`
}

// RoleMap assigns the inferred semantic roles to the two parties. It is
// derived per analysis and never persisted; the roles are complementary.
type RoleMap struct {
	AgentRole    Speaker `json:"agentRole"`
	CustomerRole Speaker `json:"customerRole"`
}

// Empty returns a structurally complete CallAnalysis with no content. Error
// responses embed it so consumers always see the same shape.
func Empty() CallAnalysis {
	return CallAnalysis{
		Transcript: []SpeakerSegment{},
		Anomalies: map[Speaker]AnomalyBucket{
			PartyA: {Positive: []string{}, Negative: []string{}},
			PartyB: {Positive: []string{}, Negative: []string{}},
		},
		Suggestions: []string{},
	}
}
