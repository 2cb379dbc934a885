package analysis

import (
	"strings"

	"call-quality-go/internal/types"
)

// agentSkillKeywords is the evidence table for role inference: terms in a
// party's positive findings that indicate service-agent skill.
var agentSkillKeywords = []string{
	"professional",
	"helpful",
	"helped",
	"explain",
	"guided",
	"guide",
	"assist",
	"addressed",
	"resolved",
	"patient",
	"courteous",
	"informative",
	"clarified",
	"acknowledged",
}

// InferRoles assigns semantic roles to the two diarized parties from keyword
// evidence in their positive findings. Pure and deterministic so it can be
// tested against literal finding lists. Rules are evaluated in order:
//
//  1. PartyB shows agent-skill evidence, PartyA does not, and at least one
//     suggestion exists (suggestions target the non-agent party): agent is
//     PartyB.
//  2. PartyA shows agent-skill evidence and PartyB does not: agent is PartyA.
//  3. Default: agent is PartyB. In a two-party business call the party being
//     called is more often staff.
func InferRoles(a types.CallAnalysis) types.RoleMap {
	partyAEvidence := hasAgentEvidence(a.Anomalies[types.PartyA].Positive)
	partyBEvidence := hasAgentEvidence(a.Anomalies[types.PartyB].Positive)

	switch {
	case partyBEvidence && !partyAEvidence && len(a.Suggestions) > 0:
		return types.RoleMap{AgentRole: types.PartyB, CustomerRole: types.PartyA}
	case partyAEvidence && !partyBEvidence:
		return types.RoleMap{AgentRole: types.PartyA, CustomerRole: types.PartyB}
	default:
		return types.RoleMap{AgentRole: types.PartyB, CustomerRole: types.PartyA}
	}
}

func hasAgentEvidence(findings []string) bool {
	for _, finding := range findings {
		lower := strings.ToLower(finding)
		for _, kw := range agentSkillKeywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
	}
	return false
}
