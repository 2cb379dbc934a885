package analysis

import "call-quality-go/internal/types"

// FlattenAnomalies projects the two-party buckets into the single ordered
// list older consumers expect: PartyA positive, PartyA negative, PartyB
// positive, PartyB negative, each sub-list's internal order preserved. The
// structured anomalies field stays canonical; this is a projection, never a
// second source of truth.
func FlattenAnomalies(a types.CallAnalysis) []string {
	bucketA := a.Anomalies[types.PartyA]
	bucketB := a.Anomalies[types.PartyB]

	flat := make([]string, 0, len(bucketA.Positive)+len(bucketA.Negative)+len(bucketB.Positive)+len(bucketB.Negative))
	flat = append(flat, bucketA.Positive...)
	flat = append(flat, bucketA.Negative...)
	flat = append(flat, bucketB.Positive...)
	flat = append(flat, bucketB.Negative...)
	return flat
}
