package detect

import (
	"secreport/internal/feature"
	"secreport/internal/ingest"
	"secreport/internal/parser"
	"secreport/internal/types"
)

// BruteForceSummary maps each flagged IP to its failed-attempt count
type BruteForceSummary map[string]int

// BruteForce counts failed passwords per IP and flags IPs above a threshold
type BruteForce struct {
	threshold int
	features  *feature.Accumulator
}

// NewBruteForce creates the aggregator. Counts strictly greater than
// threshold are flagged; a non-positive threshold uses the default.
func NewBruteForce(threshold int) *BruteForce {
	if threshold <= 0 {
		threshold = types.DefaultBruteForceThreshold
	}
	return &BruteForce{
		threshold: threshold,
		features:  feature.NewAccumulator(),
	}
}

func (b *BruteForce) Add(evt parser.AuthEvent, line ingest.LogLine) {
	b.features.AddFailure(evt.SourceIP, line.Num)
}

// Result returns the flagged IPs, possibly empty, never nil
func (b *BruteForce) Result() BruteForceSummary {
	return BruteForceSummary(b.features.Flagged(b.threshold))
}
