package feature

import (
	"sync"
)

// FeatureVector represents the accumulated state of an entity (IP)
type FeatureVector struct {
	IP           string
	FailedLogins int
	FirstLine    int // source line of the first failure
	LastLine     int // source line of the latest failure
}

// Accumulator tracks failures per IP across one whole source.
// There is no time window: the source is a single implicit window.
type Accumulator struct {
	mu       sync.Mutex
	features map[string]*FeatureVector
}

// NewAccumulator creates a new feature accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{
		features: make(map[string]*FeatureVector),
	}
}

// AddFailure records a failed login attempt seen on the given source line
func (a *Accumulator) AddFailure(ip string, lineNum int) *FeatureVector {
	a.mu.Lock()
	defer a.mu.Unlock()

	feat, exists := a.features[ip]
	if !exists {
		feat = &FeatureVector{
			IP:        ip,
			FirstLine: lineNum,
		}
		a.features[ip] = feat
	}

	feat.FailedLogins++
	feat.LastLine = lineNum

	return feat
}

// GetFeatures returns a copy of the current feature vector for an IP
func (a *Accumulator) GetFeatures(ip string) *FeatureVector {
	a.mu.Lock()
	defer a.mu.Unlock()
	if feat, ok := a.features[ip]; ok {
		cp := *feat
		return &cp
	}
	return nil
}

// Len returns the number of distinct IPs seen
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.features)
}

// Flagged returns the failure counts of IPs strictly above threshold.
// The result is never nil.
func (a *Accumulator) Flagged(threshold int) map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]int)
	for ip, feat := range a.features {
		if feat.FailedLogins > threshold {
			out[ip] = feat.FailedLogins
		}
	}
	return out
}
