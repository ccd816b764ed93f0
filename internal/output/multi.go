package output

import (
	"context"
	"errors"
	"fmt"
	"secreport/internal/report"
	"strings"
	"sync"
)

// Outcome is the result of one sink write
type Outcome struct {
	Destination string
	Err         error
}

// Multi fans a report out to several sinks. Every sink is attempted;
// the errors of the failing ones are joined, each prefixed with its destination.
type Multi struct {
	sinks []report.Sink

	mu       sync.Mutex
	outcomes []Outcome
}

func NewMulti(sinks ...report.Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Destination() string {
	names := make([]string, 0, len(m.sinks))
	for _, s := range m.sinks {
		names = append(names, s.Destination())
	}
	return strings.Join(names, ", ")
}

func (m *Multi) Write(ctx context.Context, r report.SecurityReport) error {
	outcomes := make([]Outcome, 0, len(m.sinks))
	var errs []error
	for _, s := range m.sinks {
		err := s.Write(ctx, r)
		outcomes = append(outcomes, Outcome{Destination: s.Destination(), Err: err})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Destination(), err))
		}
	}

	m.mu.Lock()
	m.outcomes = outcomes
	m.mu.Unlock()

	return errors.Join(errs...)
}

// Outcomes returns the per-sink results of the last Write, in sink order
func (m *Multi) Outcomes() []Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Outcome(nil), m.outcomes...)
}
