package detect

import (
	"context"
	"secreport/internal/ingest"
	"secreport/internal/parser"
)

// Aggregator folds the events of one source into a category result
type Aggregator[E, R any] interface {
	Add(evt E, line ingest.LogLine)
	Result() R
}

// Stats describes one scan of a source
type Stats struct {
	Lines  int
	Events int
}

// Run scans src once, extracts events with p and folds them into agg.
// On error the partial aggregate is discarded and the zero R is returned.
func Run[E, R any](ctx context.Context, src ingest.Source, p parser.Parser[E], agg Aggregator[E, R]) (R, Stats, error) {
	var stats Stats

	err := src.Each(ctx, func(line ingest.LogLine) {
		stats.Lines++
		evt := p.Parse(line.Content)
		if evt == nil {
			return
		}
		stats.Events++
		agg.Add(*evt, line)
	})
	if err != nil {
		var zero R
		return zero, stats, err
	}

	return agg.Result(), stats, nil
}
