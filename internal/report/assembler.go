package report

import (
	"context"
	"fmt"
	"secreport/internal/detect"
	"secreport/internal/ingest"
	"secreport/internal/logger"
	"secreport/internal/metrics"
	"secreport/internal/parser"
	"secreport/internal/types"
	"sync"
	"time"
)

// Sink persists an assembled report
type Sink interface {
	Write(ctx context.Context, r SecurityReport) error
	Destination() string
}

// Display renders an assembled report for a human
type Display interface {
	Show(r SecurityReport) error
}

// Sources are the three log origins of a run
type Sources struct {
	Auth     ingest.Source
	Firewall ingest.Source
	IDS      ingest.Source
}

// Options configures an Assembler
type Options struct {
	Sources   Sources
	Threshold int // brute-force threshold, strict ">"
	Sink      Sink
	Display   Display
	Logger    *logger.Logger
	Metrics   *metrics.Recorder
	Clock     func() time.Time
}

// Assembler runs the three category pipelines and builds the report
type Assembler struct {
	sources   Sources
	threshold int
	sink      Sink
	display   Display
	log       *logger.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

// NewAssembler creates an assembler; missing Logger and Clock get defaults
func NewAssembler(opts Options) *Assembler {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Threshold <= 0 {
		opts.Threshold = types.DefaultBruteForceThreshold
	}
	return &Assembler{
		sources:   opts.Sources,
		threshold: opts.Threshold,
		sink:      opts.Sink,
		display:   opts.Display,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		now:       opts.Clock,
	}
}

// Generate analyzes every category exactly once and returns the report.
// Categories run concurrently; a failure in one never affects another.
func (a *Assembler) Generate(ctx context.Context) SecurityReport {
	start := a.now()
	a.log.Info("Started analyzing logs for security threats.")

	var (
		wg         sync.WaitGroup
		bruteForce Result[detect.BruteForceSummary]
		blocked    Result[detect.BlockedIPSet]
		alerts     Result[detect.AlertList]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		bruteForce = analyze[parser.AuthEvent, detect.BruteForceSummary](ctx, a, types.CategoryAuth,
			a.sources.Auth, parser.NewAuthParser(), detect.NewBruteForce(a.threshold), a.logBruteForce)
	}()
	go func() {
		defer wg.Done()
		blocked = analyze[parser.FirewallEvent, detect.BlockedIPSet](ctx, a, types.CategoryFirewall,
			a.sources.Firewall, parser.NewFirewallParser(), detect.NewBlocked(), a.logBlocked)
	}()
	go func() {
		defer wg.Done()
		alerts = analyze[parser.IDSEvent, detect.AlertList](ctx, a, types.CategoryIDS,
			a.sources.IDS, parser.NewIDSParser(), detect.NewAlerts(), a.logAlerts)
	}()
	wg.Wait()

	// Captured once, after every category has finished
	end := a.now()
	generatedAt := end.Truncate(time.Second)
	a.metrics.Completed(generatedAt, end.Sub(start))

	return SecurityReport{
		BruteForce:  bruteForce,
		BlockedIPs:  blocked,
		IDSAlerts:   alerts,
		GeneratedAt: generatedAt,
	}
}

// Run generates the report, displays it and hands it to the sink.
// A persistence error is logged and returned, but the report is complete
// and already displayed.
func (a *Assembler) Run(ctx context.Context) (SecurityReport, error) {
	rep := a.Generate(ctx)

	if a.display != nil {
		if err := a.display.Show(rep); err != nil {
			a.log.Error("Failed to display report: %v", err)
		}
	}

	var persistErr error
	if a.sink != nil {
		dest := a.sink.Destination()
		if err := a.sink.Write(ctx, rep); err != nil {
			a.log.Error("Failed to save report to %s: %v", dest, err)
			a.metrics.SinkFailed()
			persistErr = fmt.Errorf("failed to persist report to %s: %w", dest, err)
		} else {
			a.log.Info("Report successfully saved to %s", dest)
		}
	}

	a.log.Info("Report generation completed.")
	return rep, persistErr
}

// analyze runs one category pipeline and turns its outcome into a Result
func analyze[E, R any](
	ctx context.Context,
	a *Assembler,
	category types.Category,
	src ingest.Source,
	p parser.Parser[E],
	agg detect.Aggregator[E, R],
	onSuccess func(R) int,
) Result[R] {
	if src == nil {
		f := UnexpectedFailure("no " + string(category) + " source configured")
		a.log.Error("Unexpected error in %s analysis: %s", category, f.Message)
		a.metrics.Failed(string(category), f.Kind.String())
		return Fail[R](f)
	}

	value, stats, err := detect.Run(ctx, src, p, agg)
	a.metrics.Scanned(string(category), stats.Lines, stats.Events)
	if err != nil {
		f := classify(category, err)
		if f.Kind == NotFound {
			a.log.Error("Error: %s not found", src.Name())
		} else {
			a.log.Error("Unexpected error in %s analysis: %v", category, err)
		}
		a.metrics.Failed(string(category), f.Kind.String())
		return Fail[R](f)
	}

	a.metrics.Indicator(string(category), onSuccess(value))
	return Ok(value)
}

func (a *Assembler) logBruteForce(s detect.BruteForceSummary) int {
	if len(s) == 0 {
		a.log.Info("No brute-force attempts detected")
	} else {
		// fmt prints maps with sorted keys
		a.log.Info("Brute-force attempts detected: %v", map[string]int(s))
	}
	return len(s)
}

func (a *Assembler) logBlocked(s detect.BlockedIPSet) int {
	a.log.Info("Blocked IPs detected: %v", s.Sorted())
	return len(s)
}

func (a *Assembler) logAlerts(l detect.AlertList) int {
	a.log.Info("IDS alerts detected: %q", []string(l))
	return len(l)
}

