package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"secreport/internal/config"
	"secreport/internal/ingest"
	"secreport/internal/logger"
	"secreport/internal/metrics"
	"secreport/internal/output"
	"secreport/internal/report"
	"secreport/internal/state"
	"secreport/internal/types"
	"syscall"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		runCommand(os.Args[2:])
	case "show":
		showCommand(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: secreport <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  run   Analyze the auth, firewall and IDS logs and write the report")
	fmt.Println("  show  Print the latest persisted report")
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	diag, closer := openLogger(cfg)
	defer closer.Close()

	var sinks []report.Sink
	sinks = append(sinks, output.NewJSONFile(cfg.Output.ReportPath))

	if cfg.Output.StateDBPath != "" {
		store, err := state.NewStore(cfg.Output.StateDBPath)
		if err != nil {
			diag.Error("Failed to open snapshot store %s: %v", cfg.Output.StateDBPath, err)
		} else {
			defer store.Close()
			sinks = append(sinks, store)
		}
	}

	var display report.Display
	if !cfg.Output.Quiet {
		display = output.NewConsole(os.Stdout)
		fmt.Print("\nAnalyzing logs for security threats...\n\n")
	}

	recorder := metrics.New()
	sink := output.NewMulti(sinks...)

	assembler := report.NewAssembler(report.Options{
		Sources: report.Sources{
			Auth:     ingest.NewFileTailer(cfg.Input.AuthLogPath),
			Firewall: ingest.NewFileTailer(cfg.Input.FirewallLogPath),
			IDS:      ingest.NewFileTailer(cfg.Input.IDSLogPath),
		},
		Threshold: cfg.Detection.BruteForceThreshold,
		Sink:      sink,
		Display:   display,
		Logger:    diag,
		Metrics:   recorder,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sink errors are already logged by the assembler; report each destination
	rep, _ := assembler.Run(ctx)
	if !cfg.Output.Quiet {
		fmt.Println()
		for _, o := range sink.Outcomes() {
			if o.Err != nil {
				fmt.Printf("Failed to save report to %s: %v\n", o.Destination, o.Err)
			} else {
				fmt.Printf("Report saved to %s\n", o.Destination)
			}
		}
	}

	if cfg.Output.MetricsTextfile != "" {
		if err := recorder.WriteTextfile(cfg.Output.MetricsTextfile); err != nil {
			diag.Error("Failed to write metrics to %s: %v", cfg.Output.MetricsTextfile, err)
		}
	}

	if rep.Failures() == len(types.Categories) {
		diag.Error("All log sources failed")
	}
}

func showCommand(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config file (optional)")
	top := fs.Int("top", 5, "Number of top attackers to list (snapshot store only)")
	fs.Parse(args)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	console := output.NewConsole(os.Stdout)

	// Prefer the snapshot store when configured, it also knows the attackers
	if cfg.Output.StateDBPath != "" {
		store, err := state.NewStore(cfg.Output.StateDBPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer store.Close()

		ctx := context.Background()
		rep, runID, ok, err := store.Latest(ctx)
		if err != nil {
			log.Fatalf("Failed to read snapshot: %v", err)
		}
		if !ok {
			fmt.Println("No report snapshot stored yet.")
			return
		}

		if err := console.Show(rep); err != nil {
			log.Fatalf("Failed to print report: %v", err)
		}
		fmt.Printf("\nRun: %s\n", runID)

		attackers, err := store.TopAttackers(ctx, *top)
		if err != nil {
			log.Fatalf("Failed to read attackers: %v", err)
		}
		if len(attackers) > 0 {
			fmt.Println("Top attackers:")
			for _, a := range attackers {
				fmt.Printf("  %-15s %d failed logins\n", a.IP, a.FailedLogins)
			}
		}
		return
	}

	rep, err := output.ReadJSONFile(cfg.Output.ReportPath)
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}
	if err := console.Show(rep); err != nil {
		log.Fatalf("Failed to print report: %v", err)
	}
}

// openLogger opens the diagnostic log file, falling back to stderr
func openLogger(cfg *types.Config) (*logger.Logger, io.Closer) {
	diag, closer, err := logger.NewFile(logger.FileConfig{
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		Stderr:     cfg.Logging.Stderr,
	})
	if err != nil {
		log.Printf("Warning: %v, logging to stderr", err)
		return logger.New(os.Stderr), io.NopCloser(nil)
	}
	return diag, closer
}
