// Command typewitness analyzes a captured typing event stream and
// exports a versioned typing proof.
//
// The event stream is JSONL produced by an external capture tool, one
// event per line:
//
//	{"type":"keystroke","timestamp":0.000,"character":"h"}
//	{"type":"keystroke","timestamp":0.182,"character":"i"}
//	{"type":"paste","timestamp":2.741,"characterCount":42}
//
// Usage:
//
//	typewitness [flags] <events.jsonl>
//
// Examples:
//
//	# Human-readable analysis report
//	typewitness session.jsonl
//
//	# Export a proof with the redacted preset
//	typewitness -format json -preset redacted -output proof.json session.jsonl
//
//	# Full proof bound to the final text
//	typewitness -format json -preset full -text draft.txt session.jsonl
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"typewitness/internal/analysis"
	"typewitness/internal/config"
	"typewitness/internal/keystroke"
	"typewitness/internal/logging"
	"typewitness/internal/proof"
)

var (
	// Version information (set at build time)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "", "configuration file (toml, json, or yaml)")
	preset := flag.String("preset", "", "export preset: standard, minimal, redacted, full")
	textPath := flag.String("text", "", "final text file for content verification")
	output := flag.String("output", "", "output file (default: stdout)")
	format := flag.String("format", "", "output format: text (report) or json (proof)")
	versionFlag := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "typewitness - Analyze typing events and export a typing proof\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <events.jsonl>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExport Presets:\n")
		fmt.Fprintf(os.Stderr, "  standard  - events exported, no verification, no redaction (default)\n")
		fmt.Fprintf(os.Stderr, "  minimal   - metrics and confidence only\n")
		fmt.Fprintf(os.Stderr, "  redacted  - events exported with characters replaced by \"*\"\n")
		fmt.Fprintf(os.Stderr, "  full      - events plus content verification\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("typewitness %s (commit: %s, built: %s)\n", version, commit, buildTime)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: event stream file required\n\n")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if *preset != "" {
		cfg.Export.Preset = *preset
	}
	if *format != "" {
		cfg.Report.Format = *format
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	defer logger.Close()

	opts, err := cfg.Export.Options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	log, err := readEvents(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading events: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("event stream loaded",
		"keystrokes", len(log.Keystrokes),
		"pastes", len(log.Pastes))

	finalText := ""
	if *textPath != "" {
		data, err := os.ReadFile(*textPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading text: %v\n", err)
			os.Exit(1)
		}
		finalText = string(data)
	}

	w := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	metrics := analysis.Aggregate(log)
	score := analysis.Score(metrics)
	logger.Info("analysis complete",
		"keystrokes", metrics.TotalKeystrokes,
		"confidence", score.Score)

	switch cfg.Report.Format {
	case "json":
		exporter := proof.NewExporter(opts)
		p := exporter.Assemble(log, metrics, score, finalText)
		data, err := p.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding proof: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(w, "%s\n", data)
	default:
		analysis.PrintReport(w, metrics, score)
	}
}

// loadConfig loads the named file, or defaults when none is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		cfg.ApplyEnvOverrides()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader(path).Load()
}

// newLogger builds a logger from the loaded configuration.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(&logging.Config{
		Level:     level,
		Format:    format,
		Output:    cfg.Logging.Output,
		FilePath:  cfg.Logging.FilePath,
		Component: "typewitness",
	})
}

// readEvents decodes the JSONL event stream at path. "-" reads stdin.
func readEvents(path string) (keystroke.Log, error) {
	if path == "-" {
		return keystroke.ReadStream(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return keystroke.Log{}, err
	}
	defer f.Close()
	return keystroke.ReadStream(f)
}
