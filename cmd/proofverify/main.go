// Command proofverify is a standalone tool for verifying exported
// typing proofs.
//
// It needs no event log and no network: a proof is checked against the
// published v1 JSON Schema and for internal consistency (factor order,
// weight binding, gated score arithmetic, interpretation bucket, event
// ordering), and optionally against the final text's digest.
//
// Usage:
//
//	proofverify [flags] <proof.json>
//
// Examples:
//
//	# Basic verification
//	proofverify proof.json
//
//	# Verify the content digest against the final text
//	proofverify -text draft.txt proof.json
//
//	# JSON output for pipelines
//	proofverify -format json proof.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"typewitness/internal/proof"
)

var (
	// Version information (set at build time)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	textPath := flag.String("text", "", "final text file to check the content digest against")
	formatStr := flag.String("format", "text", "output format: text, json")
	output := flag.String("output", "", "output file (default: stdout)")
	quiet := flag.Bool("quiet", false, "quiet mode - only set the exit code")
	exitCode := flag.Bool("exit-code", true, "exit with non-zero code on verification failure")
	versionFlag := flag.Bool("version", false, "print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "proofverify - Verify exported typing proofs\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <proof.json>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("proofverify %s (commit: %s, built: %s)\n", version, commit, buildTime)
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: proof file required\n\n")
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading proof: %v\n", err)
		os.Exit(1)
	}

	var finalText *string
	if *textPath != "" {
		textData, err := os.ReadFile(*textPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading text: %v\n", err)
			os.Exit(1)
		}
		s := string(textData)
		finalText = &s
	}

	result := proof.Verify(data, finalText)

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	if !*quiet {
		switch *formatStr {
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
				os.Exit(1)
			}
		default:
			printResult(w, result)
		}
	}

	if *exitCode && !result.Valid {
		os.Exit(1)
	}
}

// printResult writes a human-readable verification summary.
func printResult(w io.Writer, result proof.VerifyResult) {
	for _, c := range result.Checks {
		marker := "PASS"
		if !c.Passed {
			marker = "FAIL"
		}
		fmt.Fprintf(w, "[%s] %s\n", marker, c.Name)
		if c.Detail != "" {
			fmt.Fprintf(w, "       %s\n", c.Detail)
		}
	}
	if result.Valid {
		fmt.Fprintln(w, "\nProof verified.")
	} else {
		fmt.Fprintln(w, "\nProof verification FAILED.")
	}
}
