package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tenorlab/tenorpick/internal/engine"
	"github.com/tenorlab/tenorpick/internal/scoring"
)

// batchFile is the on-disk shape of a batch request:
//
//	volatility:
//	  TSLA: 0.55
//	symbols:
//	  TSLA: ["2026-09-18", "2026-10-16"]
//	  KO:   ["2026-09-18"]
type batchFile struct {
	Volatility map[string]float64  `yaml:"volatility"`
	Symbols    map[string][]string `yaml:"symbols"`
}

func newBatchCmd() *cobra.Command {
	var flags optimizeFlags
	var filePath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Optimize expirations for many underlyings in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(flags, filePath)
		},
	}
	registerCommonFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVarP(&filePath, "file", "f", "batch.yaml", "batch request file")
	return cmd
}

func runBatch(flags optimizeFlags, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}
	var file batchFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse batch file: %w", err)
	}

	req := engine.BatchRequest{
		Candidates: make(map[string][]engine.RawCandidate, len(file.Symbols)),
		Volatility: file.Volatility,
		Strategy:   scoring.ParseStrategy(flags.strategy),
	}
	for symbol, dates := range file.Symbols {
		cands := make([]engine.RawCandidate, 0, len(dates))
		for _, d := range dates {
			cands = append(cands, engine.RawCandidate{Date: d})
		}
		req.Candidates[symbol] = cands
	}

	results := buildEngine(flags).BatchOptimize(req)

	symbols := make([]string, 0, len(results))
	for s := range results {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		entry := results[symbol]
		if entry.Failed() {
			fmt.Printf("%-6s  FAILED: %s\n", symbol, entry.Error)
			continue
		}
		w := entry.Winner
		fmt.Printf("%-6s  %s (%dd, %s) composite %.1f\n",
			symbol, w.Date, w.DaysToExpiry, w.ExpirationType, w.CompositeScore)
	}
	return nil
}
