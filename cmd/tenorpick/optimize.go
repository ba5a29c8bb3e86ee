package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tenorlab/tenorpick/internal/config"
	"github.com/tenorlab/tenorpick/internal/engine"
	"github.com/tenorlab/tenorpick/internal/explain"
	"github.com/tenorlab/tenorpick/internal/scoring"
)

type optimizeFlags struct {
	symbol       string
	strategy     string
	volatility   float64
	earningsDays int
	withProcess  bool
	weightsPath  string
	profilesPath string
}

func registerCommonFlags(fs *pflag.FlagSet, f *optimizeFlags) {
	fs.StringVarP(&f.symbol, "symbol", "s", "", "underlying ticker for stock-specific adjustment")
	fs.StringVar(&f.strategy, "strategy", string(scoring.StrategyCashSecuredPut), "strategy preset: csp, covered_call, credit_spread")
	fs.Float64Var(&f.volatility, "volatility", 0, "implied/realized volatility estimate (default 0.3)")
	fs.StringVar(&f.weightsPath, "weights", "", "path to a weights.yaml override")
	fs.StringVar(&f.profilesPath, "profiles", "", "path to a profiles.yaml table")
}

func newOptimizeCmd() *cobra.Command {
	var flags optimizeFlags

	cmd := &cobra.Command{
		Use:   "optimize [expiration dates...]",
		Short: "Rank expiration dates for one underlying",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(flags, args)
		},
	}
	registerCommonFlags(cmd.Flags(), &flags)
	cmd.Flags().IntVar(&flags.earningsDays, "earnings-days", -1, "days until the next earnings report, if known")
	cmd.Flags().BoolVar(&flags.withProcess, "explain", false, "print the full optimization audit trail")
	return cmd
}

func buildEngine(flags optimizeFlags) *engine.Engine {
	cfg := engine.Config{}
	if flags.profilesPath != "" {
		cfg.Profiles = config.LoadProfilesOrDefault(flags.profilesPath)
	}
	return engine.New(cfg)
}

func resolveWeights(flags optimizeFlags) *scoring.WeightConfig {
	if flags.weightsPath == "" {
		return nil
	}
	table := config.LoadWeights(flags.weightsPath)
	w := table[scoring.ParseStrategy(flags.strategy)]
	return &w
}

func runOptimize(flags optimizeFlags, dates []string) error {
	raw := make([]engine.RawCandidate, 0, len(dates))
	for _, d := range dates {
		raw = append(raw, engine.RawCandidate{Date: d})
	}

	opts := engine.Options{
		Symbol:      flags.symbol,
		Volatility:  flags.volatility,
		Strategy:    scoring.ParseStrategy(flags.strategy),
		Weights:     resolveWeights(flags),
		WithProcess: flags.withProcess,
	}
	if flags.earningsDays >= 0 {
		days := flags.earningsDays
		opts.DaysToEarnings = &days
	}

	res, err := buildEngine(flags).FindOptimal(raw, opts)
	if err != nil {
		return err
	}

	w := res.Winner
	fmt.Printf("Winner: %s (%dd, %s) composite %.1f\n", w.Date, w.DaysToExpiry, w.ExpirationType, w.CompositeScore)
	fmt.Printf("  theta %.0f | gamma %.0f | liquidity %.0f | event %.0f\n",
		w.ThetaEfficiency, w.GammaRisk, w.LiquidityScore, w.EventBuffer)
	fmt.Printf("  %s\n", w.SelectionReason)

	if res.Process != nil {
		renderProcess(res.Process)
	}
	return nil
}

func renderProcess(p *explain.OptimizationProcess) {
	fmt.Printf("\nOptimization %s (%s)\n", p.ID, p.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Strategy: %s, volatility %.2f\n", p.Strategy, p.Screening.Volatility)
	fmt.Printf("Theta window %d-%dd, gamma risk under %dd\n\n",
		p.Screening.OptimalThetaWindow[0], p.Screening.OptimalThetaWindow[1], p.Screening.GammaRiskUnderDays)

	fmt.Println("Rank  Date        Days  Type          Theta  Gamma  Liq  Event  Composite")
	for _, row := range p.Candidates {
		marker := " "
		if row.IsWinner {
			marker = "*"
		}
		fmt.Printf("%s%-4d  %-10s  %4d  %-12s  %5.0f  %5.0f  %3.0f  %5.0f  %9.2f\n",
			marker, row.Rank, row.Date, row.DaysToExpiry, row.ExpirationType,
			row.ThetaEfficiency, row.GammaRisk, row.LiquidityScore, row.EventBuffer, row.CompositeScore)
	}

	if len(p.Rejections) > 0 {
		fmt.Println("\nWhy the losers lost:")
		for _, r := range p.Rejections {
			fmt.Printf("  #%d %s: %s\n", r.Rank, r.Date, r.Reason)
		}
	}
	if len(p.Advantages) > 0 {
		fmt.Println("\nWhy the winner won:")
		for _, a := range p.Advantages {
			fmt.Printf("  - %s\n", a)
		}
	}
	fmt.Println()
	fmt.Println(strings.TrimRight(p.Methodology, "\n"))
}
