package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bluediscs/src/puzzle/discs"
)

func newEstimateCmd(a *app) *cobra.Command {
	var total uint64

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Derive a starting blue count from the configured ratio",
		Long: `Multiplies the total by the configured estimate ratio (15/21 by default)
and rounds down, then reports the exact probability of that arrangement.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("total") {
				total = a.cfg.Search.MinTotal
			}
			ratio := a.cfg.Estimate.Rational()
			blue, err := discs.Estimate(ratio, total)
			if err != nil {
				return err
			}

			e, err := discs.Evaluate(blue, total, a.cfg.Target.Rational())
			if err != nil {
				return err
			}
			a.logger.Debug("estimate computed",
				zap.Stringer("ratio", ratio),
				zap.Uint64("total", total),
				zap.Uint64("blue", blue),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "total:       %d\n", total)
			fmt.Fprintf(out, "ratio:       %s\n", ratio)
			fmt.Fprintf(out, "blue:        %d\n", blue)
			printEvaluation(cmd, e)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&total, "total", 0, "Total number of discs (default: search.min_total)")
	return cmd
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval BLUE TOTAL",
		Short: "Compute the exact probability of drawing two blue discs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			blue, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid blue count %q: %w", args[0], err)
			}
			total, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid total %q: %w", args[1], err)
			}

			e, err := discs.Evaluate(blue, total, a.cfg.Target.Rational())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "blue:        %d\n", blue)
			fmt.Fprintf(out, "total:       %d\n", total)
			printEvaluation(cmd, e)
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		minTotal, maxTotal uint64
		workers            int
		chunk              uint64
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find the smallest total with an exact arrangement",
		Long: `Scans totals from --min to --max and reports the smallest one whose
blue count gives exactly the target probability. The range is split into
chunks scanned by --workers goroutines. Interrupt to stop early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("min") {
				minTotal = a.cfg.Search.MinTotal
			}
			if !flags.Changed("max") {
				maxTotal = a.cfg.Search.MaxTotal
			}
			if !flags.Changed("workers") {
				workers = a.cfg.Search.Workers
			}
			if !flags.Changed("chunk") {
				chunk = a.cfg.Search.Chunk
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			target := a.cfg.Target.Rational()
			s := discs.NewSearcher(discs.Options{
				Target:  &target,
				Workers: workers,
				Chunk:   chunk,
				Logger:  a.logger,
			})
			sol, err := s.Search(ctx, minTotal, maxTotal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "blue=%d total=%d\n", sol.Blue, sol.Total)
			fmt.Fprintf(out, "probability: %s\n", sol.Probability)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&minTotal, "min", 0, "Smallest total to examine (default: search.min_total)")
	cmd.Flags().Uint64Var(&maxTotal, "max", 0, "Largest total to examine (default: search.max_total)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent chunk scanners (default: search.workers)")
	cmd.Flags().Uint64Var(&chunk, "chunk", 0, "Totals per work unit (default: search.chunk)")
	return cmd
}

func printEvaluation(cmd *cobra.Command, e discs.Evaluation) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "probability: %s (%s, ~%.15f)\n", e.Probability, e.Probability.MixedString(), e.Probability.Float64())
	switch {
	case e.Matches():
		fmt.Fprintln(out, "target:      matched")
	case e.Cmp < 0:
		fmt.Fprintln(out, "target:      below")
	default:
		fmt.Fprintln(out, "target:      above")
	}
}
