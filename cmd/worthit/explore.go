package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/tui"
)

func exploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Try out changes to a purchase and watch the verdict move",
		Long: `Open an interactive view of a purchase. Move between cost, income, expenses,
debt payments and savings, nudge them up and down or type a new value, and the
verdict and flip suggestions update as you go. The final figures are printed
as a decision card when you quit.

Takes the same purchase flags as evaluate.

Examples:
  worthit explore --item "Road bike" --cost 1800 --profile household
  worthit explore --input purchase.json`,
		Args: cobra.NoArgs,
		RunE: runExplore,
	}

	addPurchaseFlags(cmd.Flags())
	return cmd
}

func runExplore(cmd *cobra.Command, _ []string) error {
	in, err := buildPurchase(cmd)
	if err != nil {
		return err
	}

	// Spend classification never changes the score.
	evaluator := engine.New(nil, slog.Default())

	report, err := tui.Run(cmd.Context(), evaluator, in)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReport(report))
	return err
}
