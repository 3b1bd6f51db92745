package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/llm"
	"github.com/Veraticus/worth-it/internal/model"
)

type classification struct {
	Item   string                     `json:"item"`
	Result model.ClassificationResult `json:"result"`
	Cost   float64                    `json:"cost"`
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify ITEM COST [ITEM COST...]",
		Short: "Bucket purchases into spend categories",
		Long: `Classify one or more purchases as ESSENTIAL_DAILY, DISCRETIONARY_SMALL or HIGH_VALUE.

Purchases of $300 or more are HIGH_VALUE without asking the categorizer. Results
are cached for the rest of the run, so repeating an item shows a cache hit.

Examples:
  worthit classify "oat milk" 4.99
  worthit classify coffee 4.5 coffee 4.5 "standing desk" 450 --stats`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected ITEM COST pairs, got %d arguments", len(args))
			}
			return nil
		},
		RunE: runClassify,
	}

	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	cmd.Flags().Bool("stats", false, "print cache statistics afterwards")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}
	showStats, _ := cmd.Flags().GetBool("stats")

	type pending struct {
		item string
		cost float64
	}
	items := make([]pending, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		cost, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("Cost for %q must be a number, got %q", args[i], args[i+1]), err)
		}
		items = append(items, pending{item: args[i], cost: cost})
	}

	classifier, err := createClassifier(slog.Default())
	if err != nil {
		return err
	}
	defer func() { _ = classifier.Close() }()

	results := make([]classification, 0, len(items))
	for _, p := range items {
		results = append(results, classification{
			Item:   p.item,
			Cost:   p.cost,
			Result: classifier.Classify(cmd.Context(), p.item, p.cost),
		})
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		doc := map[string]any{"classifications": results}
		if showStats {
			doc["cache"] = classifier.Cache().Stats()
		}
		return writeJSON(out, doc)
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(out, cli.RenderClassification(r.Item, r.Cost, r.Result)); err != nil {
			return err
		}
	}
	if showStats {
		return printCacheStats(cmd, classifier)
	}
	return nil
}

func printCacheStats(cmd *cobra.Command, classifier *llm.Classifier) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCacheStats(classifier.Cache().Stats()))
	return err
}
