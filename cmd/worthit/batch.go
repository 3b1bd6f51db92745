package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/input"
	"github.com/Veraticus/worth-it/internal/llm"
	"github.com/Veraticus/worth-it/internal/metrics"
	"github.com/Veraticus/worth-it/internal/service"
)

type batchOutput struct {
	Cache   *llm.CacheStats     `json:"cache,omitempty"`
	Reports []engine.Report     `json:"reports"`
	Metrics []metrics.Sample    `json:"metrics,omitempty"`
	Summary engine.BatchSummary `json:"summary"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate a JSON array of purchases",
		Long: `Evaluate and classify every purchase in a JSON array ("-" for stdin).

Purchases without a financialProfile use --profile when given. Progress is shown
on stderr; press Ctrl+C to stop early and still see the finished purchases.

Examples:
  worthit batch wishlist.json --profile household
  worthit batch wishlist.json --format json --metrics > results.json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().StringP("profile", "p", "", "stored profile for purchases that carry none")
	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	cmd.Flags().IntP("workers", "w", engine.DefaultConfig().ParallelWorkers, "parallel workers")
	cmd.Flags().Bool("no-classify", false, "skip spend classification")
	cmd.Flags().Bool("no-progress", false, "hide the progress bar")
	cmd.Flags().Bool("metrics", false, "print pipeline metrics afterwards")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	format, _ := flags.GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	data, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	purchases, err := input.DecodeBatch(data)
	if err != nil {
		return err
	}

	if name, _ := flags.GetString("profile"); name != "" {
		store, err := initStorage(cmd.Context())
		if err != nil {
			return err
		}
		profile, err := loadProfile(cmd.Context(), store, name)
		_ = store.Close()
		if err != nil {
			return err
		}
		for i := range purchases {
			if purchases[i].Profile == nil {
				p := *profile
				purchases[i].Profile = &p
			}
		}
	}

	logger := slog.Default()
	workers, _ := flags.GetInt("workers")

	var (
		classifier service.SpendClassifier
		cache      *llm.CacheStore
	)
	if skip, _ := flags.GetBool("no-classify"); !skip {
		c, err := createClassifier(logger)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()
		classifier = c
		cache = c.Cache()
	}

	evaluator := engine.NewWithConfig(classifier, logger, engine.Config{ParallelWorkers: workers})

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), true)
	defer handler.Stop()

	var step func()
	if hide, _ := flags.GetBool("no-progress"); !hide {
		step = cli.StepFunc(cli.NewProgressBar(cmd.ErrOrStderr(), len(purchases), "Evaluating purchases..."))
	}

	// A canceled run still reports what finished.
	reports, summary, runErr := evaluator.EvaluateBatch(ctx, purchases, step)

	out := batchOutput{Reports: reports, Summary: summary}
	if cache != nil {
		stats := cache.Stats()
		out.Cache = &stats
	}
	if show, _ := flags.GetBool("metrics"); show {
		samples, gatherErr := metrics.Snapshot(prometheus.DefaultGatherer)
		if gatherErr != nil {
			return fmt.Errorf("failed to gather metrics: %w", gatherErr)
		}
		out.Metrics = samples
	}

	if format == formatJSON {
		if writeErr := writeJSON(cmd.OutOrStdout(), out); writeErr != nil {
			return writeErr
		}
	} else if writeErr := renderBatch(cmd.OutOrStdout(), out); writeErr != nil {
		return writeErr
	}

	if runErr != nil {
		return fmt.Errorf("batch stopped after %d of %d purchases: %w", len(reports), len(purchases), runErr)
	}
	return nil
}

func renderBatch(w io.Writer, out batchOutput) error {
	for _, r := range out.Reports {
		if _, err := fmt.Fprintln(w, cli.RenderReport(r)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, cli.RenderBatchSummary(out.Summary)); err != nil {
		return err
	}
	if out.Cache != nil {
		if _, err := fmt.Fprintln(w, cli.RenderCacheStats(*out.Cache)); err != nil {
			return err
		}
	}
	if out.Metrics != nil {
		if _, err := fmt.Fprintln(w, cli.RenderMetrics(out.Metrics)); err != nil {
			return err
		}
	}
	return nil
}
