package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/config"
	"github.com/Veraticus/worth-it/internal/llm"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/service"
	"github.com/Veraticus/worth-it/internal/storage"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// initStorage opens and migrates the profile database.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// createClassifier builds the cached spend classifier. Without an API key
// every uncached lookup falls back, but the price rule still applies.
func createClassifier(logger *slog.Logger) (*llm.Classifier, error) {
	cfg, err := config.LoadClassifierConfig()
	if err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		logger.Warn("No categorizer API key configured; small purchases fall back to the default category",
			"provider", cfg.Provider)
		return llm.NewClassifierWithClient(llm.NewOfflineClient(cfg.Provider), nil, cfg, logger), nil
	}

	classifier, err := llm.NewClassifier(cfg, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	return classifier, nil
}

// loadProfile fetches a stored profile, turning a miss into a user-facing error.
func loadProfile(ctx context.Context, store service.ProfileStore, name string) (*model.FinancialProfile, error) {
	profile, err := store.GetProfile(ctx, name)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("No profile named %q. Create one with: worthit profile set %s", name, name), err)
	}
	return profile, err
}

// readDocument reads a file, or stdin when path is "-".
func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (use text or json)", common.ErrInvalidConfig, format)
	}
}
