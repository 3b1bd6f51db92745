package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/common"
	"github.com/Veraticus/worth-it/internal/config"
	"github.com/Veraticus/worth-it/internal/input"
	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/ofx"
	"github.com/Veraticus/worth-it/internal/storage"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage stored financial profiles",
		Long: `Store the figures evaluate needs so you don't retype them.

Profiles hold monthly income, expenses, debt payments, savings, risk tolerance
and financial goal. Decisions themselves are never stored.`,
	}

	cmd.AddCommand(profileSetCmd())
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileListCmd())
	cmd.AddCommand(profileDeleteCmd())
	cmd.AddCommand(profileImportOFXCmd())

	return cmd
}

func profileSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set NAME",
		Short: "Create or update a profile",
		Long: `Create or update a profile from flags, a JSON document or interactive prompts.

Fields not given keep their stored value.

Examples:
  worthit profile set household --income 6000 --expenses 4200 --savings 15000
  worthit profile set household --from profile.json
  worthit profile set household --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: runProfileSet,
	}

	addProfileFlags(cmd.Flags())
	cmd.Flags().String("from", "", "profile JSON document (\"-\" for stdin)")
	cmd.Flags().Bool("interactive", false, "prompt for each field")

	return cmd
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	flags := cmd.Flags()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var profile model.FinancialProfile
	existing, err := store.GetProfile(ctx, name)
	switch {
	case err == nil:
		profile = *existing
	case errors.Is(err, common.ErrNotFound):
	default:
		return err
	}

	if path, _ := flags.GetString("from"); path != "" {
		data, readErr := readDocument(cmd, path)
		if readErr != nil {
			return readErr
		}
		if profile, err = input.DecodeProfile(data); err != nil {
			return err
		}
	}

	applyProfileFlags(flags, &profile)

	if interactive, _ := flags.GetBool("interactive"); interactive {
		prompter := cli.NewProfilePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if profile, err = prompter.PromptProfile(ctx, profile); err != nil {
			return err
		}
	}

	if err := storage.ValidateProfile(profile); err != nil {
		return common.NewUserError(err.Error(), err)
	}
	if err := store.SaveProfile(ctx, name, profile); err != nil {
		return err
	}

	slog.Info("Saved profile", "name", name)
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved profile %q", name)))
	return nil
}

func profileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a profile and its derived summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			format, _ := cmd.Flags().GetString("format")
			if err := validateFormat(format); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profile, err := loadProfile(ctx, store, args[0])
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Profile model.FinancialProfile `json:"profile"`
					Summary model.Summary          `json:"summary"`
				}{*profile, profile.Summarize()})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderProfile(args[0], *profile))
			return err
		},
	}

	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	return cmd
}

type listedProfile struct {
	UpdatedAt time.Time              `json:"updatedAt"`
	Name      string                 `json:"name"`
	Source    string                 `json:"source"`
	Profile   model.FinancialProfile `json:"profile"`
}

func profileListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			format, _ := cmd.Flags().GetString("format")
			if err := validateFormat(format); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profiles, err := store.ListProfiles(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				listed := make([]listedProfile, 0, len(profiles))
				for _, p := range profiles {
					listed = append(listed, listedProfile(p))
				}
				return writeJSON(out, listed)
			}

			if len(profiles) == 0 {
				fmt.Fprintln(out, cli.FormatInfo("No profiles stored. Create one with: worthit profile set NAME"))
				return nil
			}
			for _, p := range profiles {
				surplus := p.Profile.Summarize().MonthlySurplus
				fmt.Fprintf(out, "%s %s\n",
					cli.Row(p.Name, fmt.Sprintf("surplus $%.2f/mo", surplus)),
					cli.SubtleStyle.Render(fmt.Sprintf("(%s, updated %s)", p.Source, p.UpdatedAt.Local().Format("2006-01-02"))))
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	return cmd
}

func profileDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteProfile(ctx, args[0]); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("No profile named %q.", args[0]), err)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted profile %q", args[0])))
			return nil
		},
	}
}

func profileImportOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx NAME FILES...",
		Short: "Derive income, expenses and savings from OFX/QFX statements",
		Long: `Read bank and card statements exported as OFX or QFX and update a profile
with the average monthly income and expenses they show. A bank balance, when
present, becomes current savings. Debt payments, risk tolerance and goal are kept.

Examples:
  worthit profile import-ofx household ~/Downloads/checking_*.qfx ~/Downloads/card.ofx
  worthit profile import-ofx household ~/Downloads/statements --dry-run`,
		Args: cobra.MinimumNArgs(2),
		RunE: runProfileImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "show the derived profile without saving")
	return cmd
}

func runProfileImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := collectStatementFiles(args[1:])
	if err != nil {
		return err
	}

	slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

	parser := ofx.NewParser(slog.Default())
	statements := make([]*ofx.Statement, 0, len(files))
	for _, path := range files {
		statement, parseErr := parseStatement(cmd, parser, path)
		if parseErr != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Failed to parse OFX file", "file", path, "error", parseErr)
			continue
		}
		statements = append(statements, statement)
	}

	if len(statements) == 0 {
		return common.NewUserError("None of the files could be read as OFX statements.", common.ErrNoStatements)
	}

	summary := ofx.Summarize(statements...)
	if summary.Months == 0 {
		return common.NewUserError("The statements contain no transactions to average.", common.ErrNoStatements)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var base model.FinancialProfile
	existing, err := store.GetProfile(ctx, name)
	switch {
	case err == nil:
		base = *existing
	case errors.Is(err, common.ErrNotFound):
	default:
		return err
	}

	profile := summary.Apply(base)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("%d transactions over %d months from %d files",
		summary.Transactions, summary.Months, len(statements))))
	fmt.Fprintln(out, cli.RenderProfile(name, profile))

	if dryRun {
		fmt.Fprintln(out, cli.FormatWarning("Dry run, profile not saved"))
		return nil
	}

	if err := store.SaveProfileFrom(ctx, name, storage.SourceOFX, profile); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved profile %q", name)))
	return nil
}

func parseStatement(cmd *cobra.Command, parser *ofx.Parser, path string) (*ofx.Statement, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied statement path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(cmd.Context(), f)
}

// collectStatementFiles expands globs and directories into a sorted, de-duplicated
// list of .ofx and .qfx files.
func collectStatementFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, pattern := range patterns {
		pattern = config.ExpandPath(pattern)

		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			walkErr := filepath.WalkDir(pattern, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isStatementFile(path) {
					add(path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", pattern, walkErr)
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			slog.Warn("No files found matching pattern", "pattern", pattern)
			continue
		}
		for _, match := range matches {
			add(match)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No OFX files found to import.", common.ErrNotFound)
	}
	sort.Strings(files)
	return files, nil
}

func isStatementFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return true
	default:
		return false
	}
}
