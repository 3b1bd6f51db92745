package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Veraticus/worth-it/internal/cli"
	"github.com/Veraticus/worth-it/internal/engine"
	"github.com/Veraticus/worth-it/internal/input"
	"github.com/Veraticus/worth-it/internal/model"
)

func evaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Decide whether a purchase is worth it",
		Long: `Score a prospective purchase against your finances and explain the verdict.

The purchase can come from flags, from a JSON document (--input, "-" for stdin)
or both; flags win. A stored profile (--profile) supplies the financial figures,
and profile flags override individual fields.

Examples:
  worthit evaluate --item "Noise-cancelling headphones" --cost 350 --frequency Daily --profile household
  worthit evaluate --input purchase.json --format json
  echo '{"itemName":"Gadget","cost":1000}' | worthit evaluate --input - --income 3000 --expenses 2500`,
		Args: cobra.NoArgs,
		RunE: runEvaluate,
	}

	addPurchaseFlags(cmd.Flags())
	cmd.Flags().StringP("format", "f", formatText, "output format (text, json)")
	cmd.Flags().Bool("no-classify", false, "skip spend classification")

	return cmd
}

// addPurchaseFlags registers the flags buildPurchase reads.
func addPurchaseFlags(flags *pflag.FlagSet) {
	flags.StringP("input", "i", "", "purchase JSON document (\"-\" for stdin)")
	flags.StringP("profile", "p", "", "stored financial profile to use")
	flags.String("item", "", "item name")
	flags.Float64("cost", 0, "item cost in dollars")
	flags.String("purpose", "", "why you want it")
	flags.String("frequency", "", "how often you will use it (Daily, Weekly, Monthly, Rarely, One-time)")
	flags.String("alt-name", "", "name of a competing option")
	flags.String("alt-retailer", "", "retailer of the competing option")
	flags.Float64("alt-price", 0, "price of the competing option")
	addProfileFlags(flags)
}

// addProfileFlags registers the financial profile flags shared by evaluate and profile set.
func addProfileFlags(flags *pflag.FlagSet) {
	flags.Float64("income", 0, "monthly take-home income")
	flags.Float64("expenses", 0, "monthly expenses")
	flags.Float64("debt", 0, "monthly debt payments")
	flags.Float64("savings", 0, "current savings")
	flags.String("risk", "", "risk tolerance (low, moderate, high)")
	flags.String("goal", "", "financial goal (save, debt, invest, balance)")
}

// applyProfileFlags overlays every profile flag the user set onto p.
func applyProfileFlags(flags *pflag.FlagSet, p *model.FinancialProfile) {
	amounts := map[string]*float64{
		"income":   &p.MonthlyIncome,
		"expenses": &p.MonthlyExpenses,
		"debt":     &p.DebtPayments,
		"savings":  &p.CurrentSavings,
	}
	for name, field := range amounts {
		if flags.Changed(name) {
			*field, _ = flags.GetFloat64(name)
		}
	}
	if flags.Changed("risk") {
		v, _ := flags.GetString("risk")
		p.RiskTolerance = model.RiskTolerance(v)
	}
	if flags.Changed("goal") {
		v, _ := flags.GetString("goal")
		p.FinancialGoal = model.FinancialGoal(v)
	}
}

func profileFlagsChanged(flags *pflag.FlagSet) bool {
	for _, name := range []string{"income", "expenses", "debt", "savings", "risk", "goal"} {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	format, _ := flags.GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	in, err := buildPurchase(cmd)
	if err != nil {
		return err
	}

	logger := slog.Default()
	var evaluator *engine.Evaluator
	if skip, _ := flags.GetBool("no-classify"); skip {
		evaluator = engine.New(nil, logger)
	} else {
		classifier, err := createClassifier(logger)
		if err != nil {
			return err
		}
		defer func() { _ = classifier.Close() }()
		evaluator = engine.New(classifier, logger)
	}

	report := evaluator.Evaluate(ctx, in)

	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReport(report))
	return err
}

// buildPurchase assembles the purchase from --input, --profile and flags, then
// validates the result against the purchase schema.
func buildPurchase(cmd *cobra.Command) (model.PurchaseInput, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var in model.PurchaseInput
	if path, _ := flags.GetString("input"); path != "" {
		data, err := readDocument(cmd, path)
		if err != nil {
			return model.PurchaseInput{}, err
		}
		if in, err = input.DecodePurchase(data); err != nil {
			return model.PurchaseInput{}, err
		}
	}

	if flags.Changed("item") {
		in.ItemName, _ = flags.GetString("item")
	}
	if flags.Changed("cost") {
		in.Cost, _ = flags.GetFloat64("cost")
	}
	if flags.Changed("purpose") {
		in.Purpose, _ = flags.GetString("purpose")
	}
	if flags.Changed("frequency") {
		v, _ := flags.GetString("frequency")
		in.Frequency = model.Frequency(v)
	}
	if flags.Changed("alt-name") || flags.Changed("alt-price") || flags.Changed("alt-retailer") {
		if in.Alternative == nil {
			in.Alternative = &model.Alternative{}
		}
		if flags.Changed("alt-name") {
			in.Alternative.Name, _ = flags.GetString("alt-name")
		}
		if flags.Changed("alt-retailer") {
			in.Alternative.Retailer, _ = flags.GetString("alt-retailer")
		}
		if flags.Changed("alt-price") {
			in.Alternative.Price, _ = flags.GetFloat64("alt-price")
		}
	}

	if name, _ := flags.GetString("profile"); name != "" {
		store, err := initStorage(ctx)
		if err != nil {
			return model.PurchaseInput{}, err
		}
		defer func() { _ = store.Close() }()

		profile, err := loadProfile(ctx, store, name)
		if err != nil {
			return model.PurchaseInput{}, err
		}
		in.Profile = profile
	}

	if profileFlagsChanged(flags) {
		if in.Profile == nil {
			in.Profile = &model.FinancialProfile{}
		}
		applyProfileFlags(flags, in.Profile)
	}

	// Round-trip through the schema so flag-built input gets the same checks as documents.
	data, err := json.Marshal(in)
	if err != nil {
		return model.PurchaseInput{}, fmt.Errorf("failed to encode purchase: %w", err)
	}
	return input.DecodePurchase(data)
}
