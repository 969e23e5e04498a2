// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/catalog"
	"options-payoff/internal/errors"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

// addStrategyCommands adds strategy catalog commands.
func addStrategyCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStrategyCmd(app))
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Strategy catalog",
		Long:  "List, inspect and evaluate named strategy presets or saved leg lists.",
	}

	cmd.AddCommand(newStrategyListCmd(app))
	cmd.AddCommand(newStrategyShowCmd(app))
	cmd.AddCommand(newStrategyEvalCmd(app))
	cmd.AddCommand(newStrategySaveCmd(app))
	cmd.AddCommand(newStrategyDeleteCmd(app))

	return cmd
}

// savedStrategyRecord is the JSON shape of a saved leg list.
type savedStrategyRecord struct {
	Name      string       `json:"name"`
	Legs      []payoff.Leg `json:"legs"`
	Note      string       `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func toSavedStrategyRecord(rec store.SavedStrategy) savedStrategyRecord {
	return savedStrategyRecord{
		Name:      rec.Name,
		Legs:      rec.Legs,
		Note:      rec.Note,
		CreatedAt: rec.CreatedAt,
	}
}

// lookupSavedStrategy resolves a name against the saved strategies when the
// store is available; a nil record means the name is simply not saved.
func lookupSavedStrategy(app *App, name string) (*store.SavedStrategy, error) {
	if app.Store == nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec, err := app.Store.GetStrategy(ctx, catalog.Normalize(name))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func newStrategyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			defs := catalog.All()

			var saved []store.SavedStrategy
			if app.Store != nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				var err error
				saved, err = app.Store.ListStrategies(ctx)
				if err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to list saved strategies")
					saved = nil
				}
			}

			if output.IsJSON() {
				savedOut := make([]savedStrategyRecord, 0, len(saved))
				for _, rec := range saved {
					savedOut = append(savedOut, toSavedStrategyRecord(rec))
				}
				return output.JSON(map[string]interface{}{
					"count":      len(defs),
					"strategies": defs,
					"saved":      savedOut,
				})
			}

			table := NewTable(output, "Name", "Legs", "Strikes", "Summary")
			for _, def := range defs {
				table.AddRow(def.Name, strconv.Itoa(len(def.Legs)), strconv.Itoa(def.NumStrikes()), def.Summary)
			}
			table.Render()
			output.Println()

			if len(saved) > 0 {
				output.Bold("Saved strategies")
				savedTable := NewTable(output, "Name", "Legs", "Note", "Saved")
				for _, rec := range saved {
					savedTable.AddRow(rec.Name, strconv.Itoa(len(rec.Legs)), rec.Note, FormatDateTime(rec.CreatedAt))
				}
				savedTable.Render()
				output.Println()
			}

			output.Dim("%d strategies. Use 'payoff strategy show <name>' for leg details.", len(defs))
			return nil
		},
	}
}

func newStrategyShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a strategy definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			def, err := catalog.Lookup(args[0])
			if err != nil {
				rec, savedErr := lookupSavedStrategy(app, args[0])
				if savedErr != nil {
					output.Error("Failed to look up saved strategy %q: %v", args[0], savedErr)
					return savedErr
				}
				if rec == nil {
					output.Error("Unknown strategy %q", args[0])
					output.Dim("Use 'payoff strategy list' to see available strategies.")
					return err
				}
				return showSavedStrategy(output, rec)
			}

			if output.IsJSON() {
				return output.JSON(def)
			}

			output.Bold("%s", def.Name)
			output.Printf("%s\n\n", def.Summary)

			table := NewTable(output, "Leg", "Direction", "Instrument", "Strike", "Ratio")
			for i, spec := range def.Legs {
				strike := "-"
				if spec.StrikeIndex != catalog.UnderlyingLeg {
					strike = "K" + strconv.Itoa(spec.StrikeIndex+1)
				}
				table.AddRow(
					strconv.Itoa(i+1),
					strings.ToLower(string(spec.Direction)),
					strings.ToLower(string(spec.Instrument)),
					strike,
					strconv.Itoa(spec.Ratio),
				)
			}
			table.Render()
			output.Println()

			output.Printf("  Strikes needed:  %d, ascending (K1 lowest)\n", def.NumStrikes())
			output.Printf("  Premiums needed: %d, one per leg in order\n", def.NumPremiums())
			output.Println()
			output.Dim("Evaluate with: payoff strategy eval %s --strikes ... --premiums ...", def.Name)
			return nil
		},
	}
}

func showSavedStrategy(output *Output, rec *store.SavedStrategy) error {
	if output.IsJSON() {
		return output.JSON(toSavedStrategyRecord(*rec))
	}

	output.Bold("%s", rec.Name)
	if rec.Note != "" {
		output.Printf("%s\n", rec.Note)
	}
	output.Dim("Saved %s", FormatDateTime(rec.CreatedAt))
	output.Println()

	displayLegs(output, rec.Legs)
	output.Println()
	output.Dim("Evaluate with: payoff strategy eval %s", rec.Name)
	return nil
}

func newStrategyEvalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <name>",
		Short: "Evaluate a strategy preset or saved strategy",
		Long: `Evaluate a catalog strategy against a strike ladder and premiums.

Strikes are given in ascending order and shared between legs; premiums
are given per leg in definition order. Underlying legs take their entry
price through the premium slot.

Saved strategies carry concrete legs already, so they are evaluated
without --strikes and --premiums.`,
		Example: `  payoff strategy eval bull_call_spread --strikes 100,110 --premiums 5,2
  payoff strategy eval iron_condor --strikes 90,95,105,110 --premiums 1.2,2.1,2.3,1.1 --chart
  payoff strategy eval long_straddle --strikes 100 --premiums 4,3.5 --qty 2
  payoff strategy eval my_hedge --chart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			def, err := catalog.Lookup(args[0])
			if err != nil {
				rec, savedErr := lookupSavedStrategy(app, args[0])
				if savedErr != nil {
					output.Error("Failed to look up saved strategy %q: %v", args[0], savedErr)
					return savedErr
				}
				if rec == nil {
					output.Error("Unknown strategy %q", args[0])
					output.Dim("Use 'payoff strategy list' to see available strategies.")
					return err
				}
				if cmd.Flags().Changed("strikes") || cmd.Flags().Changed("premiums") || cmd.Flags().Changed("qty") {
					output.Error("Saved strategy %q carries its own legs; --strikes, --premiums and --qty do not apply", rec.Name)
					return fmt.Errorf("saved strategy takes no build flags")
				}
				return runEvaluation(cmd, app, output, rec.Name, rec.Legs)
			}

			strikesCSV, _ := cmd.Flags().GetString("strikes")
			premiumsCSV, _ := cmd.Flags().GetString("premiums")
			quantity, _ := cmd.Flags().GetInt("qty")

			strikes, err := parseFloats(strikesCSV)
			if err != nil {
				output.Error("Invalid --strikes: %v", err)
				return err
			}
			premiums, err := parseFloats(premiumsCSV)
			if err != nil {
				output.Error("Invalid --premiums: %v", err)
				return err
			}

			legs, err := def.Build(strikes, premiums, quantity)
			if err != nil {
				output.Error("Cannot build %s: %v", def.Name, err)
				return err
			}

			return runEvaluation(cmd, app, output, def.Name, legs)
		},
	}

	cmd.Flags().String("strikes", "", "comma-separated strikes, ascending")
	cmd.Flags().String("premiums", "", "comma-separated premiums, one per leg")
	cmd.Flags().Int("qty", 1, "base quantity multiplier")
	addEvaluationFlags(cmd)

	return cmd
}

func newStrategySaveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a custom leg list under a name",
		Long: `Save a concrete leg list for later evaluation by name.

Legs use the same format as 'payoff eval --leg'. Names are stored in
lower case with spaces and hyphens folded to underscores.`,
		Example: `  payoff strategy save my_hedge --leg long,underlying,250 --leg long,put,240,8
  payoff strategy save earnings_play --leg long,call,105,3 --leg long,put,95,2.5 --note "Q3 earnings"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			name := catalog.Normalize(args[0])
			if _, err := catalog.Lookup(name); err == nil {
				output.Error("%q is a catalog preset; pick a different name", name)
				return fmt.Errorf("name conflicts with a catalog preset")
			}

			specs, _ := cmd.Flags().GetStringArray("leg")
			if len(specs) == 0 {
				output.Error("At least one --leg is required")
				return fmt.Errorf("no legs provided")
			}

			legs := make([]payoff.Leg, 0, len(specs))
			for _, spec := range specs {
				leg, err := parseLeg(spec)
				if err != nil {
					output.Error("Invalid leg %q: %v", spec, err)
					return err
				}
				legs = append(legs, leg)
			}

			note, _ := cmd.Flags().GetString("note")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			rec := &store.SavedStrategy{Name: name, Legs: legs, Note: note}
			if err := app.Store.SaveStrategy(ctx, rec); err != nil {
				output.Error("Failed to save strategy: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"name": name,
					"legs": legs,
				})
			}

			output.Success("Saved strategy %q with %d legs", name, len(legs))
			output.Dim("Evaluate with: payoff strategy eval %s", name)
			return nil
		},
	}

	cmd.Flags().StringArrayP("leg", "l", nil, "leg spec: direction,instrument,strike,premium[,quantity]")
	cmd.Flags().String("note", "", "free-form note stored with the strategy")

	return cmd
}

func newStrategyDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			name := catalog.Normalize(args[0])

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := app.Store.DeleteStrategy(ctx, name); err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					output.Error("No saved strategy named %q", name)
				} else {
					output.Error("Failed to delete strategy: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"deleted": name})
			}

			output.Success("Deleted saved strategy %q", name)
			return nil
		},
	}
}

// parseFloats parses a comma-separated list of numbers.
func parseFloats(csv string) ([]float64, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", strings.TrimSpace(part))
		}
		values = append(values, v)
	}
	return values, nil
}
