// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/chart"
	"options-payoff/internal/logging"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

// addEvalCommands adds ad-hoc evaluation commands.
func addEvalCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newEvalCmd(app))
}

func newEvalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate profit/loss for a custom leg list",
		Long: `Evaluate the expiration profit/loss profile of an ad-hoc leg list.

Each --leg flag takes "direction,instrument,strike,premium[,quantity]",
for example "long,call,100,5" or "short,put,95,3.5,2". Underlying legs
carry an entry price instead of a strike/premium pair and take the form
"direction,underlying,entry[,quantity]".

The price range defaults to the strike span padded on both sides.`,
		Example: `  payoff eval --leg long,call,100,5
  payoff eval --leg long,call,100,5 --leg short,call,110,2 --chart
  payoff eval --leg short,put,95,3.5,2 --min 50 --max 150 --step 0.5
  payoff eval --leg long,underlying,250 --leg long,put,240,8 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

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

			return runEvaluation(cmd, app, output, "", legs)
		},
	}

	cmd.Flags().StringArrayP("leg", "l", nil, `leg as "direction,instrument,strike,premium[,quantity]"`)
	addEvaluationFlags(cmd)

	return cmd
}

// parseLeg parses a comma-separated leg description.
func parseLeg(spec string) (payoff.Leg, error) {
	fields := strings.Split(spec, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return payoff.Leg{}, fmt.Errorf("expected direction,instrument,strike,premium[,quantity]")
	}

	direction, err := payoff.ParseDirection(fields[0])
	if err != nil {
		return payoff.Leg{}, err
	}
	instrument, err := payoff.ParseInstrument(fields[1])
	if err != nil {
		return payoff.Leg{}, err
	}

	// Underlying legs: direction,underlying,entry[,quantity]
	if instrument == payoff.Underlying {
		if len(fields) > 4 {
			return payoff.Leg{}, fmt.Errorf("expected direction,underlying,entry[,quantity]")
		}
		entry, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return payoff.Leg{}, fmt.Errorf("invalid entry price %q", fields[2])
		}
		quantity, err := parseQuantity(fields, 3)
		if err != nil {
			return payoff.Leg{}, err
		}
		return payoff.NewLeg(instrument, direction, 0, entry, quantity)
	}

	if len(fields) < 4 || len(fields) > 5 {
		return payoff.Leg{}, fmt.Errorf("expected direction,instrument,strike,premium[,quantity]")
	}
	strike, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return payoff.Leg{}, fmt.Errorf("invalid strike %q", fields[2])
	}
	premium, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return payoff.Leg{}, fmt.Errorf("invalid premium %q", fields[3])
	}
	quantity, err := parseQuantity(fields, 4)
	if err != nil {
		return payoff.Leg{}, err
	}
	return payoff.NewLeg(instrument, direction, strike, premium, quantity)
}

// parseQuantity reads the optional trailing quantity field, defaulting to 1.
func parseQuantity(fields []string, index int) (int, error) {
	if len(fields) <= index || fields[index] == "" {
		return 1, nil
	}
	quantity, err := strconv.Atoi(fields[index])
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", fields[index])
	}
	return quantity, nil
}

// addEvaluationFlags registers the flags shared by eval and strategy eval.
func addEvaluationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min", 0, "minimum underlying price (default: padded strike window)")
	cmd.Flags().Float64("max", 0, "maximum underlying price (default: padded strike window)")
	cmd.Flags().Float64("step", 0, "price increment between samples (default: from config)")
	cmd.Flags().Bool("chart", false, "render an ASCII payoff diagram")
	cmd.Flags().Bool("save", false, "record the evaluation in history")
}

// evalResult mirrors the HTTP API evaluation response.
type evalResult struct {
	Strategy  string        `json:"strategy,omitempty"`
	Legs      []payoff.Leg  `json:"legs"`
	Range     payoff.Range  `json:"range"`
	Step      float64       `json:"step"`
	Curve     *payoff.Curve `json:"curve"`
	HistoryID int64         `json:"history_id,omitempty"`
}

// runEvaluation evaluates the legs and renders the result. A non-empty
// strategy names the catalog preset the legs came from.
func runEvaluation(cmd *cobra.Command, app *App, output *Output, strategy string, legs []payoff.Leg) error {
	rng := payoff.DefaultRange(legs, app.Config.Engine.RangePaddingPercent)
	if cmd.Flags().Changed("min") {
		rng.Min, _ = cmd.Flags().GetFloat64("min")
	}
	if cmd.Flags().Changed("max") {
		rng.Max, _ = cmd.Flags().GetFloat64("max")
	}
	step, _ := cmd.Flags().GetFloat64("step")
	if step == 0 {
		step = app.Config.Engine.Step
	}

	start := time.Now()
	curve, err := payoff.Evaluate(legs, rng, step)
	if err != nil {
		output.Error("Evaluation failed: %v", err)
		return err
	}

	label := strategy
	if label == "" {
		label = "adhoc"
	}
	logging.LogEvaluation(logging.WithStrategy(app.Logger, label), len(legs), curve.MaxProfit, curve.MaxLoss, len(curve.Breakevens), time.Since(start))

	var historyID int64
	if save, _ := cmd.Flags().GetBool("save"); save {
		historyID, err = recordEvaluation(app, strategy, legs, rng, step, curve)
		if err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to record evaluation")
			if !output.IsJSON() {
				output.Warning("Failed to record evaluation: %v", err)
			}
		}
	}

	if output.IsJSON() {
		return output.JSON(evalResult{
			Strategy:  strategy,
			Legs:      legs,
			Range:     rng,
			Step:      step,
			Curve:     curve,
			HistoryID: historyID,
		})
	}

	displayEvaluation(output, strategy, legs, rng, step, curve)

	if showChart, _ := cmd.Flags().GetBool("chart"); showChart {
		output.Println()
		for _, line := range chart.Render(curve, chart.Options{
			Width:  app.Config.Chart.Width,
			Height: app.Config.Chart.Height,
			Color:  output.colorEnabled,
		}) {
			output.Println(line)
		}
	}

	if historyID != 0 {
		output.Println()
		output.Dim("Recorded as evaluation #%d", historyID)
	}

	return nil
}

// recordEvaluation persists the evaluation, best effort.
func recordEvaluation(app *App, strategy string, legs []payoff.Leg, rng payoff.Range, step float64, curve *payoff.Curve) (int64, error) {
	if app.Store == nil {
		return 0, fmt.Errorf("history is disabled")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return app.Store.SaveEvaluation(ctx, &store.Evaluation{
		Strategy:   strategy,
		Legs:       legs,
		Range:      rng,
		Step:       step,
		MaxProfit:  curve.MaxProfit,
		MaxLoss:    curve.MaxLoss,
		Breakevens: curve.Breakevens,
	})
}

func displayEvaluation(output *Output, strategy string, legs []payoff.Leg, rng payoff.Range, step float64, curve *payoff.Curve) {
	if strategy != "" {
		output.Bold("%s", strategy)
	} else {
		output.Bold("Custom legs")
	}
	output.Println()

	displayLegs(output, legs)
	output.Println()

	net := payoff.NetPremium(legs)
	switch {
	case net > 0:
		output.Printf("  Net premium:  %s credit\n", output.Green(FormatMoney(net)))
	case net < 0:
		output.Printf("  Net premium:  %s debit\n", output.Red(FormatMoney(-net)))
	default:
		output.Printf("  Net premium:  %s\n", FormatMoney(0))
	}

	output.Printf("  Max profit:   %s\n", output.FormatProfit(curve.MaxProfit))
	output.Printf("  Max loss:     %s\n", output.FormatProfit(curve.MaxLoss))
	output.Printf("  Breakevens:   %s\n", output.Yellow(FormatBreakevens(curve.Breakevens)))
	output.Printf("  Range:        %s to %s (step %s)\n", FormatPrice(rng.Min), FormatPrice(rng.Max), FormatPrice(step))
}

func displayLegs(output *Output, legs []payoff.Leg) {
	table := NewTable(output, "Direction", "Instrument", "Strike", "Premium", "Qty")
	for _, leg := range legs {
		strike := FormatPrice(leg.Strike)
		premium := FormatMoney(leg.Premium)
		if leg.Instrument == payoff.Underlying {
			strike = "-"
		}
		table.AddRow(
			strings.ToLower(string(leg.Direction)),
			strings.ToLower(string(leg.Instrument)),
			strike,
			premium,
			strconv.Itoa(leg.Quantity),
		)
	}
	table.Render()
}
