// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"options-payoff/internal/chart"
	"options-payoff/internal/errors"
	"options-payoff/internal/payoff"
	"options-payoff/internal/store"
)

// addHistoryCommands adds evaluation history commands.
func addHistoryCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newHistoryCmd(app))
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Evaluation history",
		Long:  "Browse evaluations recorded with --save.",
	}

	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistoryShowCmd(app))

	return cmd
}

// requireStore reports an error when history recording is disabled.
func requireStore(app *App, output *Output) error {
	if app.Store == nil {
		output.Error("History is not available. Enable it under [history] in the config file.")
		return fmt.Errorf("history store not initialized")
	}
	return nil
}

// historyRecord is the JSON shape of a recorded evaluation. Infinite
// metrics map to null plus the unlimited flags, matching the HTTP API.
type historyRecord struct {
	ID              int64        `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	Strategy        string       `json:"strategy,omitempty"`
	Legs            []payoff.Leg `json:"legs"`
	Range           payoff.Range `json:"range"`
	Step            float64      `json:"step"`
	MaxProfit       *float64     `json:"max_profit"`
	MaxLoss         *float64     `json:"max_loss"`
	UnlimitedProfit bool         `json:"unlimited_profit"`
	UnlimitedLoss   bool         `json:"unlimited_loss"`
	Breakevens      []float64    `json:"breakevens"`
}

func toHistoryRecord(rec store.Evaluation) historyRecord {
	out := historyRecord{
		ID:              rec.ID,
		CreatedAt:       rec.CreatedAt,
		Strategy:        rec.Strategy,
		Legs:            rec.Legs,
		Range:           rec.Range,
		Step:            rec.Step,
		UnlimitedProfit: math.IsInf(rec.MaxProfit, 1),
		UnlimitedLoss:   math.IsInf(rec.MaxLoss, -1),
		Breakevens:      rec.Breakevens,
	}
	if out.Breakevens == nil {
		out.Breakevens = []float64{}
	}
	if !out.UnlimitedProfit {
		v := rec.MaxProfit
		out.MaxProfit = &v
	}
	if !out.UnlimitedLoss {
		v := rec.MaxLoss
		out.MaxLoss = &v
	}
	return out
}

func newHistoryListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			strategy, _ := cmd.Flags().GetString("strategy")
			limit, _ := cmd.Flags().GetInt("limit")
			since, _ := cmd.Flags().GetDuration("since")

			var sinceTime time.Time
			if since > 0 {
				sinceTime = time.Now().Add(-since).UTC()
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			records, err := app.Store.ListEvaluations(ctx, store.EvaluationFilter{
				Strategy: strategy,
				Since:    sinceTime,
				Limit:    limit,
			})
			if err != nil {
				if errors.Is(err, errors.ErrDatabaseError) {
					output.Error("History database error: %v", err)
				} else {
					output.Error("Failed to list evaluations: %v", err)
				}
				return err
			}

			if output.IsJSON() {
				out := make([]historyRecord, 0, len(records))
				for _, rec := range records {
					out = append(out, toHistoryRecord(rec))
				}
				return output.JSON(map[string]interface{}{
					"count":       len(out),
					"evaluations": out,
				})
			}

			if len(records) == 0 {
				output.Println("No recorded evaluations. Use --save on eval commands to record.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Strategy", "Legs", "Max Profit", "Max Loss", "Breakevens")
			for _, rec := range records {
				name := rec.Strategy
				if name == "" {
					name = "(custom)"
				}
				table.AddRow(
					strconv.FormatInt(rec.ID, 10),
					FormatDateTime(rec.CreatedAt),
					name,
					strconv.Itoa(len(rec.Legs)),
					output.FormatProfit(rec.MaxProfit),
					output.FormatProfit(rec.MaxLoss),
					FormatBreakevens(rec.Breakevens),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().String("strategy", "", "filter by strategy name")
	cmd.Flags().Duration("since", 0, "only evaluations newer than this age (e.g. 24h)")
	cmd.Flags().Int("limit", 20, "maximum rows")

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)
			if err := requireStore(app, output); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				output.Error("Invalid evaluation id %q", args[0])
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			rec, err := app.Store.GetEvaluation(ctx, id)
			if err != nil {
				switch {
				case errors.Is(err, errors.ErrNotFound):
					output.Error("No recorded evaluation with id %d", id)
				case errors.Is(err, errors.ErrDatabaseError):
					output.Error("History database error: %v", err)
				default:
					output.Error("Failed to load evaluation %d: %v", id, err)
				}
				return err
			}

			if output.IsJSON() {
				return output.JSON(toHistoryRecord(*rec))
			}

			output.Bold("Evaluation #%d", rec.ID)
			if rec.Strategy != "" {
				output.Printf("%s\n", rec.Strategy)
			}
			output.Dim("Recorded %s", FormatDateTime(rec.CreatedAt))
			output.Println()

			displayLegs(output, rec.Legs)
			output.Println()

			output.Printf("  Max profit:   %s\n", output.FormatProfit(rec.MaxProfit))
			output.Printf("  Max loss:     %s\n", output.FormatProfit(rec.MaxLoss))
			output.Printf("  Breakevens:   %s\n", output.Yellow(FormatBreakevens(rec.Breakevens)))
			output.Printf("  Range:        %s to %s (step %s)\n",
				FormatPrice(rec.Range.Min), FormatPrice(rec.Range.Max), FormatPrice(rec.Step))

			if showChart, _ := cmd.Flags().GetBool("chart"); showChart {
				curve, err := payoff.Evaluate(rec.Legs, rec.Range, rec.Step)
				if err != nil {
					output.Warning("Cannot re-evaluate for chart: %v", err)
					return nil
				}
				output.Println()
				for _, line := range chart.Render(curve, chart.Options{
					Width:  app.Config.Chart.Width,
					Height: app.Config.Chart.Height,
					Color:  output.colorEnabled,
				}) {
					output.Println(line)
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("chart", false, "re-evaluate and render the payoff diagram")

	return cmd
}
