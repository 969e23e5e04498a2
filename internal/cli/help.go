// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// addHelpCommands adds help and documentation commands.
func addHelpCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExamplesCmd(app))
}

func newExamplesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Show common workflow examples",
		Long:  "Display examples of common payoff calculator workflows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			output.Bold("Common Workflow Examples")
			output.Println()

			examples := []struct {
				title    string
				commands []string
			}{
				{
					title: "Single options",
					commands: []string{
						"payoff eval --leg long,call,100,5              # Long call",
						"payoff eval --leg short,put,95,3.5 --chart     # Short put with diagram",
						"payoff eval --leg long,call,100,5 --json       # Machine-readable result",
					},
				},
				{
					title: "Vertical spreads",
					commands: []string{
						"payoff strategy eval bull_call_spread --strikes 100,110 --premiums 5,2",
						"payoff strategy eval bear_put_spread --strikes 95,105 --premiums 2.2,6.1 --chart",
					},
				},
				{
					title: "Volatility strategies",
					commands: []string{
						"payoff strategy eval long_straddle --strikes 100 --premiums 4,3.5",
						"payoff strategy eval iron_condor --strikes 90,95,105,110 --premiums 1.2,2.1,2.3,1.1 --chart",
					},
				},
				{
					title: "Positions with the underlying",
					commands: []string{
						"payoff eval --leg long,underlying,250 --leg short,call,260,4   # Covered call",
						"payoff strategy eval protective_put --strikes 240 --premiums 250,8",
					},
				},
				{
					title: "Custom price windows",
					commands: []string{
						"payoff eval --leg long,call,100,5 --min 50 --max 200 --step 0.5",
						"payoff strategy eval collar --strikes 240,260 --premiums 250,8,4 --min 200 --max 300",
					},
				},
				{
					title: "Saved strategies",
					commands: []string{
						"payoff strategy save my_hedge --leg long,underlying,250 --leg long,put,240,8",
						"payoff strategy eval my_hedge --chart",
						"payoff strategy delete my_hedge",
					},
				},
				{
					title: "History",
					commands: []string{
						"payoff eval --leg long,call,100,5 --save       # Record the evaluation",
						"payoff history list --strategy bull_call_spread",
						"payoff history show 12 --chart",
					},
				},
				{
					title: "HTTP API",
					commands: []string{
						"payoff serve                                   # Serve on the configured address",
						"payoff serve --addr 0.0.0.0:9000",
					},
				},
			}

			for _, ex := range examples {
				output.Bold(ex.title)
				for _, c := range ex.commands {
					parts := strings.SplitN(c, "#", 2)
					if len(parts) == 2 {
						output.Printf("  %s %s\n", output.Cyan(strings.TrimSpace(parts[0])), output.DimText(strings.TrimSpace(parts[1])))
					} else {
						output.Printf("  %s\n", output.Cyan(c))
					}
				}
				output.Println()
			}

			output.Dim("Use 'payoff strategy list' to see every preset and 'payoff strategy show <name>' for its legs.")

			return nil
		},
	}
}
