// Package cli provides the command-line interface for the payoff calculator.
package cli

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"options-payoff/internal/server"
)

// addServerCommands adds the HTTP API command.
func addServerCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newServeCmd(app))
}

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serve the payoff engine over HTTP.

The API exposes the strategy catalog, the evaluation endpoints and
Prometheus metrics. It shuts down gracefully on SIGINT/SIGTERM.`,
		Example: `  payoff serve
  payoff serve --addr 0.0.0.0:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.NewOutput(cmd)

			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				host, portStr, err := net.SplitHostPort(addr)
				if err != nil {
					output.Error("Invalid --addr %q: %v", addr, err)
					return err
				}
				port, err := strconv.Atoi(portStr)
				if err != nil {
					output.Error("Invalid --addr port %q", portStr)
					return err
				}
				app.Config.Server.Host = host
				app.Config.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			output.Info("Serving on http://%s", app.Config.Server.Addr())
			output.Dim("Press Ctrl+C to stop")

			srv := server.New(app.Config, app.Logger, app.Store)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address host:port (default: from config)")

	return cmd
}
