package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session over a local HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			server := a.Server()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			case <-ctx.Done():
			}

			a.Logger.Info("Shutting down gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Stop(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
