// Package cli implements the storefront command line. Every invocation is
// one session context over the configured session storage.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/your-org/storefront-client/internal/app"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/pkg/logger"
)

var (
	apiURL        string
	storageDriver string
	jsonOutput    bool
)

// newApp opens the session context; tests replace it
var newApp = func(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
	if storageDriver != "" {
		cfg.Storage.Driver = storageDriver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return app.New(ctx, cfg, logger.New(cfg), app.Options{})
}

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Marketplace storefront session client",
	Long: `storefront keeps a marketplace shopping session: the signed-in tokens and
the cart, merged from the guest cart on login and kept in shared session
storage so several processes act like tabs of one browser.

Environment Variables:
  API_BASE_URL        Marketplace backend URL (default: http://127.0.0.1:8000/api)
  API_ADMIN_BASE_URL  Moderation endpoints (default: http://127.0.0.1:8000/shopadmin)
  STORAGE_DRIVER      memory, redis or postgres (default: redis)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&storageDriver, "storage", "", "Session storage driver (overrides STORAGE_DRIVER)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// withApp runs fn against a freshly opened session context
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}

// printJSON writes v indented
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
