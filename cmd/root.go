package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/match-test/internal/catalog"
	"github.com/sells-group/match-test/internal/config"
	"github.com/sells-group/match-test/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "match-test",
	Short: "Match report workflow service",
	Long:  "Serves the match test dashboard API: job history, file upload and field mapping, attribute and match-rank selection, PII masking and sample-data export.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// openStore opens the configured job store seeded with the catalog jobs.
func openStore(ctx context.Context, cat *catalog.Catalog) (store.Store, error) {
	return store.Open(ctx, store.Config{
		Driver:          cfg.Store.Driver,
		DatabaseURL:     cfg.Store.DatabaseURL,
		ConnectAttempts: cfg.Store.ConnectAttempts,
	}, cat.Jobs)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
