package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-index/internal/config"
	"github.com/kozaktomas/face-index/internal/database/postgres"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the number of stored faces",
	Long:  `Displays how many faces the configured database currently holds.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	count, err := store.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting faces: %w", err)
	}

	fmt.Printf("Stored faces: %d\n", count)
	fmt.Printf("Dataset limit: %d\n", cfg.Tuning.Dataset.Limit)

	if postgres.IsAvailable() {
		versions, err := postgres.GetGlobalPool().MigrationsApplied(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing applied migrations: %w", err)
		}
		fmt.Printf("Applied migrations: %d\n", len(versions))
		for _, v := range versions {
			fmt.Printf("  %s\n", v)
		}
	}
	return nil
}
