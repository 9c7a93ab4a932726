package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kozaktomas/face-index/internal/config"
	"github.com/kozaktomas/face-index/internal/face"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert random faces for load testing",
	Long: `Insert a batch of random valid faces into the database.
Useful for exercising the index against a realistically sized dataset.

Example:
  face-index seed --count 5000`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Int("count", 1000, "Number of faces to insert")
	seedCmd.Flags().Int64("rand-seed", 0, "Seed for the random generator (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	count := mustGetInt(cmd, "count")
	if count <= 0 {
		return fmt.Errorf("count must be positive, got %d", count)
	}

	cfg := config.Load()
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := mustGetInt64(cmd, "rand-seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription("Seeding faces"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("faces"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	for i := 0; i < count; i++ {
		f, err := face.New(
			rng.Intn(face.MaxRace+1),
			rng.Intn(face.MaxEmotion+1),
			rng.Intn(face.MaxOldness+1),
		)
		if err != nil {
			return fmt.Errorf("generating face: %w", err)
		}
		if _, err := store.Insert(cmd.Context(), f); err != nil {
			return fmt.Errorf("inserting face %d: %w", i+1, err)
		}
		_ = bar.Add(1)
	}

	fmt.Printf("\nDone! Inserted %d face(s)\n", count)
	return nil
}
