package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-index",
	Short: "A similarity index over face attribute vectors",
	Long: `Face Index stores faces described by three bounded integer attributes
(race, emotion, oldness) and answers nearest-neighbor queries against
them through an in-memory partition tree rebuilt on every insert.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
