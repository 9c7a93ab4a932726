package cmd

import (
	"fmt"
	"strconv"

	"github.com/kozaktomas/face-index/internal/config"
	"github.com/kozaktomas/face-index/internal/face"
	"github.com/kozaktomas/face-index/internal/resolver"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <race> <emotion> <oldness>",
	Short: "Resolve the closest stored faces for an attribute triple",
	Long: `Register a face described by its three attributes and print the
closest stored faces, nearest first. The query face itself is stored
and always leads the result list.

Example:
  face-index resolve 11 11 11`,
	Args: cobra.ExactArgs(3),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func parseAttribute(name, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	race, err := parseAttribute("race", args[0])
	if err != nil {
		return err
	}
	emotion, err := parseAttribute("emotion", args[1])
	if err != nil {
		return err
	}
	oldness, err := parseAttribute("oldness", args[2])
	if err != nil {
		return err
	}

	query, err := face.New(race, emotion, oldness)
	if err != nil {
		return err
	}

	cfg := config.Load()
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	res := resolver.New(store, cfg.Tuning.Dataset.Limit)
	if err := res.Warm(cmd.Context()); err != nil {
		return fmt.Errorf("warming resolver: %w", err)
	}

	matches, err := res.Resolve(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("resolving face: %w", err)
	}

	fmt.Printf("Query registered as id %d\n", matches[0].Face.ID)
	for i, m := range matches {
		fmt.Printf("%d. %s distance=%d\n", i+1, m.Face, m.Distance)
	}
	return nil
}
