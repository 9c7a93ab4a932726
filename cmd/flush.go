package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kozaktomas/face-index/internal/config"
	"github.com/kozaktomas/face-index/internal/resolver"
	"github.com/spf13/cobra"
)

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Delete all stored faces",
	Long: `Delete every face from the database and drop the in-memory index.

This cannot be undone. Identifiers are not reused; new faces keep
getting fresh ids after a flush.`,
	RunE: runFlush,
}

func init() {
	rootCmd.AddCommand(flushCmd)

	flushCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func confirmAction(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func runFlush(cmd *cobra.Command, args []string) error {
	skipConfirm := mustGetBool(cmd, "yes")

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

	if count == 0 {
		fmt.Println("Store is already empty.")
		return nil
	}

	if !skipConfirm && !confirmAction(fmt.Sprintf("\nDelete all %d stored face(s)? [y/N]: ", count)) {
		fmt.Println("Cancelled.")
		return nil
	}

	res := resolver.New(store, cfg.Tuning.Dataset.Limit)
	if err := res.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("flushing store: %w", err)
	}

	fmt.Printf("Done! Deleted %d face(s)\n", count)
	return nil
}
