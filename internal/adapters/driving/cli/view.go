package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [publication-id]",
	Short: "Read a publication in the terminal",
	Long: `Opens the flipbook reader directly on the given publication,
skipping the library screen.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	pub, err := publicationService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to load publication: %w", err)
	}

	return launchTUI(cmd, pub)
}
