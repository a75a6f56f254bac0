package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio-cli/internal/core/services"
)

// watchRate is a flag for the watch command.
var watchRate int

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a folder and upload new PDFs",
	Long: `Watches a directory and uploads every PDF dropped into it as a new
draft publication. Uploads are rate limited; non-PDF files are ignored.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVarP(&watchRate, "rate", "r", 0, "Maximum uploads per minute (0 = default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	dir := args[0]

	rate := watchRate
	if rate == 0 && configStore != nil {
		rate = configStore.GetInt("watch.rate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for PDFs. Press Ctrl+C to stop.\n", dir)

	watcher := services.NewWatcher(uploadService, rate)
	if err := watcher.Watch(ctx, dir); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println("Stopped watching.")
	return nil
}
