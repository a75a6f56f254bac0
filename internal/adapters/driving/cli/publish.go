package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// publishSchedule is a flag for the publish command.
var publishSchedule string

var publishCmd = &cobra.Command{
	Use:   "publish [publication-id]",
	Short: "Make a publication public",
	Long: `Publishes a publication immediately, or schedules it for a future
release time with --schedule. Scheduled publications become publicly
viewable once the release time passes.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

var unpublishCmd = &cobra.Command{
	Use:   "unpublish [publication-id]",
	Short: "Take a publication back to draft",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishSchedule, "schedule", "", `Release time ("2006-01-02 15:04" local, or RFC 3339)`)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(unpublishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	id := args[0]
	ctx := context.Background()

	if publishSchedule != "" {
		at, err := parseScheduleTime(publishSchedule)
		if err != nil {
			return err
		}
		if err := publicationService.Schedule(ctx, id, at); err != nil {
			return fmt.Errorf("failed to schedule publication: %w", err)
		}
		cmd.Printf("Publication %s scheduled for %s.\n", id, at.Format("2006-01-02 15:04"))
		return nil
	}

	if err := publicationService.SetStatus(ctx, id, domain.StatusPublished); err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	cmd.Printf("Publication %s is now public.\n", id)
	return nil
}

func runUnpublish(cmd *cobra.Command, args []string) error {
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	id := args[0]
	if err := publicationService.SetStatus(context.Background(), id, domain.StatusDraft); err != nil {
		return fmt.Errorf("failed to unpublish: %w", err)
	}
	cmd.Printf("Publication %s is back in draft.\n", id)
	return nil
}

// parseScheduleTime accepts a local "2006-01-02 15:04" timestamp or a
// full RFC 3339 timestamp.
func parseScheduleTime(s string) (time.Time, error) {
	if at, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return at, nil
	}
	if at, err := time.Parse(time.RFC3339, s); err == nil {
		return at, nil
	}
	return time.Time{}, fmt.Errorf("invalid schedule time %q (want \"2006-01-02 15:04\" or RFC 3339)", s)
}
