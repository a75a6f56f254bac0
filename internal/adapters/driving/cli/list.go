package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications",
	Long:  `Lists all publications with their status and engagement counters.`,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if publicationService == nil {
		return errors.New("publication service not configured")
	}

	pubs, err := publicationService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list publications: %w", err)
	}

	if len(pubs) == 0 {
		cmd.Println("No publications yet. Upload one with: folio upload <file>")
		return nil
	}

	now := time.Now()
	for i := range pubs {
		p := &pubs[i]
		cmd.Printf("  %s\n", p.ID)
		cmd.Printf("    Title:  %s\n", p.Title)
		cmd.Printf("    Status: %s\n", statusLine(p, now))
		cmd.Printf("    Pages:  %d\n", p.PageCount)
		cmd.Printf("    Views:  %d  Shares: %d\n", p.Stats.Views, p.Stats.Shares)
		cmd.Println()
	}

	cmd.Printf("Total: %d publications\n", len(pubs))
	return nil
}

// statusLine renders the effective status, with the release time for
// pending scheduled publications.
func statusLine(p *domain.Publication, now time.Time) string {
	effective := p.EffectiveStatus(now)
	if effective == domain.StatusScheduled && p.ScheduledAt != nil {
		return fmt.Sprintf("scheduled for %s", p.ScheduledAt.Format("2006-01-02 15:04"))
	}
	return string(effective)
}
