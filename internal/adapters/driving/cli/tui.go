package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui"
	"github.com/foliolabs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Folio.

The TUI opens on your publication library. Select a publication to read
it as a flipbook with animated page turns, zoom, and pan.

Controls:
  ↑/k, ↓/j - Navigate the library
  Enter    - Open reader
  ←/h, →/l - Turn pages
  +/-/0    - Zoom in / out / reset
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return launchTUI(cmd, nil)
}

// launchTUI starts the Bubble Tea program, optionally jumping straight
// into the reader for the given publication.
func launchTUI(cmd *cobra.Command, open *domain.Publication) error {
	// Panic recovery so terminal state is restored with a usable trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(publicationService, shareService, documentRenderer, blobStore)
	ports.Branding = branding

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if open != nil {
		go p.Send(messages.PublicationSelected{Publication: *open})
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
