package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Flags for the share command.
var (
	sharePNGPath string
	sharePNGSize int
)

var shareCmd = &cobra.Command{
	Use:   "share [publication-id]",
	Short: "Print the share link and QR code",
	Long: `Prints the public share URL for a publication together with a QR
code rendered in the terminal. Use --png to write the QR code to a
PNG file instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func init() {
	shareCmd.Flags().StringVar(&sharePNGPath, "png", "", "Write the QR code to this PNG file")
	shareCmd.Flags().IntVar(&sharePNGSize, "size", 256, "PNG size in pixels")
	rootCmd.AddCommand(shareCmd)
}

func runShare(cmd *cobra.Command, args []string) error {
	if shareService == nil || publicationService == nil {
		return errors.New("share service not configured")
	}

	id := args[0]
	ctx := context.Background()

	pub, err := publicationService.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load publication: %w", err)
	}

	url := shareService.URL(pub.ID)

	if sharePNGPath != "" {
		png, err := shareService.QRCodePNG(pub.ID, sharePNGSize)
		if err != nil {
			return fmt.Errorf("failed to generate QR code: %w", err)
		}
		if err := os.WriteFile(sharePNGPath, png, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", sharePNGPath, err)
		}
		cmd.Printf("%s\n", url)
		cmd.Printf("QR code written to %s\n", sharePNGPath)
		publicationService.RecordShare(ctx, pub.ID)
		return nil
	}

	cells, err := shareService.QRCodeCells(pub.ID)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	cmd.Printf("%s\n", pub.Title)
	cmd.Printf("%s\n\n", url)

	if fitsTerminal(cells) {
		cmd.Print(cells)
	} else {
		cmd.Println("(terminal too narrow for the QR code; use --png to export it)")
	}

	publicationService.RecordShare(ctx, pub.ID)
	return nil
}

// fitsTerminal reports whether the widest QR row fits the terminal.
// Non-terminal output (pipes, tests) always fits.
func fitsTerminal(cells string) bool {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return true
	}

	widest := 0
	for _, line := range strings.Split(cells, "\n") {
		if n := len([]rune(line)); n > widest {
			widest = n
		}
	}
	return widest <= width
}
