package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// uploadTitle is a flag for the upload command.
var uploadTitle string

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF as a new publication",
	Long: `Validates and optimizes the PDF, stores the document and a generated
cover image, and creates a draft publication.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadTitle, "title", "t", "", "Publication title (default: the file name)")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	path := args[0]
	cmd.Printf("Uploading %s...\n", path)

	pub, err := uploadService.Upload(context.Background(), path, uploadTitle)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Created publication %s\n\n", pub.ID)
	cmd.Printf("  Title:  %s\n", pub.Title)
	cmd.Printf("  Pages:  %d\n", pub.PageCount)
	cmd.Printf("  Status: %s\n", pub.Status)
	if pub.CoverURL == "" {
		cmd.Println("  Cover:  generation failed, no cover stored")
	}
	cmd.Printf("\nPublish it with: folio publish %s\n", pub.ID)
	return nil
}
