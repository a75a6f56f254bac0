package driving

import (
	"context"

	"github.com/foliolabs/folio-cli/internal/core/domain"
)

// UploadService ingests PDF files into the platform.
type UploadService interface {
	// Upload validates and optimizes the PDF at path, stores the document
	// and a generated cover, and creates the publication record with the
	// given title. New publications start as drafts.
	Upload(ctx context.Context, path, title string) (*domain.Publication, error)
}
