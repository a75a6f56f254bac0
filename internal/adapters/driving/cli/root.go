// Package cli provides the cobra command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/foliolabs/folio-cli/internal/adapters/driven/config/file"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/covergen"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/pdf"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/storage/firestore"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/storage/gcs"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/storage/local"
	"github.com/foliolabs/folio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
	"github.com/foliolabs/folio-cli/internal/core/ports/driving"
	"github.com/foliolabs/folio-cli/internal/core/services"
	"github.com/foliolabs/folio-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	verbose   bool
	demoMode  bool
	configDir string
)

// Services consumed by the commands. Wired from configuration on first
// run; tests substitute their own implementations.
var (
	publicationService driving.PublicationService
	shareService       driving.ShareService
	uploadService      driving.UploadService
	documentRenderer   driven.DocumentRenderer
	blobStore          driven.BlobStore
	configStore        driven.ConfigStore
	branding           = domain.DefaultBranding()

	// closers holds cloud clients that need shutting down after a command.
	closers []io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Publish and read PDF flipbooks from your terminal",
	Long: `Folio turns PDF files into shareable flipbook publications.

Upload a PDF to create a publication, manage its visibility, share it
with a QR code, or read it page by page in the built-in terminal viewer.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: shutdownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "use local storage instead of cloud services")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.folio)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the build-time version string.
func SetVersion(v string) {
	version = v
}

// initServices wires stores and services from the configuration file.
// Already-wired services (tests, embedding callers) are left alone.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if publicationService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = cfg
	branding = brandingFromConfig(cfg)

	pubs, blobs, err := buildStores(cmd, cfg)
	if err != nil {
		return err
	}

	renderer := pdf.NewRenderer()
	documentRenderer = renderer
	blobStore = blobs
	publicationService = services.NewPublicationService(pubs)
	shareService = services.NewShareService(cfg.GetString("share.base_url"))
	uploadService = services.NewUploadService(pubs, blobs, covergen.NewGenerator(renderer))
	return nil
}

// buildStores selects local (sqlite + filesystem) or cloud (Firestore +
// GCS) storage. The --demo flag forces local regardless of configuration.
func buildStores(cmd *cobra.Command, cfg driven.ConfigStore) (driven.PublicationStore, driven.BlobStore, error) {
	mode := cfg.GetString("storage.mode")
	if demoMode || mode == "" || mode == "local" {
		dataDir := cfg.GetString("storage.data_dir")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("getting home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".folio")
		}

		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening local store: %w", err)
		}
		blobs, err := local.NewBlobStore(filepath.Join(dataDir, "blobs"))
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("opening local blob store: %w", err)
		}
		closers = append(closers, store)
		logger.Info("using local storage in %s", dataDir)
		return store, blobs, nil
	}

	ctx := cmd.Context()
	var opts []option.ClientOption
	if creds := cfg.GetString("storage.credentials_file"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	pubs, err := firestore.NewPublicationStore(ctx,
		cfg.GetString("storage.project_id"),
		cfg.GetString("storage.collection"),
		opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to firestore: %w", err)
	}
	blobs, err := gcs.NewBlobStore(ctx,
		cfg.GetString("storage.bucket"),
		cfg.GetString("storage.cache_dir"),
		opts...)
	if err != nil {
		pubs.Close()
		return nil, nil, fmt.Errorf("connecting to cloud storage: %w", err)
	}
	closers = append(closers, pubs, blobs)
	return pubs, blobs, nil
}

func shutdownServices(_ *cobra.Command, _ []string) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("shutdown: %v", err)
		}
	}
	closers = nil
}

func brandingFromConfig(cfg driven.ConfigStore) domain.Branding {
	b := domain.DefaultBranding()
	if c := cfg.GetString("branding.accent_colour"); c != "" {
		b.AccentColour = c
	}
	if l := cfg.GetString("branding.logo_text"); l != "" {
		b.LogoText = l
	}
	if _, ok := cfg.Get("branding.show_title_bar"); ok {
		b.ShowTitleBar = cfg.GetBool("branding.show_title_bar")
	}
	return b
}
