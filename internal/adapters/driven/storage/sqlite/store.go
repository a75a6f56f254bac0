// Package sqlite provides the demo-mode local store backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/foliolabs/folio-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/foliolabs/folio-cli/internal/core/domain"
	"github.com/foliolabs/folio-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.PublicationStore = (*Store)(nil)

// Store is a SQLite-backed publication store. It serves as the local
// "demo mode" fallback when no cloud backend is configured.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.folio/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".folio", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "folio.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores or updates a publication.
func (s *Store) Save(ctx context.Context, pub *domain.Publication) error {
	now := time.Now().UTC()
	if pub.CreatedAt.IsZero() {
		pub.CreatedAt = now
	}
	pub.UpdatedAt = now

	var scheduledAt any
	if pub.ScheduledAt != nil {
		scheduledAt = pub.ScheduledAt.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO publications (id, title, document_url, cover_url, page_count,
			status, scheduled_at, views, unique_readers, avg_read_seconds, shares,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			document_url = excluded.document_url,
			cover_url = excluded.cover_url,
			page_count = excluded.page_count,
			status = excluded.status,
			scheduled_at = excluded.scheduled_at,
			updated_at = excluded.updated_at
	`, pub.ID, pub.Title, pub.DocumentURL, nullString(pub.CoverURL), pub.PageCount,
		string(pub.Status), scheduledAt, pub.Stats.Views, pub.Stats.UniqueReaders,
		pub.Stats.AvgReadSeconds, pub.Stats.Shares, pub.CreatedAt, pub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving publication: %w", err)
	}
	return nil
}

// Get retrieves a publication by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.Publication, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, document_url, cover_url, page_count, status,
			scheduled_at, views, unique_readers, avg_read_seconds, shares,
			created_at, updated_at
		FROM publications WHERE id = ?
	`, id)
	return scanPublication(row)
}

// List returns all publications, newest first.
func (s *Store) List(ctx context.Context) ([]domain.Publication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, document_url, cover_url, page_count, status,
			scheduled_at, views, unique_readers, avg_read_seconds, shares,
			created_at, updated_at
		FROM publications ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	var pubs []domain.Publication
	for rows.Next() {
		pub, err := scanPublication(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, *pub)
	}
	return pubs, rows.Err()
}

// Delete removes a publication.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM publications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting publication: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementViews adds one to the view counter.
func (s *Store) IncrementViews(ctx context.Context, id string) error {
	return s.increment(ctx, id, "views")
}

// IncrementShares adds one to the share counter.
func (s *Store) IncrementShares(ctx context.Context, id string) error {
	return s.increment(ctx, id, "shares")
}

func (s *Store) increment(ctx context.Context, id, column string) error {
	// column is one of two fixed identifiers, never user input.
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE publications SET %s = %s + 1 WHERE id = ?`, column, column), id)
	if err != nil {
		return fmt.Errorf("incrementing %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanPublication.
type scanner interface {
	Scan(dest ...any) error
}

func scanPublication(row scanner) (*domain.Publication, error) {
	var pub domain.Publication
	var coverURL sql.NullString
	var status string
	var scheduledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(&pub.ID, &pub.Title, &pub.DocumentURL, &coverURL, &pub.PageCount,
		&status, &scheduledAt, &pub.Stats.Views, &pub.Stats.UniqueReaders,
		&pub.Stats.AvgReadSeconds, &pub.Stats.Shares, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning publication: %w", err)
	}

	pub.CoverURL = coverURL.String
	pub.Status = domain.Status(status)
	if scheduledAt.Valid {
		t := scheduledAt.Time
		pub.ScheduledAt = &t
	}
	if createdAt.Valid {
		pub.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		pub.UpdatedAt = updatedAt.Time
	}
	return &pub, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
