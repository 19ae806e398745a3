package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/beenthere-labs/beenthere/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.StoryStore = (*Store)(nil)

// Store is a SQLite-backed story corpus store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.beenthere/data/beenthere.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".beenthere", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "beenthere.db")

	// WAL mode for concurrent readers during seeding runs.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
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
		// "001_initial.up.sql" -> 1
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveStories inserts or replaces stories by ID in one transaction.
func (s *Store) SaveStories(ctx context.Context, stories []domain.Story) error {
	if len(stories) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stories (id, title, content, tags, author_id, parent_id, thread_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			tags = excluded.tags,
			author_id = excluded.author_id,
			parent_id = excluded.parent_id,
			thread_id = excluded.thread_id,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, story := range stories {
		tagsJSON, err := json.Marshal(story.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags for %s: %w", story.ID, err)
		}

		createdAt := story.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}

		if _, err := stmt.ExecContext(ctx,
			story.ID, story.Title, story.Text, string(tagsJSON), story.AuthorID,
			nullString(story.ParentID), nullString(story.ThreadID), createdAt,
		); err != nil {
			return fmt.Errorf("saving story %s: %w", story.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stories: %w", err)
	}
	return nil
}

// GetStory retrieves a story by ID.
func (s *Store) GetStory(ctx context.Context, id string) (*domain.Story, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content, tags, author_id, parent_id, thread_id, created_at
		FROM stories WHERE id = ?
	`, id)

	story, err := scanStory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return story, nil
}

// ListStories returns the full corpus in insertion order.
func (s *Store) ListStories(ctx context.Context) ([]domain.Story, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, tags, author_id, parent_id, thread_id, created_at
		FROM stories ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stories: %w", err)
	}
	return stories, nil
}

// CountStories returns the corpus size.
func (s *Store) CountStories(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stories")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting stories: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStory(row scanner) (*domain.Story, error) {
	var story domain.Story
	var tagsJSON string
	var parentID, threadID sql.NullString
	var createdAt sql.NullTime

	if err := row.Scan(&story.ID, &story.Title, &story.Text, &tagsJSON,
		&story.AuthorID, &parentID, &threadID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("scanning story: %w", err)
	}

	if err := json.Unmarshal([]byte(tagsJSON), &story.Tags); err != nil {
		return nil, fmt.Errorf("unmarshalling tags: %w", err)
	}
	if parentID.Valid {
		story.ParentID = &parentID.String
	}
	if threadID.Valid {
		story.ThreadID = &threadID.String
	}
	if createdAt.Valid {
		story.CreatedAt = createdAt.Time
	}

	return &story, nil
}

// nullString converts a *string to a NULL-able SQL value.
func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
