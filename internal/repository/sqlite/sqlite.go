package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"assetmerge/internal/domain"
)

// MemoryPath opens the store without touching disk. Nothing survives the
// process, which is the default: a session's sources are re-imported, not
// restored.
const MemoryPath = ":memory:"

// Store implements repository.SourceStore using SQLite
type Store struct {
	db *sql.DB
}

// New opens (and migrates) a source store at the given path
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps the in-memory database alive and serializes
	// writers; the import path is not concurrent enough to need more.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		filename TEXT NOT NULL,
		kind TEXT NOT NULL,
		color TEXT NOT NULL,
		position INTEGER NOT NULL,
		columns JSON NOT NULL,
		rows JSON NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sources_position ON sources(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSource stores a source at the given import position
func (s *Store) CreateSource(ctx context.Context, src *domain.Source, position int) error {
	columns, err := json.Marshal(src.Columns)
	if err != nil {
		return fmt.Errorf("failed to marshal columns: %w", err)
	}
	rows, err := json.Marshal(src.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sources (id, label, filename, kind, color, position, columns, rows, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, src.ID, src.Label, src.Filename, string(src.Kind), src.Color, position,
		columns, rows, src.CreatedAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("failed to insert source: %w", err)
	}
	return nil
}

// GetSource returns a source by ID, or nil when absent
func (s *Store) GetSource(ctx context.Context, id string) (*domain.Source, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, filename, kind, color, columns, rows, created_at
		FROM sources WHERE id = ?
	`, id)

	src, err := scanSource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	return src, nil
}

// ListSources returns all sources in import order
func (s *Store) ListSources(ctx context.Context) ([]*domain.Source, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, filename, kind, color, columns, rows, created_at
		FROM sources ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	sources := make([]*domain.Source, 0)
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sources: %w", err)
	}

	return sources, nil
}

// DeleteSource removes a source and reports whether it existed
func (s *Store) DeleteSource(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sources WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete source: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// UpdateSourceLabel changes a source's display label
func (s *Store) UpdateSourceLabel(ctx context.Context, id, label string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE sources SET label = ? WHERE id = ?`, label, id)
	if err != nil {
		return false, fmt.Errorf("failed to update source label: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

// CountSources returns the number of stored sources
func (s *Store) CountSources(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sources`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sources: %w", err)
	}
	return count, nil
}

// NextPosition returns the import position for the next source. Positions
// keep increasing after deletions so existing sources keep their colors.
func (s *Store) NextPosition(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(position) FROM sources`).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max position: %w", err)
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// scanner abstracts over sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanSource(sc scanner) (*domain.Source, error) {
	var (
		src           domain.Source
		kind          string
		columns, rows []byte
		createdAt     string
	)

	if err := sc.Scan(&src.ID, &src.Label, &src.Filename, &kind, &src.Color,
		&columns, &rows, &createdAt); err != nil {
		return nil, err
	}

	src.Kind = domain.SourceKind(kind)
	if err := json.Unmarshal(columns, &src.Columns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal columns: %w", err)
	}
	if err := json.Unmarshal(rows, &src.Rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		src.CreatedAt = ts
	}

	return &src, nil
}
