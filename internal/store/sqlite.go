// Package store provides the SQLite-backed drawing record store.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/easelhq/easel/internal/apperr"
	"github.com/easelhq/easel/internal/models"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS drawings (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	scene      TEXT NOT NULL DEFAULT '{}',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_drawings_updated ON drawings(updated_at);
`

// SQLite implements Store on a local SQLite database.
type SQLite struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*SQLite, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

// Insert creates a new record with a generated UUID id. Timestamps are set
// here rather than by SQLite defaults so that list ordering has sub-second
// resolution.
func (s *SQLite) Insert(ctx context.Context, name string, sc models.Scene) (models.Drawing, error) {
	payload, err := json.Marshal(sc)
	if err != nil {
		return models.Drawing{}, fmt.Errorf("store: marshal scene: %w", err)
	}
	d := models.Drawing{
		ID:        uuid.NewString(),
		Name:      name,
		Scene:     sc,
		CreatedAt: time.Now().UTC(),
	}
	d.UpdatedAt = d.CreatedAt
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO drawings (id, name, scene, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, d.ID, d.Name, string(payload), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Drawing{}, fmt.Errorf("store: insert: %w", err)
	}
	return d, nil
}

// Get returns the full record for id, or apperr.ErrNotFound.
func (s *SQLite) Get(ctx context.Context, id string) (models.Drawing, error) {
	var (
		d       models.Drawing
		payload string
	)
	err := s.conn.QueryRowContext(ctx, `
		SELECT id, name, scene, created_at, updated_at FROM drawings WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &payload, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.Drawing{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Drawing{}, fmt.Errorf("store: get: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &d.Scene); err != nil {
		return models.Drawing{}, fmt.Errorf("store: unmarshal scene: %w", err)
	}
	return d, nil
}

// Update replaces the scene payload and bumps updated_at.
func (s *SQLite) Update(ctx context.Context, id string, sc models.Scene) error {
	payload, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("store: marshal scene: %w", err)
	}
	res, err := s.conn.ExecContext(ctx, `
		UPDATE drawings SET scene = ?, updated_at = ? WHERE id = ?
	`, string(payload), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("store: update: %w", err)
	}
	return requireRow(res)
}

// Rename changes the display name without touching updated_at: renaming is
// catalog housekeeping, not an edit to the drawing.
func (s *SQLite) Rename(ctx context.Context, id, name string) error {
	res, err := s.conn.ExecContext(ctx, `UPDATE drawings SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	return requireRow(res)
}

// List returns summaries ordered by updated_at descending, most recently
// touched first. Ties break on id so the order is stable.
func (s *SQLite) List(ctx context.Context) ([]models.DrawingSummary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, name, updated_at FROM drawings ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []models.DrawingSummary{}
	for rows.Next() {
		var d models.DrawingSummary
		if err := rows.Scan(&d.ID, &d.Name, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan summary: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Delete removes a record. Deleting a missing id is apperr.ErrNotFound.
func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM drawings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
