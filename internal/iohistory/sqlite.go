package iohistory

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/nutrigap/pkg/history"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
  id TEXT PRIMARY KEY,
  generation_id TEXT NOT NULL,
  reference_version TEXT NOT NULL,
  source TEXT,
  created_at TEXT NOT NULL,
  critical INTEGER NOT NULL,
  low INTEGER NOT NULL,
  balanced INTEGER NOT NULL,
  undefined INTEGER NOT NULL,
  total INTEGER NOT NULL,
  table_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created_at
  ON snapshots (created_at);
`

const snapshotColumns = `id, generation_id, reference_version, source,
  created_at, critical, low, balanced, undefined, total, table_json`

type sqliteStore struct {
	path string
	db   *sql.DB
}

// NewSQLite opens or creates a sqlite history database.
func NewSQLite(ctx context.Context, path string) (history.Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, OpenError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, MigrateError(err)
	}

	slog.Debug("History database is ready", "backend", "sqlite", "path", path)
	return &sqliteStore{path: path, db: db}, nil
}

func (s *sqliteStore) Save(ctx context.Context, snap history.Snapshot) error {
	r := toRow(snap)
	q := `INSERT INTO snapshots (` + snapshotColumns + `)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		r.ID, r.GenerationID, r.ReferenceVersion, r.Source,
		r.CreatedAt.Format(time.RFC3339Nano),
		r.Critical, r.Low, r.Balanced, r.Undefined, r.Total,
		r.TableJSON,
	)
	if err != nil {
		return SaveError(snap.ID, err)
	}
	slog.Info("Snapshot saved", "id", snap.ID, "source", snap.Source)
	return nil
}

func (s *sqliteStore) Get(
	ctx context.Context,
	id string,
) (history.Snapshot, error) {
	q := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`
	row := s.db.QueryRowContext(ctx, q, id)
	r, err := scanRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Snapshot{}, NotFoundError(id)
	}
	if err != nil {
		return history.Snapshot{}, QueryError(err)
	}
	return r.snapshot(), nil
}

func (s *sqliteStore) List(
	ctx context.Context,
	limit int,
) ([]history.Snapshot, error) {
	q := `SELECT ` + snapshotColumns + `
  FROM snapshots ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	var res []history.Snapshot
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, QueryError(err)
		}
		res = append(res, r.snapshot())
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (snapshotRow, error) {
	var r snapshotRow
	var source sql.NullString
	var created string
	err := sc.Scan(
		&r.ID, &r.GenerationID, &r.ReferenceVersion, &source, &created,
		&r.Critical, &r.Low, &r.Balanced, &r.Undefined, &r.Total,
		&r.TableJSON,
	)
	if err != nil {
		return r, err
	}
	r.Source = source.String
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	return r, err
}
