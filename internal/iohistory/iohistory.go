// Package iohistory implements history.Store backends. Snapshots are kept
// in a local sqlite file by default, or in PostgreSQL when the history is
// shared between several users.
package iohistory

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/gnames/nutrigap/pkg/history"
)

// New opens the history store selected by cfg.History.Backend.
func New(ctx context.Context, cfg *config.Config) (history.Store, error) {
	switch cfg.History.Backend {
	case "postgres":
		return NewPostgres(ctx, &cfg.Database)
	case "none":
		slog.Debug("History is disabled")
		return disabled{}, nil
	default:
		return NewSQLite(ctx, config.HistoryDBPath(cfg.HomeDir))
	}
}

// snapshotRow is the stored form of a snapshot. The table JSON is kept as
// text so it comes back byte for byte.
type snapshotRow struct {
	ID               string    `gorm:"type:uuid;primaryKey"`
	GenerationID     string    `gorm:"type:uuid;index;not null"`
	ReferenceVersion string    `gorm:"type:varchar(50);not null"`
	Source           string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time `gorm:"index;not null"`
	Critical         int       `gorm:"not null"`
	Low              int       `gorm:"not null"`
	Balanced         int       `gorm:"not null"`
	Undefined        int       `gorm:"not null"`
	Total            int       `gorm:"not null"`
	TableJSON        string    `gorm:"type:text;not null"`
}

// TableName sets the table name for gorm.
func (snapshotRow) TableName() string {
	return "snapshots"
}

func toRow(s history.Snapshot) snapshotRow {
	return snapshotRow{
		ID:               s.ID,
		GenerationID:     s.GenerationID,
		ReferenceVersion: s.ReferenceVersion,
		Source:           s.Source,
		CreatedAt:        s.CreatedAt.UTC(),
		Critical:         s.Counts.Critical,
		Low:              s.Counts.Low,
		Balanced:         s.Counts.Balanced,
		Undefined:        s.Counts.Undefined,
		Total:            s.Counts.Total,
		TableJSON:        string(s.TableJSON),
	}
}

func (r snapshotRow) snapshot() history.Snapshot {
	return history.Snapshot{
		ID:               r.ID,
		GenerationID:     r.GenerationID,
		ReferenceVersion: r.ReferenceVersion,
		Source:           r.Source,
		CreatedAt:        r.CreatedAt.UTC(),
		Counts: gaptable.Counts{
			Critical:  r.Critical,
			Low:       r.Low,
			Balanced:  r.Balanced,
			Undefined: r.Undefined,
			Total:     r.Total,
		},
		TableJSON: []byte(r.TableJSON),
	}
}

// disabled is used when history backend is "none".
type disabled struct{}

func (disabled) Save(context.Context, history.Snapshot) error {
	return DisabledError()
}

func (disabled) Get(context.Context, string) (history.Snapshot, error) {
	return history.Snapshot{}, DisabledError()
}

func (disabled) List(context.Context, int) ([]history.Snapshot, error) {
	return nil, DisabledError()
}

func (disabled) Close() error {
	return nil
}

// Load returns a snapshot together with its restored table.
func Load(
	ctx context.Context,
	store history.Store,
	id string,
) (history.Snapshot, *gaptable.Table, error) {
	snap, err := store.Get(ctx, id)
	if err != nil {
		return snap, nil, err
	}
	tbl, err := snap.Table()
	if err != nil {
		return snap, nil, DecodeError(id, err)
	}
	return snap, tbl, nil
}
