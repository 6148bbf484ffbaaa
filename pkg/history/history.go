// Package history defines storage of gap table snapshots. A snapshot keeps
// the serialized table as it was produced, restoring it never recomputes
// or reorders values.
package history

import (
	"context"
	"time"

	"github.com/gnames/nutrigap/pkg/gaptable"
	"github.com/google/uuid"
)

// Store keeps snapshots of analysis results.
type Store interface {
	// Save persists a snapshot.
	Save(ctx context.Context, snap Snapshot) error

	// Get returns a snapshot by its ID.
	Get(ctx context.Context, id string) (Snapshot, error)

	// List returns up to limit snapshots, newest first. Non-positive
	// limit returns all snapshots.
	List(ctx context.Context, limit int) ([]Snapshot, error)

	// Close releases resources of the store.
	Close() error
}

// Snapshot is a stored gap table.
type Snapshot struct {
	// ID is a random UUID of the snapshot.
	ID string `json:"id"`

	// GenerationID of the stored table.
	GenerationID string `json:"generationId"`

	// ReferenceVersion of standards used by the analysis.
	ReferenceVersion string `json:"referenceVersion"`

	// Source is a label of the analyzed input, e.g. a file name.
	Source string `json:"source"`

	// CreatedAt is the time the snapshot was made.
	CreatedAt time.Time `json:"createdAt"`

	// Counts of records per severity.
	Counts gaptable.Counts `json:"counts"`

	// TableJSON is the serialized table.
	TableJSON []byte `json:"-"`
}

// New creates a snapshot of a table.
func New(t *gaptable.Table, source string) (Snapshot, error) {
	data, err := t.Encode(false)
	if err != nil {
		return Snapshot{}, err
	}
	res := Snapshot{
		ID:               uuid.NewString(),
		GenerationID:     t.GenerationID(),
		ReferenceVersion: t.ReferenceVersion(),
		Source:           source,
		CreatedAt:        time.Now().UTC(),
		Counts:           t.Counts(),
		TableJSON:        data,
	}
	return res, nil
}

// Table restores the stored table.
func (s Snapshot) Table() (*gaptable.Table, error) {
	return gaptable.Decode(s.TableJSON)
}
