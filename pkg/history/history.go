// Package history persists analysis snapshots across runs.
//
// A [Snapshot] wraps one [analysis.Report] together with the environment
// name and creation time. The [Store] interface has two implementations:
//   - [MongoStore]: MongoDB-backed storage for shared deployments
//   - [FileStore]: JSON files under the config directory for CLI use
//
// Snapshots are immutable once saved. [Diff] compares the package sets of
// two snapshots, which is how "history diff" reports what changed between
// analyses of the same environment.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/condagraph/condagraph/pkg/analysis"
)

// ErrNotFound is returned when no snapshot exists for a requested ID.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one saved analysis run.
type Snapshot struct {
	ID        uuid.UUID        `json:"id" bson:"_id"`
	EnvName   string           `json:"env_name" bson:"env_name"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Report    *analysis.Report `json:"report" bson:"report"`
}

// NewSnapshot wraps a report for storage. The snapshot shares the report's
// ID and timestamp, so the ID printed after an analysis is the one
// "history show" retrieves.
func NewSnapshot(report *analysis.Report) *Snapshot {
	return &Snapshot{
		ID:        report.ID,
		EnvName:   report.Name,
		CreatedAt: report.CreatedAt,
		Report:    report,
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores a snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// List returns snapshots, newest first. An empty envName lists every
	// environment.
	List(ctx context.Context, envName string) ([]*Snapshot, error)

	// Get retrieves a snapshot by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*Snapshot, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
