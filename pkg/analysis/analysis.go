package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
)

// Report is the complete result of analyzing one environment. It is the
// shape exporters serialize and the history store persists.
type Report struct {
	ID              uuid.UUID              `json:"id" bson:"_id"`
	Name            string                 `json:"name" bson:"name"`
	CreatedAt       time.Time              `json:"created_at" bson:"created_at"`
	Packages        []conda.Package        `json:"packages" bson:"packages"`
	TotalSize       int64                  `json:"total_size" bson:"total_size"`
	PinnedCount     int                    `json:"pinned_count" bson:"pinned_count"`
	OutdatedCount   int                    `json:"outdated_count" bson:"outdated_count"`
	Conflicts       []graph.ConflictRecord `json:"conflicts" bson:"conflicts"`
	Recommendations []string               `json:"recommendations" bson:"recommendations"`
}

// Analyze assembles a Report from an environment's already-resolved data:
// the (possibly enriched) package list, the dependency map, and the detected
// conflicts. It performs no I/O.
func Analyze(name string, packages []conda.Package, depMap map[string][]string, conflicts []graph.ConflictRecord) *Report {
	r := &Report{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Packages:  packages,
		Conflicts: conflicts,
	}

	for _, p := range packages {
		if p.Size > 0 {
			r.TotalSize += p.Size
		}
		if p.IsPinned {
			r.PinnedCount++
		}
		if p.IsOutdated {
			r.OutdatedCount++
		}
	}

	r.Recommendations = Recommendations(packages, depMap, conflicts)
	return r
}

// FormatSize renders a byte count for terminal output ("1.18 GB", "356 bytes").
func FormatSize(size int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case size >= gb:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(gb))
	case size >= mb:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(mb))
	case size >= kb:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(kb))
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
