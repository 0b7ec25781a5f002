package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
)

func TestAnalyzeTotals(t *testing.T) {
	packages := []conda.Package{
		{Name: "python", Version: "3.11.0", Size: 30_000_000, IsPinned: true},
		{Name: "numpy", Version: "1.24.0", Size: 8_000_000, IsPinned: true, IsOutdated: true, LatestVersion: "1.26.4"},
		{Name: "requests", Version: "2.26.0", Channel: "pip", IsOutdated: true, LatestVersion: "2.32.0"},
	}
	conflicts := []graph.ConflictRecord{
		{PackageA: "a", PackageB: "b", Description: "numpy(>=1.20≠<1.19)"},
	}

	before := time.Now().UTC()
	report := Analyze("science", packages, nil, conflicts)

	if report.Name != "science" {
		t.Errorf("Name = %q, want %q", report.Name, "science")
	}
	if report.ID == uuid.Nil {
		t.Error("expected a generated report ID")
	}
	if report.CreatedAt.Before(before) || report.CreatedAt.After(time.Now().UTC()) {
		t.Errorf("CreatedAt = %v, want a current UTC timestamp", report.CreatedAt)
	}
	if report.TotalSize != 38_000_000 {
		t.Errorf("TotalSize = %d, want 38000000", report.TotalSize)
	}
	if report.PinnedCount != 2 {
		t.Errorf("PinnedCount = %d, want 2", report.PinnedCount)
	}
	if report.OutdatedCount != 2 {
		t.Errorf("OutdatedCount = %d, want 2", report.OutdatedCount)
	}
	if len(report.Packages) != 3 {
		t.Errorf("Packages carries %d entries, want 3", len(report.Packages))
	}
	if len(report.Conflicts) != 1 {
		t.Errorf("Conflicts carries %d entries, want 1", len(report.Conflicts))
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected recommendations for an outdated, conflicted environment")
	}
}

func TestAnalyzeEmptyEnvironment(t *testing.T) {
	report := Analyze("empty", nil, nil, nil)

	if report.TotalSize != 0 || report.PinnedCount != 0 || report.OutdatedCount != 0 {
		t.Errorf("empty environment produced totals %d/%d/%d, want zeros",
			report.TotalSize, report.PinnedCount, report.OutdatedCount)
	}
	if len(report.Recommendations) != 0 {
		t.Errorf("empty environment produced recommendations: %v", report.Recommendations)
	}
}

func TestAnalyzeDistinctIDs(t *testing.T) {
	a := Analyze("env", nil, nil, nil)
	b := Analyze("env", nil, nil, nil)
	if a.ID == b.ID {
		t.Errorf("two reports share the ID %s", a.ID)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{356, "356 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1 << 20, "1.00 MB"},
		{5 * 1 << 20, "5.00 MB"},
		{1288490188, "1.20 GB"},
		{2 * 1 << 30, "2.00 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSize(tt.size); got != tt.want {
				t.Errorf("FormatSize(%d) = %q, want %q", tt.size, got, tt.want)
			}
		})
	}
}
