package history

import (
	"slices"
	"testing"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/conda"
)

func snapshotWith(packages ...conda.Package) *Snapshot {
	return NewSnapshot(&analysis.Report{Name: "env", Packages: packages})
}

func TestDiff(t *testing.T) {
	older := snapshotWith(
		conda.Package{Name: "numpy", Version: "1.21.0"},
		conda.Package{Name: "scipy", Version: "1.7.0"},
		conda.Package{Name: "flask", Version: "1.0"},
	)
	newer := snapshotWith(
		conda.Package{Name: "numpy", Version: "1.26.4"},
		conda.Package{Name: "scipy", Version: "1.7.0"},
		conda.Package{Name: "pandas", Version: "2.2.1"},
	)

	got := Diff(older, newer)

	want := []Change{
		{Package: "flask", Kind: ChangeRemoved, From: "1.0"},
		{Package: "numpy", Kind: ChangeUpdated, From: "1.21.0", To: "1.26.4"},
		{Package: "pandas", Kind: ChangeAdded, To: "2.2.1"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Diff = %+v, want %+v", got, want)
	}
}

func TestDiffIdenticalSnapshots(t *testing.T) {
	a := snapshotWith(conda.Package{Name: "numpy", Version: "1.26.4"})
	b := snapshotWith(conda.Package{Name: "numpy", Version: "1.26.4"})

	if got := Diff(a, b); len(got) != 0 {
		t.Errorf("identical snapshots produced changes: %+v", got)
	}
}

func TestDiffFromNothing(t *testing.T) {
	newer := snapshotWith(conda.Package{Name: "python", Version: "3.11.0"})

	got := Diff(nil, newer)

	want := []Change{{Package: "python", Kind: ChangeAdded, To: "3.11.0"}}
	if !slices.Equal(got, want) {
		t.Errorf("Diff(nil, snap) = %+v, want %+v", got, want)
	}
}
