package history

import (
	"slices"
	"strings"
)

// ChangeKind classifies one entry in a snapshot diff.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeUpdated ChangeKind = "updated"
)

// Change describes one package difference between two snapshots.
type Change struct {
	Package string     `json:"package"`
	Kind    ChangeKind `json:"kind"`
	From    string     `json:"from,omitempty"`
	To      string     `json:"to,omitempty"`
}

// Diff compares the package sets of two snapshots, older to newer.
// Packages present only in newer are added, packages present only in older
// are removed, and differing versions are updated. The result is sorted by
// package name; identical packages produce no entry.
func Diff(older, newer *Snapshot) []Change {
	oldVersions := packageVersions(older)
	newVersions := packageVersions(newer)

	var changes []Change
	for name, from := range oldVersions {
		to, ok := newVersions[name]
		switch {
		case !ok:
			changes = append(changes, Change{Package: name, Kind: ChangeRemoved, From: from})
		case from != to:
			changes = append(changes, Change{Package: name, Kind: ChangeUpdated, From: from, To: to})
		}
	}
	for name, to := range newVersions {
		if _, ok := oldVersions[name]; !ok {
			changes = append(changes, Change{Package: name, Kind: ChangeAdded, To: to})
		}
	}

	slices.SortFunc(changes, func(a, b Change) int {
		return strings.Compare(a.Package, b.Package)
	})
	return changes
}

func packageVersions(snap *Snapshot) map[string]string {
	versions := make(map[string]string)
	if snap == nil || snap.Report == nil {
		return versions
	}
	for _, p := range snap.Report.Packages {
		versions[p.Name] = p.Version
	}
	return versions
}
