package graph

import (
	"fmt"

	"github.com/condagraph/condagraph/pkg/conda"
)

// ConflictRecord reports one pair of packages whose declared constraints on
// a shared dependency cannot be satisfied together. Description names the
// shared dependency and both constraint strings. Records are read-only once
// produced; the same pair may legitimately appear again for a different
// shared dependency.
type ConflictRecord struct {
	PackageA    string `json:"package_a" bson:"package_a"`
	PackageB    string `json:"package_b" bson:"package_b"`
	Description string `json:"description" bson:"description"`
}

// DetectConflicts finds pairwise version-constraint conflicts.
//
// Every spec in depMap is parsed and grouped by dependency name. For each
// dependency with two or more dependents, every unordered dependent pair is
// checked: when both sides declare a non-empty constraint and the two are
// not [Compatible], a record is emitted with the description
// "<dep>(<constraintA>≠<constraintB>)".
//
// Dependents are gathered in package declaration order and pairs emitted in
// (i, j) order with i < j, so output is stable across runs but deliberately
// not sorted. A dependency declared by fewer than two packages, or one that
// either side leaves unconstrained, never produces a record. This is a
// heuristic pairwise check against the probe set, not an installability
// proof.
func DetectConflicts(packages []conda.Package, depMap map[string][]string) []ConflictRecord {
	// dependency name -> dependents, in first-seen order on both levels.
	dependents := make(map[string][]string)
	var order []string
	for _, p := range packages {
		for _, spec := range depMap[p.Name] {
			dep := ParseDependency(spec)
			if dep.Name == "" {
				continue
			}
			if _, seen := dependents[dep.Name]; !seen {
				order = append(order, dep.Name)
			}
			// A package declaring the same dependency twice stays one
			// dependent; duplicates within one spec list are adjacent here.
			if prev := dependents[dep.Name]; len(prev) > 0 && prev[len(prev)-1] == p.Name {
				continue
			}
			dependents[dep.Name] = append(dependents[dep.Name], p.Name)
		}
	}

	var records []ConflictRecord
	for _, dep := range order {
		pkgs := dependents[dep]
		if len(pkgs) < 2 {
			continue
		}
		for i := 0; i < len(pkgs); i++ {
			for j := i + 1; j < len(pkgs); j++ {
				ca, okA := declaredConstraint(depMap[pkgs[i]], dep)
				cb, okB := declaredConstraint(depMap[pkgs[j]], dep)
				if !okA || !okB || ca == "" || cb == "" {
					continue
				}
				if Compatible(ca, cb) {
					continue
				}
				records = append(records, ConflictRecord{
					PackageA:    pkgs[i],
					PackageB:    pkgs[j],
					Description: fmt.Sprintf("%s(%s≠%s)", dep, ca, cb),
				})
			}
		}
	}
	return records
}

// declaredConstraint re-parses a package's spec list and returns the
// constraint it declares for dep. The second return is false when the
// package does not declare dep at all.
func declaredConstraint(specs []string, dep string) (string, bool) {
	for _, spec := range specs {
		d := ParseDependency(spec)
		if d.Name == dep {
			return d.Constraint, true
		}
	}
	return "", false
}
