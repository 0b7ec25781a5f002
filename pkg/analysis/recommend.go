package analysis

import (
	"fmt"
	"strings"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
)

// maxDetailLines caps the per-package follow-up lines emitted after a
// summary recommendation, so a badly outdated environment does not drown
// the report in update advice.
const maxDetailLines = 3

// devPackages are tooling packages that legitimately have no dependents.
// They are never reported as redundant.
var devPackages = map[string]bool{
	"pytest":     true,
	"black":      true,
	"flake8":     true,
	"mypy":       true,
	"isort":      true,
	"pylint":     true,
	"jupyter":    true,
	"ipython":    true,
	"notebook":   true,
	"ipykernel":  true,
	"jupyterlab": true,
}

// Recommendations derives human-readable advice from the analyzed
// environment: update suggestions for outdated packages, pinning hygiene,
// overall size, conflicts, and packages nothing depends on.
func Recommendations(packages []conda.Package, depMap map[string][]string, conflicts []graph.ConflictRecord) []string {
	var recs []string
	if len(packages) == 0 {
		return recs
	}

	var outdated []conda.Package
	for _, p := range packages {
		if p.IsOutdated {
			outdated = append(outdated, p)
		}
	}
	if len(outdated) > 0 {
		recs = append(recs, fmt.Sprintf("Found %d outdated packages. Consider updating them for security and performance improvements.", len(outdated)))
		for _, p := range outdated[:min(len(outdated), maxDetailLines)] {
			if p.LatestVersion == "" {
				continue
			}
			current := p.Version
			if current == "" {
				current = "unknown"
			}
			recs = append(recs, fmt.Sprintf("Update %s from %s to %s", p.Name, current, p.LatestVersion))
		}
	}

	pinned := 0
	for _, p := range packages {
		if p.IsPinned {
			pinned++
		}
	}
	if pinned > 0 {
		pct := float64(pinned) / float64(len(packages)) * 100
		if pct > 70 {
			recs = append(recs, fmt.Sprintf("%.1f%% of packages have pinned versions. This ensures reproducibility but may prevent updates.", pct))
		} else if pct < 30 {
			recs = append(recs, fmt.Sprintf("Only %.1f%% of packages have pinned versions. Consider pinning more packages for better reproducibility.", pct))
		}
	}

	var totalSize int64
	missingSize := 0
	for _, p := range packages {
		if p.Size > 0 {
			totalSize += p.Size
		} else {
			missingSize++
		}
	}
	if totalSize > 2_000_000_000 {
		recs = append(recs, "Environment is quite large. Consider creating a minimal environment with only required packages.")
	}
	if totalSize > 0 && missingSize > 0 {
		recs = append(recs, fmt.Sprintf("Size information is missing for %d packages, so the reported total size is an underestimate.", missingSize))
	}

	if len(conflicts) > 0 {
		recs = append(recs, fmt.Sprintf("Found %d version conflicts between package constraints. Review them before updating the affected packages.", len(conflicts)))
	}

	redundant := RedundantPackages(packages, depMap)
	if len(redundant) > 0 {
		recs = append(recs, fmt.Sprintf("Found %d potentially redundant packages that might be removed to streamline your environment.", len(redundant)))
		for _, name := range redundant[:min(len(redundant), maxDetailLines)] {
			recs = append(recs, fmt.Sprintf("Consider removing unused package: %s", name))
		}
	}

	return recs
}

// RedundantPackages returns the names of installed packages that no other
// package depends on, in the order they appear in the environment. Common
// development tools are exempt because they are installed for their
// command-line entry points rather than as libraries.
func RedundantPackages(packages []conda.Package, depMap map[string][]string) []string {
	isDependency := make(map[string]bool)
	for _, deps := range depMap {
		for _, spec := range deps {
			dep := graph.ParseDependency(spec)
			if dep.Name != "" {
				isDependency[strings.ToLower(dep.Name)] = true
			}
		}
	}

	var redundant []string
	for _, p := range packages {
		name := strings.ToLower(p.Name)
		if isDependency[name] || devPackages[name] {
			continue
		}
		redundant = append(redundant, p.Name)
	}
	return redundant
}
