package graph

import (
	"regexp"
	"strconv"
	"strings"
)

// constraintAny is the wildcard constraint that every version satisfies.
const constraintAny = "any"

// specPattern splits a dependency spec into a name and an optional trailing
// constraint. The name is terminated by the first operator character; specs
// with other punctuation (spaces, channel prefixes) do not match and count
// as unparseable.
var specPattern = regexp.MustCompile(`^([A-Za-z0-9_-]+)([<>=~^]+.+)?$`)

// Dependency is one parsed dependency specification. Constraint is empty
// when the spec names a package without restricting its version.
type Dependency struct {
	Name       string `json:"name" bson:"name"`
	Constraint string `json:"constraint,omitempty" bson:"constraint,omitempty"`
}

// ParseDependency extracts the package name and version constraint from a
// free-form spec string such as "numpy>=1.20.0" or "python". It is total:
// specs that do not fit the grammar yield a Dependency with an empty Name,
// which callers skip. It never panics or errors.
func ParseDependency(spec string) Dependency {
	m := specPattern.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return Dependency{}
	}
	return Dependency{Name: m[1], Constraint: m[2]}
}

// Compatible reports whether two version constraints admit a common version.
//
// An empty or "any" constraint is compatible with everything, and textually
// identical constraints are always compatible. Otherwise both constraints
// are parsed as version ranges and a fixed probe set of versions is tested
// against both; one probe satisfying both means compatible.
//
// The probe set is a deliberate heuristic. Two ranges whose only overlap
// lies outside the probes are reported incompatible, and conflict counts
// downstream are defined relative to this exact set. Constraints that fail
// to parse as ranges fall back to textual equality, which the shortcut
// above already decided.
func Compatible(a, b string) bool {
	if a == "" || b == "" || a == constraintAny || b == constraintAny || a == b {
		return true
	}

	ta, okA := parseConstraint(a)
	tb, okB := parseConstraint(b)
	if !okA || !okB {
		return false
	}

	for _, probe := range probes {
		if satisfiesAll(ta, probe) && satisfiesAll(tb, probe) {
			return true
		}
	}
	return false
}

// probeVersions spans the major/minor boundaries that real-world constraints
// pivot on. Kept small on purpose; see [Compatible].
var probeVersions = []string{
	"0.1.0", "1.0.0", "1.1.0", "1.2.3", "2.0.0",
	"2.3.4", "3.0.0", "3.4.5", "4.0.0", "4.5.6",
}

var probes = func() [][]int {
	out := make([][]int, len(probeVersions))
	for i, s := range probeVersions {
		out[i], _ = versionComponents(s)
	}
	return out
}()

// constraintTerm is one operator/version pair within a constraint.
type constraintTerm struct {
	op      string
	version []int
}

// parseConstraint parses a constraint string into its terms. A constraint is
// a single "<op><version>" or a comma-separated conjunction of them, as in
// ">=1.16.6,<2.0". Reports false when any term fails to parse.
func parseConstraint(s string) ([]constraintTerm, bool) {
	parts := strings.Split(s, ",")
	terms := make([]constraintTerm, 0, len(parts))
	for _, part := range parts {
		op, rest, ok := splitOperator(strings.TrimSpace(part))
		if !ok {
			return nil, false
		}
		version, ok := versionComponents(rest)
		if !ok {
			return nil, false
		}
		terms = append(terms, constraintTerm{op: op, version: version})
	}
	return terms, true
}

// operators in match order: two-character forms before their one-character
// prefixes.
var operators = []string{"==", ">=", "<=", "~=", "^", ">", "<"}

func splitOperator(s string) (op, rest string, ok bool) {
	for _, candidate := range operators {
		if strings.HasPrefix(s, candidate) {
			rest = s[len(candidate):]
			if rest == "" {
				return "", "", false
			}
			return candidate, rest, true
		}
	}
	return "", "", false
}

func satisfiesAll(terms []constraintTerm, probe []int) bool {
	for _, t := range terms {
		if !t.matches(probe) {
			return false
		}
	}
	return true
}

func (t constraintTerm) matches(probe []int) bool {
	cmp := compareComponents(probe, t.version)
	switch t.op {
	case "==":
		return cmp == 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	case "~=":
		// Compatible release: at least the given version, same release
		// series up to the version's penultimate component.
		if cmp < 0 {
			return false
		}
		return hasComponentPrefix(probe, t.version[:len(t.version)-1])
	case "^":
		// Caret: at least the given version, same major, or same minor
		// while the major is still zero.
		if cmp < 0 {
			return false
		}
		if t.version[0] > 0 {
			return componentAt(probe, 0) == t.version[0]
		}
		return componentAt(probe, 0) == 0 && componentAt(probe, 1) == componentAt(t.version, 1)
	}
	return false
}

// versionComponents parses the numeric dot-components of a version string.
// Each component contributes its leading digits ("0a0" reads as 0), and
// parsing stops at the first component with none, so "1.16.6" yields
// [1 16 6] and "2.0a0" yields [2 0]. Reports false when nothing numeric
// leads the string.
func versionComponents(s string) ([]int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	parts := strings.Split(s, ".")
	comps := make([]int, 0, len(parts))
	for _, part := range parts {
		i := 0
		for i < len(part) && part[i] >= '0' && part[i] <= '9' {
			i++
		}
		if i == 0 {
			break
		}
		n, err := strconv.Atoi(part[:i])
		if err != nil {
			return nil, false
		}
		comps = append(comps, n)
	}
	if len(comps) == 0 {
		return nil, false
	}
	return comps, true
}

// compareComponents compares two component vectors, zero-padding the
// shorter, so 1.2 and 1.2.0 compare equal.
func compareComponents(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := componentAt(a, i), componentAt(b, i)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

func componentAt(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}

func hasComponentPrefix(v, prefix []int) bool {
	for i, want := range prefix {
		if componentAt(v, i) != want {
			return false
		}
	}
	return true
}
