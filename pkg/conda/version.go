package conda

import (
	"strconv"
	"strings"
)

// NormalizeVersion converts a conda version string to a plain three-component
// form for comparison. Build metadata after "+" or "-" is stripped, and short
// versions are zero-padded ("3.9" becomes "3.9.0").
func NormalizeVersion(version string) string {
	v := version

	// Remove build metadata
	if idx := strings.Index(v, "+"); idx >= 0 {
		v = v[:idx]
	} else if idx := strings.Index(v, "-"); idx >= 0 && !strings.HasPrefix(v, "0-") {
		v = v[:idx]
	}

	parts := strings.Split(v, ".")
	switch len(parts) {
	case 1:
		return parts[0] + ".0.0"
	case 2:
		return parts[0] + "." + parts[1] + ".0"
	default:
		return v
	}
}

// CompareVersions compares two version strings numerically, component by
// component, padding the shorter with zeros. Returns -1, 0, or 1.
// Non-numeric components compare as zero.
func CompareVersions(a, b string) int {
	aParts := versionParts(NormalizeVersion(a))
	bParts := versionParts(NormalizeVersion(b))

	maxLen := len(aParts)
	if len(bParts) > maxLen {
		maxLen = len(bParts)
	}

	for i := 0; i < maxLen; i++ {
		var aVal, bVal int
		if i < len(aParts) {
			aVal = aParts[i]
		}
		if i < len(bParts) {
			bVal = bParts[i]
		}
		if aVal < bVal {
			return -1
		}
		if aVal > bVal {
			return 1
		}
	}
	return 0
}

// IsNewer reports whether latest is strictly newer than current.
// Either argument being empty returns false, since no comparison is possible.
func IsNewer(latest, current string) bool {
	if latest == "" || current == "" {
		return false
	}
	return CompareVersions(latest, current) > 0
}

func versionParts(v string) []int {
	v = strings.TrimPrefix(v, "v")
	fields := strings.Split(v, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		// Trailing non-numeric runs ("9rc1") count as their numeric prefix.
		end := 0
		for end < len(f) && f[end] >= '0' && f[end] <= '9' {
			end++
		}
		n, _ := strconv.Atoi(f[:end])
		parts[i] = n
	}
	return parts
}
