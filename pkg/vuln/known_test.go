package vuln

import (
	"testing"

	"github.com/condagraph/condagraph/pkg/conda"
)

func TestCheckKnownTable(t *testing.T) {
	tests := []struct {
		name    string
		pkg     conda.Package
		wantIDs []string
	}{
		{
			name:    "exact notorious version",
			pkg:     conda.Package{Name: "numpy", Version: "1.19.0"},
			wantIDs: []string{"CVE-2021-33430"},
		},
		{
			name:    "version family prefix",
			pkg:     conda.Package{Name: "django", Version: "1.11.5"},
			wantIDs: []string{"CVE-2020-9402"},
		},
		{
			name:    "older than a full triplet entry",
			pkg:     conda.Package{Name: "tensorflow", Version: "2.3.0"},
			wantIDs: []string{"CVE-2021-37678"},
		},
		{
			name: "newer than the flagged version",
			pkg:  conda.Package{Name: "tensorflow", Version: "2.5.0"},
		},
		{
			name: "package not in the table",
			pkg:  conda.Package{Name: "leftpad", Version: "1.0.0"},
		},
		{
			name: "patched requests",
			pkg:  conda.Package{Name: "requests", Version: "2.31.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkKnownTable(tt.pkg)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d findings %v, want %d", len(got), got, len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("findings[%d].ID = %q, want %q", i, got[i].ID, want)
				}
				if got[i].Package != tt.pkg.Name || got[i].Version != tt.pkg.Version {
					t.Errorf("findings[%d] attributed to %s %s, want %s %s",
						i, got[i].Package, got[i].Version, tt.pkg.Name, tt.pkg.Version)
				}
			}
		})
	}
}

func TestCheckKnownTableCaseInsensitive(t *testing.T) {
	got := checkKnownTable(conda.Package{Name: "Pillow", Version: "8.3.0"})
	if len(got) != 1 || got[0].ID != "CVE-2021-34552" {
		t.Errorf("findings = %v, want the pillow entry", got)
	}
}

func TestIsVulnerableVersion(t *testing.T) {
	tests := []struct {
		version string
		pattern string
		want    bool
	}{
		{"1.19.0", "1.19.0", true},
		{"1.19.0.post1", "1.19.0", true},
		{"2.3.0", "2.4.0", true},
		{"2.4.1", "2.4.0", false},
		{"1.11.5", "2.0", false},
		{"2.0", "2.0", true},
		{"0.12.4", "0.12", true},
		{"3.4.5", "3.4", true},
		{"3.5.0", "3.4", false},
	}

	for _, tt := range tests {
		t.Run(tt.version+" vs "+tt.pattern, func(t *testing.T) {
			if got := isVulnerableVersion(tt.version, tt.pattern); got != tt.want {
				t.Errorf("isVulnerableVersion(%q, %q) = %v, want %v", tt.version, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestCheckVersionGap(t *testing.T) {
	tests := []struct {
		name string
		pkg  conda.Package
		want bool
	}{
		{
			name: "many minors behind",
			pkg:  conda.Package{Name: "requests", Version: "2.19.0", LatestVersion: "2.31.0", IsOutdated: true},
			want: true,
		},
		{
			name: "major behind",
			pkg:  conda.Package{Name: "pydantic", Version: "1.10.9", LatestVersion: "2.6.4", IsOutdated: true},
			want: true,
		},
		{
			name: "one minor behind",
			pkg:  conda.Package{Name: "numpy", Version: "1.25.0", LatestVersion: "1.26.0", IsOutdated: true},
			want: false,
		},
		{
			name: "not flagged outdated",
			pkg:  conda.Package{Name: "requests", Version: "2.19.0", LatestVersion: "2.31.0"},
			want: false,
		},
		{
			name: "no enrichment data",
			pkg:  conda.Package{Name: "requests", Version: "2.19.0"},
			want: false,
		},
		{
			name: "short version strings",
			pkg:  conda.Package{Name: "python", Version: "3.9", LatestVersion: "3.12", IsOutdated: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkVersionGap(tt.pkg)
			if tt.want {
				if len(got) != 1 {
					t.Fatalf("got %d findings, want 1", len(got))
				}
				f := got[0]
				if f.ID != "VERSION-GAP" || f.Severity != SeverityLow {
					t.Errorf("finding = %+v, want VERSION-GAP at low severity", f)
				}
				if f.FixedIn != tt.pkg.LatestVersion {
					t.Errorf("FixedIn = %q, want %q", f.FixedIn, tt.pkg.LatestVersion)
				}
				return
			}
			if len(got) != 0 {
				t.Errorf("got findings %v, want none", got)
			}
		})
	}
}

func TestCheckVersionGapMessage(t *testing.T) {
	got := checkVersionGap(conda.Package{Name: "requests", Version: "2.19.0", LatestVersion: "2.31.0", IsOutdated: true})
	want := "Potentially vulnerable due to being significantly outdated (current: 2.19.0, latest: 2.31.0)"
	if len(got) != 1 || got[0].Description != want {
		t.Errorf("Description = %q, want %q", got[0].Description, want)
	}
}

func TestParseTriplet(t *testing.T) {
	tests := []struct {
		version string
		major   int
		minor   int
		patch   int
		ok      bool
	}{
		{"1.2.3", 1, 2, 3, true},
		{"10.20.30", 10, 20, 30, true},
		{"1.2.3.4", 1, 2, 3, true},
		{"1.2", 0, 0, 0, false},
		{"1.2.x", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			major, minor, patch, ok := parseTriplet(tt.version)
			if ok != tt.ok || major != tt.major || minor != tt.minor || patch != tt.patch {
				t.Errorf("parseTriplet(%q) = (%d, %d, %d, %v), want (%d, %d, %d, %v)",
					tt.version, major, minor, patch, ok, tt.major, tt.minor, tt.patch, tt.ok)
			}
		})
	}
}
