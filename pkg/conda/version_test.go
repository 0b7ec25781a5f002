package conda

import "testing"

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.21.0", "1.21.0"},
		{"1.21", "1.21.0"},
		{"3", "3.0.0"},
		{"1.21.0+cuda11", "1.21.0"},
		{"2.0.0-rc1", "2.0.0"},
		{"0-beta", "0.0.0"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeVersion(tt.in); got != tt.want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.2", "1.2.0", 0},
		{"1.10.0", "1.9.0", 1},
		{"1.21.0+cuda11", "1.21.0", 0},
		{"3.9rc1", "3.9", 0},
		{"", "1.0.0", -1},
	}

	for _, tt := range tests {
		if got := CompareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer available", "1.21.0", "1.24.0", true},
		{"same version", "1.21.0", "1.21.0", false},
		{"current ahead", "2.0.0", "1.9.0", false},
		{"empty current", "", "1.0.0", false},
		{"empty latest", "1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}
