package cli

import "testing"

func TestServeURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8080", "http://localhost:8080"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"example.com:80", "http://example.com:80"},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := serveURL(tt.addr); got != tt.want {
				t.Errorf("serveURL(%q) = %q, want %q", tt.addr, got, tt.want)
			}
		})
	}
}
