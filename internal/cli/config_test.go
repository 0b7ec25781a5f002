package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "file")
	}
	if cfg.Cache.TTL.Duration != cache.TTLHTTP {
		t.Errorf("Cache.TTL = %v, want %v", cfg.Cache.TTL.Duration, cache.TTLHTTP)
	}
	if cfg.DefaultChannel != "conda-forge" {
		t.Errorf("DefaultChannel = %q, want %q", cfg.DefaultChannel, "conda-forge")
	}
	if cfg.Offline {
		t.Error("Offline should default to false")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configHome := t.TempDir()
	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}

	content := `default_channel = "bioconda"
offline = true

[cache]
backend = "redis"
ttl = "1h"

[redis]
addr = "localhost:6379"
db = 2

[mongo]
uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", configHome)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	if cfg.DefaultChannel != "bioconda" {
		t.Errorf("DefaultChannel = %q, want %q", cfg.DefaultChannel, "bioconda")
	}
	if !cfg.Offline {
		t.Error("Offline should be true")
	}
	if cfg.Cache.Backend != "redis" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "redis")
	}
	if cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL.Duration)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("Redis.DB = %d, want 2", cfg.Redis.DB)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %q, want mongodb URI", cfg.Mongo.URI)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig should tolerate a missing file, got: %v", err)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("Cache.Backend = %q, want default %q", cfg.Cache.Backend, "file")
	}
	if cfg.DefaultChannel != "conda-forge" {
		t.Errorf("DefaultChannel = %q, want default %q", cfg.DefaultChannel, "conda-forge")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	configHome := t.TempDir()
	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", configHome)

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig should fail on malformed TOML")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CONDAGRAPH_CACHE_BACKEND", "none")
	t.Setenv("CONDAGRAPH_CACHE_DIR", "/tmp/cg-cache")
	t.Setenv("CONDAGRAPH_CACHE_TTL", "2h")
	t.Setenv("CONDAGRAPH_REDIS_ADDR", "redis:6379")
	t.Setenv("CONDAGRAPH_MONGO_URI", "mongodb://db:27017")
	t.Setenv("CONDAGRAPH_DEFAULT_CHANNEL", "defaults")

	cfg := defaultConfig()
	applyEnv(&cfg)

	if cfg.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, "none")
	}
	if cfg.Cache.Dir != "/tmp/cg-cache" {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, "/tmp/cg-cache")
	}
	if cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("Cache.TTL = %v, want 2h", cfg.Cache.TTL.Duration)
	}
	if cfg.Redis.Addr != "redis:6379" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "redis:6379")
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("Mongo.URI = %q, want %q", cfg.Mongo.URI, "mongodb://db:27017")
	}
	if cfg.DefaultChannel != "defaults" {
		t.Errorf("DefaultChannel = %q, want %q", cfg.DefaultChannel, "defaults")
	}
}

func TestApplyEnvOffline(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"yes", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("CONDAGRAPH_OFFLINE", tt.value)

			cfg := defaultConfig()
			applyEnv(&cfg)

			if cfg.Offline != tt.want {
				t.Errorf("Offline = %v for %q, want %v", cfg.Offline, tt.value, tt.want)
			}
		})
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		text    string
		want    time.Duration
		wantErr bool
	}{
		{"24h", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"1500ms", 1500 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var d duration
			err := d.UnmarshalText([]byte(tt.text))
			if tt.wantErr {
				if err == nil {
					t.Errorf("UnmarshalText(%q) should fail", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText(%q) failed: %v", tt.text, err)
			}
			if d.Duration != tt.want {
				t.Errorf("duration = %v, want %v", d.Duration, tt.want)
			}
		})
	}
}

func TestEnrichEnabled(t *testing.T) {
	tests := []struct {
		name      string
		offline   bool
		enrich    bool
		noEnrich  bool
		enrichSet bool
		want      bool
	}{
		{name: "default online", want: true},
		{name: "default offline", offline: true, want: false},
		{name: "explicit enrich overrides offline", offline: true, enrich: true, enrichSet: true, want: true},
		{name: "explicit enrich=false", enrich: false, enrichSet: true, want: false},
		{name: "no-enrich wins over enrich", enrich: true, enrichSet: true, noEnrich: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Offline = tt.offline

			got := enrichEnabled(cfg, tt.enrich, tt.noEnrich, tt.enrichSet)
			if got != tt.want {
				t.Errorf("enrichEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewCacheBackendNone(t *testing.T) {
	c := newCacheBackend(context.Background(), Config{Cache: CacheConfig{Backend: "none"}})
	defer c.Close()

	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("backend %T, want *cache.NullCache", c)
	}
}

func TestNewCacheBackendFile(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = t.TempDir()

	c := newCacheBackend(context.Background(), cfg)
	defer c.Close()

	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("backend %T, want *cache.FileCache", c)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.DefaultChannel = "bioconda"
	cfg.Cache.TTL = duration{time.Hour}

	opts := pipelineOptions(cfg, true, false, true)

	if !opts.Deep {
		t.Error("Deep should be true")
	}
	if opts.Enrich {
		t.Error("Enrich should be false")
	}
	if !opts.Refresh {
		t.Error("Refresh should be true")
	}
	if opts.Channel != "bioconda" {
		t.Errorf("Channel = %q, want %q", opts.Channel, "bioconda")
	}
	if opts.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", opts.CacheTTL)
	}
}
