package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "condagraph"

// Config holds the file-backed settings. Values are layered: built-in
// defaults, then the config file, then CONDAGRAPH_* environment variables,
// then command-line flags.
type Config struct {
	Cache          CacheConfig `toml:"cache"`
	Redis          RedisConfig `toml:"redis"`
	Mongo          MongoConfig `toml:"mongo"`
	DefaultChannel string      `toml:"default_channel"`
	Offline        bool        `toml:"offline"`
}

// CacheConfig selects and tunes the registry response cache.
type CacheConfig struct {
	Backend string   `toml:"backend"` // "file", "redis", or "none"
	Dir     string   `toml:"dir"`     // file backend directory (default: XDG cache dir)
	TTL     duration `toml:"ttl"`     // response lifetime (e.g., "24h")
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig selects the MongoDB history store. An empty URI keeps
// snapshots in local files.
type MongoConfig struct {
	URI string `toml:"uri"`
}

// duration wraps time.Duration so TOML values like "24h" parse.
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// defaultConfig returns the built-in settings: file-backed caching with the
// standard response TTL, conda-forge as the fallback channel, online.
func defaultConfig() Config {
	return Config{
		Cache:          CacheConfig{Backend: "file", TTL: duration{cache.TTLHTTP}},
		DefaultChannel: "conda-forge",
	}
}

// loadConfig reads the config file and applies environment overrides.
// A missing file is not an error; defaults apply.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	if path, err := configPath(); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv layers CONDAGRAPH_* variables over the file values. Flags are
// applied later by the commands, so precedence is flags > env > file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CONDAGRAPH_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("CONDAGRAPH_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("CONDAGRAPH_CACHE_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Cache.TTL = duration{ttl}
		}
	}
	if v := os.Getenv("CONDAGRAPH_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("CONDAGRAPH_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	if v := os.Getenv("CONDAGRAPH_DEFAULT_CHANNEL"); v != "" {
		cfg.DefaultChannel = v
	}
	if v := os.Getenv("CONDAGRAPH_OFFLINE"); v != "" {
		cfg.Offline = v == "1" || strings.EqualFold(v, "true")
	}
}

// configPath returns the config file location using the XDG standard
// (~/.config/condagraph/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory: the configured one when set,
// otherwise the XDG standard (~/.cache/condagraph/).
func cacheDir(cfg Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCacheBackend builds the backend the config selects. Construction
// failures degrade to a null cache with a warning so analysis still runs.
func newCacheBackend(ctx context.Context, cfg Config) cache.Cache {
	logger := loggerFromContext(ctx)
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		c, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Warnf("Redis cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return c
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			return cache.NewNullCache()
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warnf("File cache unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return c
	}
}

// newRunner creates a pipeline runner wired to the configured cache backend.
func newRunner(ctx context.Context, cfg Config) *pipeline.Runner {
	return pipeline.NewRunner(newCacheBackend(ctx, cfg), loggerFromContext(ctx))
}

// pipelineOptions builds pipeline options from the config and the per-run
// switches the commands resolve.
func pipelineOptions(cfg Config, deep, enrich, refresh bool) pipeline.Options {
	return pipeline.Options{
		MetaDir:  pipeline.DefaultMetaDir(),
		Channel:  cfg.DefaultChannel,
		Deep:     deep,
		Enrich:   enrich,
		Refresh:  refresh,
		CacheTTL: cfg.Cache.TTL.Duration,
	}
}

// enrichEnabled resolves the enrichment setting for a command.
// --no-enrich always wins, an explicit --enrich follows, and without either
// flag the config's offline switch decides.
func enrichEnabled(cfg Config, enrich, noEnrich, enrichSet bool) bool {
	if noEnrich {
		return false
	}
	if enrichSet {
		return enrich
	}
	return !cfg.Offline
}
