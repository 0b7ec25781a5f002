package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/condagraph/condagraph/pkg/analysis"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheInfoCmd())

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached registry responses",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCacheClear(c.Context(), cfg)
		},
	}
}

func runCacheClear(ctx context.Context, cfg Config) error {
	if cfg.Cache.Backend == "redis" {
		backend := newCacheBackend(ctx, cfg)
		defer backend.Close()
		if err := backend.Clear(ctx); err != nil {
			return err
		}
		printSuccess("Cleared redis cache")
		printDetail("Address: %s", cfg.Redis.Addr)
		return nil
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	count := 0
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if path == dir {
			return nil
		}
		if !info.IsDir() {
			if err := os.Remove(path); err == nil {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Clean up empty subdirectories
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if info.IsDir() {
			os.Remove(path)
		}
		return nil
	})

	printSuccess("Cleared %d cached entries", count)
	printDetail("Directory: %s", dir)
	return nil
}

// newCacheInfoCmd creates the "cache info" subcommand.
func newCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache backend, location, and size",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runCacheInfo(cfg)
		},
	}
}

func runCacheInfo(cfg Config) error {
	printKeyValue("Backend", cfg.Cache.Backend)
	printKeyValue("TTL", cfg.Cache.TTL.String())

	if cfg.Cache.Backend == "redis" {
		printKeyValue("Address", cfg.Redis.Addr)
		return nil
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	printKeyValue("Directory", dir)

	entries := 0
	var size int64
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		entries++
		size += info.Size()
		return nil
	})
	printKeyValue("Entries", strconv.Itoa(entries))
	printKeyValue("Size", analysis.FormatSize(size))
	return nil
}
