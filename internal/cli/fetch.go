package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexandergillon/metromap/pkg/cache"
	"github.com/alexandergillon/metromap/pkg/config"
	"github.com/alexandergillon/metromap/pkg/errors"
	"github.com/alexandergillon/metromap/pkg/naptan"
)

// newFetchCmd creates the fetch command, which downloads stop points for the
// configured metro lines and writes the station identifier mapping.
func newFetchCmd() *cobra.Command {
	var (
		outputPath string
		configPath string
		redisURL   string
		refresh    bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch station identifiers from the transit authority API",
		Long: `Fetch downloads the stop points of every configured metro line from the
transit authority API and writes them as a naptan.json identifier mapping.

Responses are cached on disk for a week by default; use --refresh to
bypass the cache, or --redis to share the cache between machines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					printError("Failed to load config: %s", errors.UserMessage(err))
					return err
				}
			}

			backend, err := newCacheBackend(ctx, redisURL, noCache)
			if err != nil {
				printError("Failed to set up cache: %s", errors.UserMessage(err))
				return err
			}
			defer backend.Close()

			client := naptan.NewClient(backend)

			prog := newProgress(logger)
			entries, err := client.FetchAll(ctx, cfg.Lines, refresh)
			if err != nil {
				printError("Fetch failed: %s", errors.UserMessage(err))
				return err
			}
			prog.done("stop points fetched")

			if err := naptan.WriteFile(outputPath, entries); err != nil {
				printError("Failed to write %s: %s", outputPath, errors.UserMessage(err))
				return err
			}

			printSuccess("Wrote %s", outputPath)
			printDetail("lines: %d, stations: %d", len(cfg.Lines), len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "naptan.json", "identifier mapping output")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared response cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching entirely")

	return cmd
}

// newCacheBackend selects the response cache: Redis when a URL is given, the
// local file cache otherwise, or no cache at all.
func newCacheBackend(ctx context.Context, redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}
