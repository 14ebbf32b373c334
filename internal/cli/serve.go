package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/cache"
	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/server"
	"github.com/matzehuels/trackgen/pkg/storage"
	"github.com/matzehuels/trackgen/pkg/storage/mongo"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr        string
	redisAddr   string
	redisPass   string
	redisDB     int
	cachePrefix string
	mongoURI    string
	mongoDB     string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API over HTTP",
		Long: `Serve the generation API over HTTP.

Without backends the server caches nothing and keeps runs in memory. With
--redis, generated runs and previews are cached in Redis; with --mongo, runs
are archived in MongoDB and survive restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the result cache (host:port)")
	cmd.Flags().StringVar(&opts.redisPass, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "prefix for cache keys, for sharing one Redis")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the run archive")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", mongo.DefaultDatabase, "MongoDB database")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	var (
		resultCache cache.Cache = cache.NewNullCache()
		keyer                   = cache.NewDefaultKeyer()
		store       storage.Store
		err         error
	)
	if opts.redisAddr != "" {
		resultCache, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: opts.redisPass,
			DB:       opts.redisDB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("using redis cache", "addr", opts.redisAddr)
	}
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(keyer, opts.cachePrefix)
	}
	if opts.mongoURI != "" {
		store, err = mongo.NewStore(ctx, mongo.Config{URI: opts.mongoURI, Database: opts.mongoDB})
		if err != nil {
			resultCache.Close()
			return fmt.Errorf("connect mongo: %w", err)
		}
		logger.Info("using mongo run archive", "database", opts.mongoDB)
	}

	runner := pipeline.NewRunner(resultCache, keyer, store, logger)
	defer runner.Close()

	return server.New(runner, logger).ListenAndServe(ctx, opts.addr)
}
