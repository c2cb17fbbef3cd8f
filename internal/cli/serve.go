package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordview/internal/server"
	"github.com/matzehuels/chordview/pkg/cache"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/errors"
	"github.com/matzehuels/chordview/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisURL  string // artifact cache; empty uses the local file cache
	mongoURI  string // chord store; empty uses storeDir or the library
	mongoDB   string
	mongoColl string
	storeDir  string // file-backed chord store
	library   string
	style     string
	writable  bool
	origins   string
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:      server.DefaultAddr,
		mongoDB:   library.DefaultMongoDatabase,
		mongoColl: library.DefaultMongoCollection,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chord diagrams over HTTP",
		Long: `Serve the chord library and the diagram renderer over HTTP.

Chords come from MongoDB (--mongo), a directory of JSON files (--store-dir)
or the chord library. The first two can be made writable with --writable.
Rendered diagrams are cached in Redis (--redis) or in the local cache
directory.`,
		Example: `  chordview serve
  chordview serve --addr :9000 --redis redis://localhost:6379/0
  chordview serve --mongo mongodb://localhost:27017 --writable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the chord store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database")
	cmd.Flags().StringVar(&opts.mongoColl, "mongo-collection", opts.mongoColl, "MongoDB collection")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory of chord JSON files")
	cmd.Flags().StringVar(&opts.library, "library", "", "chord library file (.toml, .yaml)")
	cmd.Flags().StringVar(&opts.style, "style", "", "TOML theme file applied to every render")
	cmd.Flags().BoolVar(&opts.writable, "writable", false, "allow PUT and DELETE on /v1/chords")
	cmd.Flags().StringVar(&opts.origins, "cors", "", "comma-separated allowed origins (default any)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	if opts.writable && opts.mongoURI == "" && opts.storeDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--writable needs --mongo or --store-dir")
	}

	style, err := loadStyle(opts.style)
	if err != nil {
		return err
	}

	artifacts, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(artifacts, nil, logger)
	defer runner.Close()

	store, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Addr:           opts.addr,
		Runner:         runner,
		Store:          store,
		Writable:       opts.writable,
		Style:          style,
		AllowedOrigins: splitList(opts.origins),
		Logger:         logger,
	})
	if err != nil {
		store.Close()
		return err
	}
	defer srv.Close()

	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	return newCache(false)
}

func (c *CLI) serveStore(ctx context.Context, opts serveOpts) (library.Store, error) {
	switch {
	case opts.mongoURI != "":
		return library.NewMongoStore(ctx, library.MongoConfig{
			URI:        opts.mongoURI,
			Database:   opts.mongoDB,
			Collection: opts.mongoColl,
		})
	case opts.storeDir != "":
		return library.NewFileStore(opts.storeDir)
	}
	lib, err := c.loadLibrary(ctx, opts.library)
	if err != nil {
		return nil, err
	}
	return library.NewMemoryStore(lib), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
