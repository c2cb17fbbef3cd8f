package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordview/pkg/buildinfo"
	"github.com/matzehuels/chordview/pkg/cache"
	"github.com/matzehuels/chordview/pkg/chord"
	"github.com/matzehuels/chordview/pkg/chord/library"
	"github.com/matzehuels/chordview/pkg/observability"
	"github.com/matzehuels/chordview/pkg/pipeline"
	"github.com/matzehuels/chordview/pkg/render/fretboard/styles"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "chordview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// userStoreDir overrides the directory of user-added chords (tests).
	userStoreDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "chordview draws guitar chord diagrams",
		Long:         `chordview lays out six-string chord fingerings as fretboard diagrams and renders them to SVG, PNG, PDF or JSON, from the command line or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			if c.Logger.GetLevel() <= log.DebugLevel {
				observability.Register(observability.NewLogHooks(c.Logger))
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.libraryCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/chordview/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Inputs
// =============================================================================

// loadStyle reads a TOML theme, or returns nil for the default style.
func loadStyle(path string) (*styles.Config, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := styles.LoadTheme(path)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadLibrary returns the chord library from path (or the embedded one)
// merged with the chords the user added with "library add". User chords
// replace library chords of the same name.
func (c *CLI) loadLibrary(ctx context.Context, path string) (*library.Library, error) {
	base := library.Default()
	if path != "" {
		lib, err := library.Load(path)
		if err != nil {
			return nil, err
		}
		base = lib
	}

	store, err := c.userStore()
	if err != nil {
		c.Logger.Debug("user chords unavailable", "error", err)
		return base, nil
	}
	defer store.Close()
	user, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(user) == 0 {
		return base, nil
	}

	overridden := make(map[string]bool, len(user))
	for _, u := range user {
		if existing, err := base.Get(u.Name); err == nil {
			overridden[existing.Name] = true
		}
	}
	merged := make([]*chord.Chord, 0, base.Len()+len(user))
	for _, ch := range base.Chords() {
		if !overridden[ch.Name] {
			merged = append(merged, ch)
		}
	}
	merged = append(merged, user...)
	return library.New(merged...)
}

// userStore opens the store of user-added chords.
func (c *CLI) userStore() (*library.FileStore, error) {
	return library.NewFileStore(c.userStoreDir)
}

// stdout is where command output goes. Tests replace it.
var stdout io.Writer = os.Stdout
