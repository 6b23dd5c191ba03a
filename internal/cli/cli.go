package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vendorjs/pkg/buildinfo"
	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/config"
	"github.com/matzehuels/vendorjs/pkg/installer"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "vendorjs"

	// envCacheURL selects the cache backend (file, none, redis://, mongodb://).
	envCacheURL = "VENDORJS_CACHE_URL"

	// envGitHubToken authenticates GitHub tag requests.
	envGitHubToken = "GITHUB_TOKEN"
)

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
		Short:        "Vendorjs installs front-end dependencies into your project",
		Long:         `Vendorjs downloads front-end libraries from GitHub, copies the files they declare as main into vendor directories, and optionally concatenates and minifies them into bundles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.installCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Installer Factory
// =============================================================================

// sharedFlags are the installer flags common to install and resolve.
type sharedFlags struct {
	config      string
	registry    string
	concurrency int
	maxDepth    int
	refresh     bool
	noCache     bool
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "configuration file (default: vendorjs.{toml,yaml,yml,json} in the current directory)")
	cmd.Flags().StringVar(&f.registry, "registry", "", "package registry: npm or bower")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached registry and tag data")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the response cache")
}

// newInstaller builds an installer from flags, the environment and the
// optional configuration file, in that order of precedence. The returned
// close function releases the cache.
func (c *CLI) newInstaller(ctx context.Context, flags sharedFlags, file *config.File) (*installer.Installer, func(), error) {
	opts := installer.Options{
		Logger:      c.Logger,
		Registry:    flags.registry,
		Concurrency: flags.concurrency,
		MaxDepth:    flags.maxDepth,
		Refresh:     flags.refresh,
		GitHubToken: os.Getenv(envGitHubToken),
	}
	cacheURL := os.Getenv(envCacheURL)
	if file != nil {
		opts = file.Apply(opts)
		if cacheURL == "" {
			cacheURL = file.Settings.Cache
		}
	}

	cc, err := newCache(ctx, flags.noCache, cacheURL)
	if err != nil {
		return nil, nil, err
	}
	opts.Cache = cc

	inst, err := installer.New(opts)
	if err != nil {
		cc.Close()
		return nil, nil, err
	}
	c.Logger.Debug("installer ready", "workdir", inst.WorkDir(), "cache", cacheURL)
	return inst, func() { cc.Close() }, nil
}

func newCache(ctx context.Context, noCache bool, rawURL string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, rawURL, dir)
}

// loadConfig loads path, or the configuration file found in dir when path
// is empty.
func loadConfig(path, dir string) (*config.File, error) {
	if path == "" {
		found, err := config.Find(dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vendorjs/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
