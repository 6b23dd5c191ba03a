package installer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vendorjs/pkg/archive"
	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/dependency"
	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/integrations/bower"
	"github.com/matzehuels/vendorjs/pkg/integrations/github"
	"github.com/matzehuels/vendorjs/pkg/integrations/npm"
)

// Registry names accepted by [Options.Registry].
const (
	RegistryNPM   = "npm"
	RegistryBower = "bower"
)

// TempPrefix prefixes the per-batch scratch directory inside the working
// directory.
const TempPrefix = ".vendorjs-"

// Options configures an [Installer].
type Options struct {
	WorkDir       string      // Base for relative paths (default: current directory)
	Logger        *log.Logger // Progress and warnings (default: discard)
	Concurrency   int         // Parallel installs per pass (0 = unlimited)
	MaxDepth      int         // Child dependency depth (0 = unlimited, 1 = direct children only)
	ManifestFiles []string    // Manifest search order (default: package.json, component.json, bower.json)
	Refresh       bool        // Bypass cached registry and tag data

	Registry       string      // "npm" (default) or "bower"
	RegistryURL    string      // Registry base URL (default: public registry)
	GitHubAPIURL   string      // GitHub API base URL (default: api.github.com)
	GitHubToken    string      // Optional token for tag requests
	ArchiveBaseURL string      // Base URL for user/repo archives (default: github.com)
	Cache          cache.Cache // Registry and tag cache (default: none)

	// Service overrides, mainly for tests. Nil fields use the clients
	// configured above.
	Lookup   dependency.PackageLookup
	Tags     dependency.TagLister
	Archives dependency.ArchiveFetcher
}

func (o Options) withDefaults() (Options, error) {
	if o.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return o, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve working directory")
		}
		o.WorkDir = wd
	}
	abs, err := filepath.Abs(o.WorkDir)
	if err != nil {
		return o, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve working directory")
	}
	o.WorkDir = abs

	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Concurrency < 0 {
		return o, errors.New(errors.ErrCodeInvalidConfig, "concurrency must not be negative")
	}
	if o.MaxDepth < 0 {
		return o, errors.New(errors.ErrCodeInvalidConfig, "max depth must not be negative")
	}
	if len(o.ManifestFiles) == 0 {
		o.ManifestFiles = dependency.DefaultManifestFiles
	}
	for _, name := range o.ManifestFiles {
		if err := errors.ValidateManifestFilename(name); err != nil {
			return o, errors.Wrap(errors.ErrCodeInvalidConfig, err, "manifest file %q", name)
		}
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}

	if o.Lookup == nil {
		switch o.Registry {
		case "", RegistryNPM:
			o.Lookup = npm.NewClient(o.Cache, o.RegistryURL)
		case RegistryBower:
			o.Lookup = bower.NewClient(o.Cache, o.RegistryURL)
		default:
			return o, errors.New(errors.ErrCodeInvalidConfig, "unknown registry %q (use %s or %s)", o.Registry, RegistryNPM, RegistryBower)
		}
	}
	if o.Tags == nil {
		o.Tags = github.NewClient(o.Cache, o.GitHubAPIURL, o.GitHubToken)
	}
	if o.Archives == nil {
		o.Archives = archive.NewFetcher(nil)
	}
	return o, nil
}
