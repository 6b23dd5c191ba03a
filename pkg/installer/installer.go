// Package installer drives batch installation of front-end dependencies.
//
// An [Installer] takes a [Configuration] (destination directories with their
// source descriptors and optional bundle output), installs every dependency
// concurrently, follows the child dependencies declared in manifests, and
// finally packs bundles.
//
// Individual dependency failures are logged as warnings and recorded in
// [Result.Failures]; they never abort the batch. Packing failures do.
//
// # Usage
//
//	inst, err := installer.New(installer.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	res, err := inst.Install(ctx, installer.Configuration{
//	    {Destination: "libs/vendor", Sources: []string{"backbone@1.0.0"}, Output: "www/libs.js"},
//	})
//
// # Child Dependencies
//
// Children found in manifests are installed in further passes until no new
// children appear, bounded by [Options.MaxDepth]. They share the parent's
// destination and output and are ordered before their parents, so bundles
// contain dependencies ahead of the code that uses them.
package installer

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/vendorjs/pkg/dependency"
	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/fsutil"
	"github.com/matzehuels/vendorjs/pkg/observability"
	"github.com/matzehuels/vendorjs/pkg/pack"
)

// Target is one destination directory and the sources installed into it.
type Target struct {
	Destination string   `json:"destination" yaml:"destination" toml:"destination"`
	Sources     []string `json:"sources" yaml:"sources" toml:"sources"`
	Output      string   `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
}

// Configuration lists install targets in declaration order.
type Configuration []Target

// Failure records a dependency that could not be installed.
type Failure struct {
	Source string
	Err    error
}

// Result summarizes a batch.
type Result struct {
	Files     []string                 // Placed files and bundles, relative to WorkDir
	Bundles   []string                 // Bundles written, relative to WorkDir
	Installed []*dependency.Dependency // Successful dependencies, children first
	Failures  []Failure                // Dependencies dropped from the batch
}

// Installer installs batches of dependencies. It holds no per-batch state
// and may run several batches concurrently.
type Installer struct {
	opts   Options
	logger *log.Logger
	svc    dependency.Services
}

// New creates an Installer, filling unset options with defaults.
func New(opts Options) (*Installer, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Installer{
		opts:   opts,
		logger: opts.Logger,
		svc: dependency.Services{
			Lookup:   opts.Lookup,
			Tags:     opts.Tags,
			Archives: opts.Archives,
		},
	}, nil
}

// WorkDir returns the absolute working directory.
func (i *Installer) WorkDir() string { return i.opts.WorkDir }

// Install installs every source of cfg and packs the bundles.
// The returned error is non-nil only when packing fails or ctx is cancelled;
// per-dependency failures are reported in the result.
func (i *Installer) Install(ctx context.Context, cfg Configuration) (*Result, error) {
	temp := filepath.Join(i.opts.WorkDir, TempPrefix+uuid.NewString())
	if err := os.MkdirAll(temp, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create temp directory")
	}
	i.logger.Debug("created temp directory", "path", i.rel(temp))
	defer func() {
		if err := os.RemoveAll(temp); err != nil {
			i.logger.Warn("failed to remove temp directory", "path", i.rel(temp), "err", err)
		}
	}()

	env := dependency.Env{
		WorkDir:        i.opts.WorkDir,
		TempDir:        temp,
		ArchiveBaseURL: i.opts.ArchiveBaseURL,
		Refresh:        i.opts.Refresh,
		Logger:         i.logger,
	}

	seen := make(map[string]bool)
	var deps []*dependency.Dependency
	for _, t := range cfg {
		for _, src := range t.Sources {
			d := dependency.New(src, t.Destination, t.Output, env)
			seen[d.Key()] = true
			deps = append(deps, d)
		}
	}

	res := &Result{}
	installed := i.pass(ctx, deps, res)
	for frontier := installed; len(frontier) > 0; {
		children := i.children(frontier, seen)
		if len(children) == 0 {
			break
		}
		frontier = i.pass(ctx, children, res)
		installed = slices.Concat(frontier, installed)
	}
	res.Installed = installed

	if err := ctx.Err(); err != nil {
		return res, err
	}

	bundles := make([]pack.Bundle, 0, len(installed))
	for _, d := range installed {
		if d.Output != "" {
			bundles = append(bundles, pack.Bundle{Output: d.Output, Resources: d.Resources})
		}
	}
	written, err := pack.New(i.opts.WorkDir, i.logger).Pack(ctx, pack.Group(bundles))
	for _, w := range written {
		i.logger.Info("compressed", "output", w)
	}
	res.Bundles = written
	res.Files = append(res.Files, written...)
	return res, err
}

// children creates the not yet seen child dependencies of deps, honouring
// MaxDepth.
func (i *Installer) children(deps []*dependency.Dependency, seen map[string]bool) []*dependency.Dependency {
	var out []*dependency.Dependency
	for _, d := range deps {
		for _, src := range d.Dependencies {
			c := d.Child(src)
			if i.opts.MaxDepth > 0 && c.Depth > i.opts.MaxDepth {
				i.logger.Debug("skipped child beyond max depth", "source", src, "parent", d.ID)
				continue
			}
			if seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			out = append(out, c)
		}
	}
	return out
}

// pass installs deps concurrently and returns the successful ones in input
// order. Placed files are appended to res in the same order.
func (i *Installer) pass(ctx context.Context, deps []*dependency.Dependency, res *Result) []*dependency.Dependency {
	errs := make([]error, len(deps))
	var mu sync.Mutex

	var g errgroup.Group
	if i.opts.Concurrency > 0 {
		g.SetLimit(i.opts.Concurrency)
	}
	hooks := observability.Install()
	for n, d := range deps {
		g.Go(func() error {
			hooks.OnInstallStart(ctx, d.Source)
			start := time.Now()
			err := d.Install(ctx, i.svc, i.opts.ManifestFiles)
			hooks.OnInstallComplete(ctx, d.Source, len(d.Files), time.Since(start), err)

			mu.Lock()
			errs[n] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	ok := make([]*dependency.Dependency, 0, len(deps))
	for n, d := range deps {
		if err := errs[n]; err != nil {
			i.logger.Warn(errors.UserMessage(err), "source", d.Source)
			res.Failures = append(res.Failures, Failure{Source: d.Source, Err: err})
			continue
		}
		i.logger.Info("installed", "id", d.ID, "to", i.rel(d.Destination))
		res.Files = append(res.Files, d.Files...)
		ok = append(ok, d)
	}
	return ok
}

// Resolve locates, looks up and version-resolves a single descriptor
// without downloading anything.
func (i *Installer) Resolve(ctx context.Context, source string) (*dependency.Dependency, error) {
	d := dependency.New(source, i.opts.WorkDir, "", dependency.Env{
		WorkDir:        i.opts.WorkDir,
		ArchiveBaseURL: i.opts.ArchiveBaseURL,
		Refresh:        i.opts.Refresh,
		Logger:         i.logger,
	})
	if d.Local {
		return d, nil
	}
	if err := d.LookupPackage(ctx, i.svc.Lookup); err != nil {
		return d, err
	}
	if err := d.ResolveVersion(ctx, i.svc.Tags); err != nil {
		return d, err
	}
	return d, nil
}

// Clean removes temp directories left behind by interrupted batches and
// returns the removed paths relative to the working directory.
func (i *Installer) Clean() ([]string, error) {
	removed, err := fsutil.RemoveGlob(i.opts.WorkDir, TempPrefix+"*")
	for n, r := range removed {
		removed[n] = i.rel(r)
	}
	if err != nil {
		return removed, errors.Wrap(errors.ErrCodeInternal, err, "clean temp directories")
	}
	return removed, nil
}

func (i *Installer) rel(path string) string {
	if r, err := filepath.Rel(i.opts.WorkDir, path); err == nil {
		return r
	}
	return path
}
