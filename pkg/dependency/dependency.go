package dependency

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/fsutil"
	"github.com/matzehuels/vendorjs/pkg/integrations/github"
)

// DefaultVersion is used when a remote descriptor names no version.
const DefaultVersion = "master"

// DefaultArchiveBaseURL hosts branch and tag archives for user/repo descriptors.
const DefaultArchiveBaseURL = "https://github.com"

// Env is the per-batch context shared by every dependency of an install.
type Env struct {
	WorkDir        string      // Base for relative paths and reported files
	TempDir        string      // Scratch directory for archives
	ArchiveBaseURL string      // Base URL for user/repo archives (default: github.com)
	Refresh        bool        // Bypass cached registry and tag data
	Logger         *log.Logger // Debug output (optional)
}

func (e Env) withDefaults() Env {
	if e.WorkDir == "" {
		e.WorkDir, _ = os.Getwd()
	}
	if e.ArchiveBaseURL == "" {
		e.ArchiveBaseURL = DefaultArchiveBaseURL
	}
	e.ArchiveBaseURL = strings.TrimSuffix(e.ArchiveBaseURL, "/")
	if e.Logger == nil {
		e.Logger = log.New(io.Discard)
	}
	return e
}

// Dependency is one requested or discovered dependency.
type Dependency struct {
	ID      string // Short identifier, used for archive and index file names
	Name    string // Registry name or GitHub "owner/repo"
	Source  string // Original descriptor
	Local   bool   // Source is a path on disk
	Keep    bool   // Local source already lives inside Destination
	Version string // Exact version, range, or "master"
	URL     string // Archive URL, empty until resolved

	Location     string   // Package root on disk, empty until fetched
	Resources    []string // Absolute paths to install, nil until resolved
	Dependencies []string // Child descriptors discovered in the manifest

	Destination string   // Absolute target directory
	Output      string   // Absolute bundle path, empty when not bundled
	Files       []string // Placed files relative to WorkDir

	Depth  int    // 0 for configured sources, parent depth + 1 for children
	Parent string // Source of the dependency that declared this one

	env Env
}

// New parses source and returns a dependency that installs into destination
// and, when output is non-empty, is bundled into output.
// Relative destination and output paths resolve against env.WorkDir.
func New(source, destination, output string, env Env) *Dependency {
	env = env.withDefaults()
	d := &Dependency{
		ID:          source,
		Name:        source,
		Source:      source,
		Version:     DefaultVersion,
		Destination: env.abs(destination),
		env:         env,
	}
	if output != "" {
		d.Output = env.abs(output)
	}

	ref, list, hasList := strings.Cut(source, "#")
	var explicit []string
	if hasList {
		explicit = splitResources(list)
	}

	if path := env.abs(ref); strings.HasPrefix(ref, ".") || fsutil.Exists(path) {
		d.Local = true
		d.Location = path
		d.Keep = fsutil.Within(path, d.Destination)
		if hasList {
			d.Resources = existing(path, explicit)
		} else {
			d.Resources = []string{path}
		}
		return d
	}

	name, version := splitVersion(ref)
	if version != "" {
		d.Version = version
	}
	d.ID, d.Name = name, name
	if hasList {
		d.Resources = explicit
	}
	if github.IsRepoRef(name) {
		d.URL = d.archiveURL()
		d.ID = name[strings.Index(name, "/")+1:]
	}
	return d
}

// Child creates a dependency for a descriptor discovered in d's manifest.
// It shares d's destination, output and environment.
func (d *Dependency) Child(source string) *Dependency {
	c := New(source, d.Destination, d.Output, d.env)
	c.Depth = d.Depth + 1
	c.Parent = d.Source
	return c
}

// Key identifies the dependency within a batch: the same name installed
// into the same destination is considered a duplicate.
func (d *Dependency) Key() string {
	return d.Destination + "\x00" + d.Name
}

// String returns "name@version" for remote and the location for local
// dependencies.
func (d *Dependency) String() string {
	if d.Local {
		return d.Location
	}
	return d.Name + "@" + d.Version
}

// Services bundles the remote collaborators of the install pipeline.
type Services struct {
	Lookup   PackageLookup
	Tags     TagLister
	Archives ArchiveFetcher
}

// Install runs the full pipeline for d. Local dependencies are only placed;
// remote ones are looked up, version-resolved, fetched, inspected and placed.
// The first failing step aborts the pipeline and its error is returned.
func (d *Dependency) Install(ctx context.Context, svc Services, manifestFiles []string) error {
	if d.Local {
		return d.Place()
	}
	steps := []struct {
		name string
		run  func() error
	}{
		{"lookup", func() error { return d.LookupPackage(ctx, svc.Lookup) }},
		{"version", func() error { return d.ResolveVersion(ctx, svc.Tags) }},
		{"fetch", func() error { return d.Fetch(ctx, svc.Archives) }},
		{"resolve", func() error { return d.ResolveResources(manifestFiles) }},
		{"place", d.Place},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "install %s cancelled", d.ID)
		}
		if err := step.run(); err != nil {
			return err
		}
		d.env.Logger.Debug("completed step", "id", d.ID, "step", step.name)
	}
	return nil
}

func (d *Dependency) archiveURL() string {
	return fmt.Sprintf("%s/%s/archive/%s.zip", d.env.ArchiveBaseURL, d.Name, d.Version)
}

func (d *Dependency) rel(path string) string {
	if r, err := filepath.Rel(d.env.WorkDir, path); err == nil {
		return r
	}
	return path
}

func (e Env) abs(path string) string {
	if path == "" {
		return e.WorkDir
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(e.WorkDir, path)
}

// splitVersion separates "name@version". A leading "@" belongs to a scoped
// npm name and is never treated as the version separator.
func splitVersion(ref string) (name, version string) {
	i := strings.LastIndex(ref, "@")
	if i <= 0 {
		return ref, ""
	}
	return ref[:i], ref[i+1:]
}

func splitResources(list string) []string {
	var out []string
	for _, r := range strings.Split(list, "|") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// existing resolves names against dir and keeps those present on disk.
func existing(dir string, names []string) []string {
	out := []string{}
	for _, n := range names {
		p := filepath.Join(dir, n)
		if fsutil.Exists(p) {
			out = append(out, p)
		}
	}
	return out
}
