// Package config loads install configurations from TOML, YAML or JSON files.
//
// A configuration maps destination directories to the sources installed into
// them, with an optional bundle output per destination:
//
//	[settings]
//	registry = "npm"
//	manifests = ["package.json", "component.json", "bower.json"]
//
//	[targets."libs/vendor"]
//	sources = ["backbone@>=1.0.0", "jashkenas/underscore#underscore.js"]
//	output = "www/js/libs.js"
//
// Targets keep the order in which they are declared in the file, because
// bundles are concatenated in dependency order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/installer"
)

// FileNames are the configuration files looked up by [Find], in order.
var FileNames = []string{"vendorjs.toml", "vendorjs.yaml", "vendorjs.yml", "vendorjs.json"}

// Settings are optional installer settings stored next to the targets.
type Settings struct {
	Registry       string   `toml:"registry" yaml:"registry" json:"registry"`
	RegistryURL    string   `toml:"registry_url" yaml:"registry_url" json:"registry_url"`
	Manifests      []string `toml:"manifests" yaml:"manifests" json:"manifests"`
	Concurrency    int      `toml:"concurrency" yaml:"concurrency" json:"concurrency"`
	MaxDepth       int      `toml:"max_depth" yaml:"max_depth" json:"max_depth"`
	ArchiveBaseURL string   `toml:"archive_base_url" yaml:"archive_base_url" json:"archive_base_url"`
	GitHubAPIURL   string   `toml:"github_api_url" yaml:"github_api_url" json:"github_api_url"`
	Cache          string   `toml:"cache" yaml:"cache" json:"cache"`
}

// File is a parsed configuration file.
type File struct {
	Path     string                  // Absolute path of the file
	Settings Settings                // Optional settings
	Targets  installer.Configuration // Targets in declaration order
}

// Dir returns the directory containing the configuration file. Relative
// destinations and outputs are resolved against it.
func (f *File) Dir() string { return filepath.Dir(f.Path) }

// Apply copies the file settings onto opts. Fields already set on opts win,
// so command-line flags and environment variables override the file.
func (f *File) Apply(opts installer.Options) installer.Options {
	s := f.Settings
	if opts.WorkDir == "" {
		opts.WorkDir = f.Dir()
	}
	if opts.Registry == "" {
		opts.Registry = s.Registry
	}
	if opts.RegistryURL == "" {
		opts.RegistryURL = s.RegistryURL
	}
	if len(opts.ManifestFiles) == 0 {
		opts.ManifestFiles = s.Manifests
	}
	if opts.Concurrency == 0 {
		opts.Concurrency = s.Concurrency
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = s.MaxDepth
	}
	if opts.ArchiveBaseURL == "" {
		opts.ArchiveBaseURL = s.ArchiveBaseURL
	}
	if opts.GitHubAPIURL == "" {
		opts.GitHubAPIURL = s.GitHubAPIURL
	}
	return opts
}

// Find returns the first of [FileNames] present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "no configuration file found in %s (looked for %s)", dir, strings.Join(FileNames, ", "))
}

// Load reads and parses the configuration file at path. The format is
// chosen by extension.
func Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve %s", path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	f, err := Parse(data, filepath.Ext(abs))
	if err != nil {
		return nil, err
	}
	f.Path = abs
	return f, nil
}

// Parse decodes configuration data. ext selects the format: ".toml",
// ".yaml"/".yml" or ".json".
func Parse(data []byte, ext string) (*File, error) {
	var (
		f   *File
		err error
	)
	switch strings.ToLower(ext) {
	case ".toml":
		f, err = parseTOML(data)
	case ".yaml", ".yml":
		f, err = parseYAML(data)
	case ".json":
		f, err = parseJSON(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported configuration format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s configuration", strings.TrimPrefix(ext, "."))
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) validate() error {
	if len(f.Targets) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "configuration declares no targets")
	}
	for _, t := range f.Targets {
		if strings.TrimSpace(t.Destination) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "target with empty destination")
		}
		for _, s := range t.Sources {
			if strings.TrimSpace(s) == "" {
				return errors.New(errors.ErrCodeInvalidConfig, "target %q has an empty source", t.Destination)
			}
		}
	}
	if f.Settings.Concurrency < 0 || f.Settings.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "concurrency and max_depth must not be negative")
	}
	for _, u := range []string{f.Settings.RegistryURL, f.Settings.ArchiveBaseURL, f.Settings.GitHubAPIURL} {
		if u == "" {
			continue
		}
		if err := errors.ValidateURL(u); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid url %q", u)
		}
	}
	return nil
}

// body is the per-target table shared by every format.
type body struct {
	Sources []string `toml:"sources" yaml:"sources" json:"sources"`
	Output  string   `toml:"output" yaml:"output" json:"output"`
}

func (b body) target(destination string) installer.Target {
	return installer.Target{Destination: destination, Sources: b.Sources, Output: b.Output}
}
