package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/installer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestCLI() (*CLI, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(&buf, LogDebug), &buf
}

func TestRootCommand(t *testing.T) {
	c, _ := newTestCLI()
	root := c.RootCommand()

	if root.Use != "vendorjs" {
		t.Errorf("Use = %q, want vendorjs", root.Use)
	}
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)
	want := []string{"cache", "clean", "completion", "install", "resolve"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallCommandFlags(t *testing.T) {
	c, _ := newTestCLI()
	cmd := c.installCommand()
	for _, name := range []string{"config", "registry", "refresh", "no-cache", "concurrency", "max-depth", "watch"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("install is missing --%s", name)
		}
	}
	if f := cmd.Flags().ShorthandLookup("c"); f == nil || f.Name != "config" {
		t.Error("-c should be the shorthand for --config")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	if _, err := loadConfig("", dir); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig() without file error = %v, want INVALID_CONFIG", err)
	}

	writeFile(t, filepath.Join(dir, "vendorjs.yaml"), "targets:\n  libs:\n    sources: [jquery]\n")
	f, err := loadConfig("", dir)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if filepath.Base(f.Path) != "vendorjs.yaml" || len(f.Targets) != 1 {
		t.Errorf("loadConfig() = %s with %d targets", f.Path, len(f.Targets))
	}

	other := filepath.Join(dir, "conf", "deps.json")
	writeFile(t, other, `{"targets": {"a": {"sources": ["x"]}, "b": {"sources": ["y"]}}}`)
	f, err = loadConfig(other, dir)
	if err != nil {
		t.Fatalf("loadConfig(explicit) error: %v", err)
	}
	if len(f.Targets) != 2 || f.Dir() != filepath.Dir(other) {
		t.Errorf("loadConfig(explicit) = %+v", f)
	}
}

func TestNewInstallerPrecedence(t *testing.T) {
	t.Setenv(envCacheURL, "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "vendorjs.toml")
	writeFile(t, path, "[settings]\nregistry = \"carrier-pigeon\"\n\n[targets.libs]\nsources = [\"x\"]\n")

	c, _ := newTestCLI()
	f, err := loadConfig(path, dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := c.newInstaller(t.Context(), sharedFlags{}, f); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("registry from file should be used, got error %v", err)
	}

	inst, closeCache, err := c.newInstaller(t.Context(), sharedFlags{registry: installer.RegistryBower}, f)
	if err != nil {
		t.Fatalf("flag should override file registry: %v", err)
	}
	defer closeCache()
	if inst.WorkDir() != dir {
		t.Errorf("WorkDir() = %q, want config directory %q", inst.WorkDir(), dir)
	}
}

func TestRunInstallLocal(t *testing.T) {
	t.Setenv(envCacheURL, "")
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "app.js"), "var answer = 42;\n")
	writeFile(t, filepath.Join(dir, "src", "style.css"), "body {\n  color: #ff0000;\n}\n")
	writeFile(t, filepath.Join(dir, "vendorjs.toml"), `
[targets."www/js"]
sources = ["./src/app.js"]
output = "dist/app.min.js"

[targets."www/css"]
sources = ["./src#style.css"]
`)

	c, logs := newTestCLI()
	if err := c.runInstall(t.Context(), sharedFlags{noCache: true}, dir); err != nil {
		t.Fatalf("runInstall() error: %v", err)
	}

	for _, rel := range []string{"www/js/app.js", "www/css/style.css", "dist/app.min.js"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("%s not written: %v", rel, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "app.js")); err != nil {
		t.Error("local sources should be copied, not moved")
	}
	bundle, _ := os.ReadFile(filepath.Join(dir, "dist", "app.min.js"))
	if !strings.Contains(string(bundle), "answer") {
		t.Errorf("bundle = %q, want the app source", bundle)
	}
	if !strings.Contains(logs.String(), "Install finished") {
		t.Errorf("progress not logged:\n%s", logs.String())
	}
}

func TestRunClean(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{installer.TempPrefix + "a", installer.TempPrefix + "b"} {
		writeFile(t, filepath.Join(dir, name, "x.zip"), "zip")
	}
	writeFile(t, filepath.Join(dir, "keep", "x.js"), "x")

	c, _ := newTestCLI()
	if err := c.runClean(dir); err != nil {
		t.Fatalf("runClean() error: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, installer.TempPrefix+"*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp directories: %v", matches)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep", "x.js")); err != nil {
		t.Error("clean must not touch other directories")
	}
	if err := c.runClean(dir); err != nil {
		t.Errorf("second runClean() error: %v", err)
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{2, "2 files"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "file", "files"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
