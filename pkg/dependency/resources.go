package dependency

import (
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/fsutil"
)

// DefaultManifestFiles is the manifest search order used when none is configured.
var DefaultManifestFiles = []string{"package.json", "component.json", "bower.json"}

// Manifest is the subset of package.json / component.json / bower.json the
// installer reads.
type Manifest struct {
	Main         json.RawMessage `json:"main"`
	Scripts      []string        `json:"scripts"`
	Dependencies map[string]any  `json:"dependencies"`
}

// MainFiles returns the entry files declared by the manifest. "main" may be a
// string or an array of strings; component.json "scripts" is used when
// "main" is absent.
func (m *Manifest) MainFiles() []string {
	var single string
	if json.Unmarshal(m.Main, &single) == nil && single != "" {
		return []string{single}
	}
	var many []string
	if json.Unmarshal(m.Main, &many) == nil && len(many) > 0 {
		return many
	}
	return m.Scripts
}

// Children returns "name@range" descriptors for the manifest dependencies,
// sorted by name. Entries with non-string ranges are skipped.
func (m *Manifest) Children() []string {
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		if rng, ok := m.Dependencies[name].(string); ok {
			out = append(out, name+"@"+rng)
		}
	}
	return out
}

// ReadManifest reads and parses the manifest at path. found is false when
// the file does not exist.
func ReadManifest(path string) (m *Manifest, found bool, err error) {
	data, err := os.ReadFile(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, errors.Wrap(errors.ErrCodeManifestRead, err, "reading: %s", path)
	}
	m = &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, true, errors.Wrap(errors.ErrCodeManifestParse, err, "parsing: %s", path)
	}
	return m, true, nil
}

// ResolveResources fills Resources with absolute paths under Location.
// Explicit resources from the descriptor are resolved as given; otherwise the
// manifests in manifestFiles are tried in order until one declares entry
// files, and its dependencies become child descriptors. Entry files named
// "index" or "index.js" are renamed to "{ID}.js" first.
func (d *Dependency) ResolveResources(manifestFiles []string) error {
	if d.Location == "" {
		return errors.New(errors.ErrCodeResourcesUnresolved, "unable to resolve resources for: %s (not fetched)", d.ID)
	}
	if len(manifestFiles) == 0 {
		manifestFiles = DefaultManifestFiles
	}

	if d.Resources != nil {
		return d.addResources(d.Resources)
	}

	for _, name := range manifestFiles {
		m, found, err := ReadManifest(filepath.Join(d.Location, name))
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		mains := m.MainFiles()
		if len(mains) == 0 {
			continue
		}
		d.env.Logger.Debug("read manifest", "id", d.ID, "manifest", name, "main", mains)
		if err := d.addResources(mains); err != nil {
			return err
		}
		d.Dependencies = m.Children()
		return nil
	}
	return errors.New(errors.ErrCodeResourcesUnresolved, "unable to resolve resources for: %s", d.ID)
}

func (d *Dependency) addResources(names []string) error {
	resources := []string{}
	for _, name := range names {
		if err := errors.ValidatePath(filepath.ToSlash(name)); err != nil {
			d.env.Logger.Debug("skipped unsafe resource", "id", d.ID, "resource", name, "err", err)
			continue
		}
		file, err := d.renameIndex(name)
		if err != nil {
			return err
		}
		path := filepath.Join(d.Location, file)
		if !fsutil.Exists(path) {
			d.env.Logger.Debug("skipped missing resource", "id", d.ID, "resource", file)
			continue
		}
		resources = append(resources, path)
	}
	d.Resources = resources
	return nil
}

// renameIndex renames an "index" entry file to "{ID}.js" and returns the
// name to use for the resource.
func (d *Dependency) renameIndex(name string) (string, error) {
	clean := filepath.Clean(name)
	if clean != "index" && clean != "index.js" {
		return name, nil
	}
	from := filepath.Join(d.Location, "index.js")
	if clean == "index" && !fsutil.Exists(from) {
		from = filepath.Join(d.Location, "index")
	}
	if !fsutil.Exists(from) {
		return name, nil
	}
	renamed := fileNameReplacer.Replace(d.ID) + ".js"
	if err := os.Rename(from, filepath.Join(d.Location, renamed)); err != nil {
		return "", errors.Wrap(errors.ErrCodeResourcesUnresolved, err, "renaming index for: %s", d.ID)
	}
	return renamed, nil
}
