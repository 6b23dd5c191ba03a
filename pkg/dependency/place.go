package dependency

import (
	"path/filepath"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/fsutil"
)

// Place copies (local) or moves (remote) each resource into Destination, in
// order, replacing existing targets. Resources is updated to the placed
// paths and Files to the same paths relative to the working directory.
// Resources sharing a base name land on one file; the last one wins and the
// file is listed once.
// A dependency with Keep set is left where it is.
func (d *Dependency) Place() error {
	if d.Keep {
		return nil
	}
	if d.Resources == nil {
		return errors.New(errors.ErrCodePlacement, "no resources resolved for: %s", d.ID)
	}

	place := fsutil.Move
	if d.Local {
		place = fsutil.Copy
	}

	placed := make([]string, 0, len(d.Resources))
	files := make([]string, 0, len(d.Resources))
	index := make(map[string]int, len(d.Resources))
	for _, src := range d.Resources {
		dst := filepath.Join(d.Destination, filepath.Base(src))
		if fsutil.Within(dst, src) {
			return errors.New(errors.ErrCodePlacement, "cannot place %s inside itself", d.rel(src))
		}
		if err := place(src, dst); err != nil {
			return errors.Wrap(errors.ErrCodePlacement, err, "placing %s into %s", filepath.Base(src), d.rel(d.Destination))
		}
		d.env.Logger.Debug("moved resource", "resource", filepath.Base(src), "destination", d.rel(d.Destination))
		if n, ok := index[dst]; ok {
			d.env.Logger.Warn("resource replaced by a file with the same name", "id", d.ID, "file", files[n], "source", d.rel(src))
			continue
		}
		index[dst] = len(placed)
		placed = append(placed, dst)
		files = append(files, d.rel(dst))
	}
	d.Resources = placed
	d.Files = append(d.Files, files...)
	return nil
}
