package dependency

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/vendorjs/pkg/errors"
)

// ArchiveFetcher downloads and unpacks package archives.
// Implemented by [archive.Fetcher].
//
// [archive.Fetcher]: github.com/matzehuels/vendorjs/pkg/archive.Fetcher
type ArchiveFetcher interface {
	Download(ctx context.Context, url, path string) error
	Extract(path, dir string) (string, error)
}

var fileNameReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "@", "")

// ArchiveName is the file name used for d's archive inside the temp directory.
func (d *Dependency) ArchiveName() string {
	return fileNameReplacer.Replace(d.ID + "-" + d.Version + ".zip")
}

// Fetch downloads the archive at URL into a scratch directory of its own
// inside the temp directory and extracts it there. Dependencies sharing an
// id and version never share files. Location is set to the archive root
// unless already known.
func (d *Dependency) Fetch(ctx context.Context, f ArchiveFetcher) error {
	if d.URL == "" {
		return errors.New(errors.ErrCodeFetch, "fetching %s failed: no archive url", d.ID)
	}
	if f == nil {
		return errors.New(errors.ErrCodeFetch, "fetching %s failed: no archive fetcher", d.URL)
	}
	name := d.ArchiveName()
	scratch := filepath.Join(d.env.TempDir, uuid.NewString())
	path := filepath.Join(scratch, name)
	d.env.Logger.Debug("downloading archive", "id", d.ID, "url", d.URL)

	if err := f.Download(ctx, d.URL, path); err != nil {
		return errors.Wrap(errors.ErrCodeFetch, err, "fetching %s failed", d.URL)
	}

	root, err := f.Extract(path, filepath.Join(scratch, strings.TrimSuffix(name, ".zip")))
	if err != nil {
		return errors.Wrap(errors.ErrCodeExtract, err, "unzipping archive: %s", name)
	}
	if d.Location == "" {
		d.Location = root
	}
	return nil
}
