// Package archive downloads and unpacks zip archives of package sources.
//
// GitHub serves both branch archives (github.com/{repo}/archive/{ref}.zip)
// and tag zipballs (api.github.com/repos/{repo}/zipball/{tag}) as zip files
// with a single top-level directory. [Extract] returns that directory so
// callers can treat it as the package root.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/httputil"
)

// ErrUnsafePath is returned for archive entries that would be written
// outside the extraction directory.
var ErrUnsafePath = errors.New("archive entry escapes target directory")

// ErrEmpty is returned for archives without any entries.
var ErrEmpty = errors.New("archive is empty")

// Fetcher downloads archives over HTTP.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher. A nil client selects
// [httputil.NewDownloadClient].
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = httputil.NewDownloadClient()
	}
	return &Fetcher{client: client}
}

// Download streams rawURL into the file at path, retrying transient failures.
func (f *Fetcher) Download(ctx context.Context, rawURL, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return httputil.DownloadFile(ctx, f.client, rawURL, path)
}

// Extract unpacks the zip file at path into dir and returns the absolute
// path of the archive root: the first directory entry, or the first path
// segment of the first entry when the archive has no directory entries.
func (f *Fetcher) Extract(path, dir string) (string, error) {
	return Extract(path, dir)
}

// Extract unpacks the zip file at path into dir. See [Fetcher.Extract].
func Extract(path, dir string) (string, error) {
	r, err := zip.OpenReader(path)
	if errors.Is(err, zip.ErrInsecurePath) {
		r.Close()
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, path)
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	if len(r.File) == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	root := ""
	for _, zf := range r.File {
		target, err := safeJoin(dir, zf.Name)
		if err != nil {
			return "", err
		}
		if root == "" && zf.FileInfo().IsDir() {
			root = target
		}
		if err := extractEntry(zf, target); err != nil {
			return "", err
		}
	}
	if root == "" {
		first := strings.SplitN(strings.TrimLeft(r.File[0].Name, "/"), "/", 2)[0]
		root = filepath.Join(dir, filepath.FromSlash(first))
	}
	return filepath.Abs(root)
}

func safeJoin(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func extractEntry(zf *zip.File, target string) error {
	if zf.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := zf.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", zf.Name, err)
	}
	defer src.Close()

	mode := zf.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write entry %s: %w", zf.Name, err)
	}
	return dst.Close()
}
