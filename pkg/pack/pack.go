// Package pack concatenates installed resources into bundles and minifies
// them.
//
// Dependencies that declare the same output path form one [Bundle]. The
// bundle's resources are read in order, joined with newlines, minified as
// JavaScript (or CSS when the output ends in ".css") and written to the
// output path.
package pack

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/observability"
)

const (
	mediaJS  = "application/javascript"
	mediaCSS = "text/css"
)

// Bundle is an output file and the resources concatenated into it.
type Bundle struct {
	Output    string
	Resources []string
}

// Group merges bundles that share an Output. Groups keep the order in which
// their output first appears; resources keep their relative order.
func Group(entries []Bundle) []Bundle {
	index := make(map[string]int)
	var out []Bundle
	for _, e := range entries {
		if e.Output == "" {
			continue
		}
		i, ok := index[e.Output]
		if !ok {
			i = len(out)
			index[e.Output] = i
			out = append(out, Bundle{Output: e.Output})
		}
		out[i].Resources = append(out[i].Resources, e.Resources...)
	}
	return out
}

// Packer writes minified bundles.
type Packer struct {
	workDir  string
	logger   *log.Logger
	minifier *minify.M
}

// New creates a Packer. Written outputs are reported relative to workDir.
// A nil logger discards output.
func New(workDir string, logger *log.Logger) *Packer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := minify.New()
	m.AddFunc(mediaJS, js.Minify)
	m.AddFunc(mediaCSS, css.Minify)
	return &Packer{workDir: workDir, logger: logger, minifier: m}
}

// Pack writes every bundle and returns the written paths relative to the
// working directory. The first failure stops packing.
func (p *Packer) Pack(ctx context.Context, bundles []Bundle) ([]string, error) {
	var written []string
	for _, b := range bundles {
		if err := ctx.Err(); err != nil {
			return written, errors.Wrap(errors.ErrCodePack, err, "packing %s cancelled", b.Output)
		}
		if err := p.write(ctx, b); err != nil {
			return written, err
		}
		written = append(written, p.rel(b.Output))
	}
	return written, nil
}

func (p *Packer) write(ctx context.Context, b Bundle) (err error) {
	hooks := observability.Install()
	hooks.OnPackStart(ctx, b.Output, len(b.Resources))
	start := time.Now()
	size := 0
	defer func() { hooks.OnPackComplete(ctx, b.Output, size, time.Since(start), err) }()

	contents := make([]string, 0, len(b.Resources))
	for _, r := range b.Resources {
		data, err := os.ReadFile(r)
		if err != nil {
			return errors.Wrap(errors.ErrCodePack, err, "reading %s", p.rel(r))
		}
		contents = append(contents, string(data))
	}

	out, err := p.minifier.String(mediaType(b.Output), strings.Join(contents, "\n"))
	if err != nil {
		return errors.Wrap(errors.ErrCodePack, err, "minifying %s", p.rel(b.Output))
	}
	if err := os.MkdirAll(filepath.Dir(b.Output), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodePack, err, "creating %s", p.rel(filepath.Dir(b.Output)))
	}
	if err := os.WriteFile(b.Output, []byte(out), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePack, err, "writing %s", p.rel(b.Output))
	}
	size = len(out)
	p.logger.Debug("wrote bundle", "output", p.rel(b.Output), "resources", len(b.Resources), "bytes", size)
	return nil
}

func mediaType(output string) string {
	if strings.EqualFold(filepath.Ext(output), ".css") {
		return mediaCSS
	}
	return mediaJS
}

func (p *Packer) rel(path string) string {
	if p.workDir == "" {
		return path
	}
	if r, err := filepath.Rel(p.workDir, path); err == nil {
		return r
	}
	return path
}
