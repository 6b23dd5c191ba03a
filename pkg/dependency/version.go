package dependency

import (
	"context"
	stderrors "errors"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/httputil"
	"github.com/matzehuels/vendorjs/pkg/integrations/github"
)

var exactVersion = regexp.MustCompile(`^\d+\.\d+\.\d+$|^master$`)

// TagLister lists the tags of a GitHub "owner/repo".
type TagLister interface {
	Tags(ctx context.Context, repo string, refresh bool) ([]github.Tag, error)
}

// ResolveVersion replaces a version range with the highest matching tag and
// points URL at that tag's zipball. Exact versions and "master" are left
// untouched without contacting the tags API, as are strings that are not
// version ranges at all: those name a branch or tag whose archive URL is
// already set.
func (d *Dependency) ResolveVersion(ctx context.Context, t TagLister) error {
	if exactVersion.MatchString(d.Version) || !isRange(d.Version) {
		return nil
	}
	if t == nil {
		return errors.New(errors.ErrCodeTagFetch, "fetching tags for: %s failed: no tag service", d.Name)
	}
	d.env.Logger.Debug("validating version", "name", d.Name, "range", d.Version)

	tags, err := t.Tags(ctx, d.Name, d.env.Refresh)
	if err != nil {
		var se *httputil.StatusError
		if stderrors.As(err, &se) {
			return errors.Wrap(errors.ErrCodeTagFetch, err, "fetching tags for: %s failed with status: %s", d.Name, se.Status())
		}
		return errors.Wrap(errors.ErrCodeTagFetch, err, "fetching tags for: %s failed", d.Name)
	}

	tag, err := SelectTag(tags, d.Version)
	if err != nil {
		return errors.Wrap(errors.ErrCodeVersionNotFound, err, "no version of %s satisfies %s", d.Name, d.Version)
	}
	d.Version = tag.Name
	d.URL = tag.ZipballURL
	return nil
}

// errNoMatch is returned by SelectTag when no tag satisfies the range.
var errNoMatch = stderrors.New("no matching tag")

// SelectTag returns the highest tag satisfying rng. "*" and "latest" select
// the highest tag overall. Tags whose names are not semantic versions are
// ignored.
func SelectTag(tags []github.Tag, rng string) (github.Tag, error) {
	sorted := sortTags(tags)
	if len(sorted) == 0 {
		return github.Tag{}, errNoMatch
	}
	if rng == "*" || rng == "latest" {
		return sorted[0].tag, nil
	}
	c, err := semver.NewConstraint(rng)
	if err != nil {
		return github.Tag{}, err
	}
	for _, st := range sorted {
		if c.Check(st.version) {
			return st.tag, nil
		}
	}
	return github.Tag{}, errNoMatch
}

func isRange(v string) bool {
	if v == "*" || v == "latest" {
		return true
	}
	_, err := semver.NewConstraint(v)
	return err == nil
}

type semverTag struct {
	tag     github.Tag
	version *semver.Version
}

// sortTags parses and sorts tags in descending version order.
func sortTags(tags []github.Tag) []semverTag {
	out := make([]semverTag, 0, len(tags))
	for _, t := range tags {
		v, err := semver.NewVersion(t.Name)
		if err != nil {
			continue
		}
		out = append(out, semverTag{tag: t, version: v})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].version.GreaterThan(out[j].version)
	})
	return out
}
