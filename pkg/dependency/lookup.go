package dependency

import (
	"context"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/integrations"
)

// PackageLookup maps a registry package name to its repository URL.
// Implemented by the npm and bower clients.
type PackageLookup interface {
	Lookup(ctx context.Context, name string, refresh bool) (string, error)
}

// LookupPackage resolves a registry name to a GitHub repository and sets
// Name and URL. It is a no-op when URL is already known.
func (d *Dependency) LookupPackage(ctx context.Context, l PackageLookup) error {
	if d.URL != "" {
		return nil
	}
	if l == nil {
		return errors.New(errors.ErrCodePackageNotFound, "no package found for: %s (no lookup service)", d.ID)
	}
	if err := errors.ValidatePackageName(d.ID); err != nil {
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "no package found for: %s", d.ID)
	}
	d.env.Logger.Debug("looking up package", "id", d.ID)

	repoURL, err := l.Lookup(ctx, d.ID, d.env.Refresh)
	if err != nil {
		return errors.Wrap(errors.ErrCodePackageNotFound, err, "no package found for: %s", d.ID)
	}
	owner, repo, ok := integrations.ParseGitHubRepo(repoURL)
	if !ok {
		return errors.New(errors.ErrCodePackageNotFound, "no GitHub repository for: %s (%s)", d.ID, repoURL)
	}
	d.Name = owner + "/" + repo
	d.URL = d.archiveURL()
	return nil
}
