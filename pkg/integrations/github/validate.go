package github

import (
	"regexp"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/errors"
)

// repoRef matches the "owner/repo" shorthand accepted in descriptors.
var repoRef = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// IsRepoRef reports whether s has the "owner/repo" shape that is fetched
// straight from GitHub without a registry lookup.
func IsRepoRef(s string) bool {
	return repoRef.MatchString(s)
}

// ParseRepoRef splits an "owner/repo" reference. A trailing ".git" on the
// repository is dropped, and "." or ".." segments are rejected because they
// would escape the API path.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	if !IsRepoRef(ref) {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repository %q: use owner/repo", ref)
	}
	owner, repo, _ = strings.Cut(ref, "/")
	repo = strings.TrimSuffix(repo, ".git")
	for _, part := range []string{owner, repo} {
		if part == "" || strings.Trim(part, ".") == "" {
			return "", "", errors.New(errors.ErrCodeInvalidInput, "invalid repository %q: use owner/repo", ref)
		}
	}
	return owner, repo, nil
}
