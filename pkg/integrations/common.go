package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package or resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-404 error responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
	"git://github.com/", "https://github.com/",
	"ssh://git@github.com/", "https://github.com/",
	"http://github.com/", "https://github.com/",
)

// NormalizeRepoURL converts various repository URL formats to canonical HTTPS form.
// Handles git@, git://, ssh:// and git+ prefixes, and removes .git suffixes.
// Returns empty string if raw is empty.
func NormalizeRepoURL(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "git+")
	s = repoURLReplacer.Replace(s)
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

var (
	githubURLPattern   = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/#?]+)`)
	githubShortPattern = regexp.MustCompile(`^(?:github:)?([\w.-]+)/([\w.-]+)$`)
)

// ParseGitHubRepo extracts owner and repo from a GitHub clone URL or an
// npm-style "owner/repo" / "github:owner/repo" shorthand.
// Returns ok=false for URLs that do not point at GitHub.
func ParseGitHubRepo(raw string) (owner, repo string, ok bool) {
	s := NormalizeRepoURL(raw)
	if m := githubURLPattern.FindStringSubmatch(s); m != nil {
		return m[1], strings.TrimSuffix(m[2], ".git"), true
	}
	if m := githubShortPattern.FindStringSubmatch(s); m != nil {
		return m[1], m[2], true
	}
	return "", "", false
}

// PathEscape percent-encodes a package name for use as a URL path segment.
// Scoped npm names keep their "@" but encode the "/".
func PathEscape(name string) string {
	return url.PathEscape(name)
}
