package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/integrations"
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

const (
	perPage  = 100
	maxPages = 20
)

// Tag is a git tag as reported by the GitHub tags API.
type Tag struct {
	Name       string `json:"name"`
	ZipballURL string `json:"zipball_url"`
}

// Client provides access to the GitHub API for tag listing.
// It handles HTTP requests with caching, automatic retries, and optional authentication.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
// An empty baseURL selects [DefaultBaseURL].
func NewClient(c cache.Cache, baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return &Client{
		Client:  integrations.NewClient(c, "github", cache.TTLTags, headers),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Tags lists every tag of the "owner/repo" repository in API order.
// If refresh is true, cached data is bypassed.
func (c *Client) Tags(ctx context.Context, repo string, refresh bool) ([]Tag, error) {
	owner, name, err := ParseRepoRef(repo)
	if err != nil {
		return nil, err
	}
	key := "tags:" + owner + "/" + name

	var tags []Tag
	err = c.Cached(ctx, key, refresh, &tags, func() error {
		var fetchErr error
		tags, fetchErr = c.fetchTags(ctx, owner, name)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) fetchTags(ctx context.Context, owner, repo string) ([]Tag, error) {
	var all []Tag
	for page := 1; page <= maxPages; page++ {
		url := fmt.Sprintf("%s/repos/%s/%s/tags?per_page=%d&page=%d", c.baseURL, owner, repo, perPage, page)
		var batch []Tag
		if err := c.Get(ctx, url, &batch); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return nil, fmt.Errorf("%w: github repo %s/%s", err, owner, repo)
			}
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			break
		}
	}
	return all, nil
}
