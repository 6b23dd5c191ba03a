package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// ErrNoRepository is returned when a package document declares no repository.
var ErrNoRepository = errors.New("package declares no repository")

// Client looks up package repositories in the npm registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm registry client. An empty baseURL selects
// [DefaultBaseURL].
func NewClient(c cache.Cache, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(c, "npm", cache.TTLLookup, nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Lookup returns the repository URL declared by the named package, exactly as
// the registry reports it (often a git:// or git+https:// clone URL).
// If refresh is true, cached data is bypassed.
func (c *Client) Lookup(ctx context.Context, name string, refresh bool) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var info lookupResult
	err := c.Cached(ctx, name, refresh, &info, func() error {
		return c.fetch(ctx, name, &info)
	})
	if err != nil {
		return "", err
	}
	return info.Repository, nil
}

func (c *Client) fetch(ctx context.Context, name string, info *lookupResult) error {
	var data registryResponse
	if err := c.Get(ctx, c.baseURL+"/"+integrations.PathEscape(name), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, name)
		}
		return err
	}

	repo := extractField(data.Repository, "url")
	if repo == "" {
		if v, ok := data.Versions[data.DistTags.Latest]; ok {
			repo = extractField(v.Repository, "url")
		}
	}
	if repo == "" {
		return fmt.Errorf("%w: npm package %s", ErrNoRepository, name)
	}
	info.Repository = repo
	return nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type lookupResult struct {
	Repository string `json:"repository"`
}

type registryResponse struct {
	Name       string                    `json:"name"`
	Repository any                       `json:"repository"`
	DistTags   distTags                  `json:"dist-tags"`
	Versions   map[string]versionDetails `json:"versions"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	Repository any `json:"repository"`
}
