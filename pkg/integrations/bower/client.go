package bower

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/integrations"
)

// DefaultBaseURL is the public Bower registry.
const DefaultBaseURL = "https://registry.bower.io"

// Client looks up package repositories in a Bower registry.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Bower registry client. An empty baseURL selects
// [DefaultBaseURL].
func NewClient(c cache.Cache, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(c, "bower", cache.TTLLookup, nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Lookup returns the clone URL registered for name.
// If refresh is true, cached data is bypassed.
func (c *Client) Lookup(ctx context.Context, name string, refresh bool) (string, error) {
	name = strings.TrimSpace(name)

	var data packageResponse
	err := c.Cached(ctx, name, refresh, &data, func() error {
		url := c.baseURL + "/packages/" + integrations.PathEscape(name)
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: bower package %s", err, name)
			}
			return err
		}
		if data.URL == "" {
			return fmt.Errorf("%w: bower package %s has no url", integrations.ErrNotFound, name)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return data.URL, nil
}

type packageResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
