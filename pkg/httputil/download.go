package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/matzehuels/vendorjs/pkg/observability"
)

const downloadTimeout = 5 * time.Minute

// NewDownloadClient returns an HTTP client suited to archive downloads.
// Archives can be large, so the timeout is much longer than the one used
// for registry API calls.
func NewDownloadClient() *http.Client {
	return &http.Client{Timeout: downloadTimeout}
}

// Download streams the body of a GET request for rawURL into w and returns
// the number of bytes written. Non-200 responses produce a [StatusError].
func Download(ctx context.Context, client *http.Client, rawURL string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	host, path := HostPath(rawURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, path)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, path, err)
		return 0, Retryable(fmt.Errorf("download %s: %w", rawURL, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, path, resp.StatusCode, time.Since(start))

	if err := CheckStatus(rawURL, resp.StatusCode); err != nil {
		return 0, err
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, Retryable(fmt.Errorf("download %s: %w", rawURL, err))
	}
	return n, nil
}

// DownloadFile downloads rawURL to path, retrying transient failures with
// backoff. Each attempt truncates the file so a partial body never survives.
func DownloadFile(ctx context.Context, client *http.Client, rawURL, path string) error {
	return RetryWithBackoff(ctx, func() error {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		_, err = Download(ctx, client, rawURL, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	})
}

// HostPath splits rawURL into the host and path reported to HTTP hooks.
func HostPath(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	return u.Host, u.Path
}
