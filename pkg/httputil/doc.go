// Package httputil provides HTTP utilities shared by the registry clients
// and the archive fetcher.
//
// # Overview
//
//   - [Retry]: Automatic retry with exponential backoff
//   - [CheckStatus]: Maps response codes to [StatusError], marking 5xx and
//     429 responses as retryable
//   - [Download] and [DownloadFile]: Streaming GET into a writer or file
//
// # Retry
//
// [Retry] re-runs an operation only when the returned error is wrapped in
// [RetryableError]:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchSomething(ctx)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Max retries: 3
//   - Base backoff: 1 second
//   - Download timeout: 5 minutes
package httputil
