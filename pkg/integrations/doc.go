// Package integrations provides HTTP clients for the remote services the
// installer depends on.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [npm]: npm registry, maps a package name to its GitHub repository
//   - [bower]: Bower registry, the historical name → repository lookup
//   - [github]: GitHub tags API, used to resolve version ranges
//
// # Client Pattern
//
// All clients follow a consistent pattern:
//
//	client := npm.NewClient(c, "")                     // cache, base URL ("" = default)
//	cloneURL, err := client.Lookup(ctx, "backbone")    // cached, retried
//
// Clients handle:
//   - HTTP requests with retry on network errors, 5xx and 429 responses
//   - Response caching through [cache.Cache] with per-service TTLs
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all clients.
// [ParseGitHubRepo] turns clone URLs in their many spellings into owner/repo.
//
// [npm]: github.com/matzehuels/vendorjs/pkg/integrations/npm
// [bower]: github.com/matzehuels/vendorjs/pkg/integrations/bower
// [github]: github.com/matzehuels/vendorjs/pkg/integrations/github
// [cache.Cache]: github.com/matzehuels/vendorjs/pkg/cache.Cache
package integrations
