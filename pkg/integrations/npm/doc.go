// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// The installer only needs one fact from the registry: where a package's
// source lives. [Client.Lookup] fetches the package document from
// https://registry.npmjs.org and returns its "repository" URL, falling back
// to the repository declared by the "latest" version when the top-level
// field is missing.
//
// # Usage
//
//	client := npm.NewClient(c, "")
//	repoURL, err := client.Lookup(ctx, "backbone", false)
//	// repoURL == "git://github.com/jashkenas/backbone.git"
//
// # Caching
//
// Responses are cached for [cache.TTLLookup]. Pass refresh=true to bypass
// the cache.
//
// [cache.TTLLookup]: github.com/matzehuels/vendorjs/pkg/cache.TTLLookup
package npm
