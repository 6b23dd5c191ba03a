// Package github provides an HTTP client for the GitHub API.
//
// # Overview
//
// This package lists repository tags from GitHub (https://api.github.com).
// Version ranges such as "~1.3.2" are resolved against these tags, and each
// tag's zipball URL becomes the archive to download.
//
// # Usage
//
//	client := github.NewClient(c, "", os.Getenv("GITHUB_TOKEN"))
//	tags, err := client.Tags(ctx, "jashkenas/underscore", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range tags {
//	    fmt.Println(t.Name, t.ZipballURL)
//	}
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour.
//
// # Pagination
//
// Tags are requested 100 per page until a short page is returned.
//
// # Caching
//
// Tag lists are cached for [cache.TTLTags]. Pass refresh=true to bypass the
// cache.
//
// # Validation
//
// [ParseRepoRef] splits and validates "owner/repo" references before any
// request is made. [IsRepoRef] reports whether a descriptor name has that
// shape, which is how "components/jquery.ui" is told apart from an npm or
// Bower package name.
//
// [cache.TTLTags]: github.com/matzehuels/vendorjs/pkg/cache.TTLTags
package github
