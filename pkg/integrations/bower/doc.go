// Package bower provides an HTTP client for the Bower registry.
//
// The registry maps a package name to the git URL it was registered with:
//
//	GET /packages/backbone
//	{"name": "backbone", "url": "git://github.com/jashkenas/backbone.git"}
//
// [Client.Lookup] returns that URL unchanged; callers extract the GitHub
// owner and repository with [integrations.ParseGitHubRepo].
//
// [integrations.ParseGitHubRepo]: github.com/matzehuels/vendorjs/pkg/integrations.ParseGitHubRepo
package bower
