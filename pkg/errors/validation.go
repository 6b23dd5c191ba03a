package errors

import (
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// maxPackageName is the npm registry limit; Bower names are shorter.
const maxPackageName = 214

// packageName matches registry names, optionally npm scoped ("@scope/name").
var packageName = regexp.MustCompile(`^(?:@[A-Za-z0-9][\w.~-]*/)?[A-Za-z0-9][\w.~-]*$`)

// ValidatePackageName checks a registry name before it is looked up.
// Names may be scoped but never contain other slashes, so a name cannot
// address a different registry path.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > maxPackageName {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageName)
	}
	if !packageName.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name %q", name)
	}
	return nil
}

// ValidateManifestFilename checks an entry of the manifest search order.
// Manifests are JSON files at the archive root.
func ValidateManifestFilename(filename string) error {
	switch {
	case filename == "":
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	case strings.ContainsAny(filename, "/\\"):
		return New(ErrCodeInvalidManifest, "manifest %q must be a file name, not a path", filename)
	case strings.HasPrefix(filename, "."):
		return New(ErrCodeInvalidManifest, "manifest %q cannot be a hidden file", filename)
	case path.Ext(filename) != ".json":
		return New(ErrCodeInvalidManifest, "manifest %q must be a .json file", filename)
	}
	return nil
}

// ValidatePath checks a slash-separated resource path taken from a
// descriptor or a manifest "main" entry. It must stay inside the package:
// relative, without ".." segments, backslashes or control characters.
// Dots inside a name ("jquery..min.js") are fine.
func ValidatePath(p string) error {
	if p == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	const maxPathLength = 500
	if len(p) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}
	if strings.IndexFunc(p, unicode.IsControl) >= 0 {
		return New(ErrCodeInvalidPath, "path %q contains control characters", p)
	}
	if strings.Contains(p, "\\") {
		return New(ErrCodeInvalidPath, "path %q cannot contain backslashes", p)
	}
	if path.IsAbs(p) {
		return New(ErrCodeInvalidPath, "path %q must be relative", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path %q leaves the package", p)
		}
	}
	return nil
}

// ValidateURL checks a registry, GitHub API or archive base URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL %q has no host", rawURL)
	}
	return nil
}
