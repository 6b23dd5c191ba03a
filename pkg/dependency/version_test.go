package dependency

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/matzehuels/vendorjs/pkg/errors"
	"github.com/matzehuels/vendorjs/pkg/httputil"
	"github.com/matzehuels/vendorjs/pkg/integrations/github"
)

type fakeTags struct {
	tags  []github.Tag
	err   error
	calls int
	repo  string
}

func (f *fakeTags) Tags(_ context.Context, repo string, _ bool) ([]github.Tag, error) {
	f.calls++
	f.repo = repo
	return f.tags, f.err
}

func testTags() []github.Tag {
	var tags []github.Tag
	for _, v := range []string{"1.3.2", "1.2.3", "1.4.4", "1.3.3", "not-a-version"} {
		tags = append(tags, github.Tag{Name: v, ZipballURL: "https://api.test/zipball/" + v})
	}
	return tags
}

func TestSelectTag(t *testing.T) {
	tests := []struct {
		rng     string
		want    string
		wantErr bool
	}{
		{"~1.3.2", "1.3.3", false},
		{"1.x", "1.4.4", false},
		{">=1.3.2", "1.4.4", false},
		{"*", "1.4.4", false},
		{"latest", "1.4.4", false},
		{"<1.3.0", "1.2.3", false},
		{"^2.0.0", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			tag, err := SelectTag(testTags(), tt.rng)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SelectTag(%q) error = %v, wantErr %v", tt.rng, err, tt.wantErr)
			}
			if tag.Name != tt.want {
				t.Errorf("SelectTag(%q) = %q, want %q", tt.rng, tag.Name, tt.want)
			}
		})
	}
}

func TestSelectTagNoTags(t *testing.T) {
	if _, err := SelectTag(nil, "*"); err == nil {
		t.Error("SelectTag() on empty list should fail")
	}
}

func TestResolveVersion(t *testing.T) {
	env := testEnv(t)
	lister := &fakeTags{tags: testTags()}

	d := New("jashkenas/underscore@~1.3.2", "vendor", "", env)
	if err := d.ResolveVersion(context.Background(), lister); err != nil {
		t.Fatalf("ResolveVersion() error: %v", err)
	}
	if d.Version != "1.3.3" {
		t.Errorf("Version = %q, want 1.3.3", d.Version)
	}
	if d.URL != "https://api.test/zipball/1.3.3" {
		t.Errorf("URL = %q", d.URL)
	}
	if lister.repo != "jashkenas/underscore" {
		t.Errorf("tags requested for %q", lister.repo)
	}
}

func TestResolveVersionSkipsExact(t *testing.T) {
	env := testEnv(t)
	for _, source := range []string{"a/b@1.2.3", "a/b", "a/b@master", "a/b@gh-pages"} {
		lister := &fakeTags{tags: testTags()}
		d := New(source, "vendor", "", env)
		before := d.URL
		if err := d.ResolveVersion(context.Background(), lister); err != nil {
			t.Fatalf("ResolveVersion(%q) error: %v", source, err)
		}
		if lister.calls != 0 {
			t.Errorf("%q: tags API called %d times, want 0", source, lister.calls)
		}
		if d.URL != before {
			t.Errorf("%q: URL changed to %q", source, d.URL)
		}
	}
}

func TestResolveVersionNotFound(t *testing.T) {
	env := testEnv(t)
	d := New("a/b@>=3.0.0", "vendor", "", env)
	err := d.ResolveVersion(context.Background(), &fakeTags{tags: testTags()})
	if !errors.Is(err, errors.ErrCodeVersionNotFound) {
		t.Errorf("ResolveVersion() error = %v, want VERSION_NOT_FOUND", err)
	}
}

func TestResolveVersionTagFetchFailure(t *testing.T) {
	env := testEnv(t)
	d := New("a/b@1.x", "vendor", "", env)
	lister := &fakeTags{err: fmt.Errorf("wrapped: %w", &httputil.StatusError{Code: http.StatusForbidden, URL: "u"})}

	err := d.ResolveVersion(context.Background(), lister)
	if !errors.Is(err, errors.ErrCodeTagFetch) {
		t.Fatalf("ResolveVersion() error = %v, want TAG_FETCH_FAILED", err)
	}
	if !strings.Contains(err.Error(), "Forbidden") {
		t.Errorf("error %q should include the status text", err)
	}
}
