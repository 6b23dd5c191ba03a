package integrations

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/vendorjs/pkg/buildinfo"
	"github.com/matzehuels/vendorjs/pkg/cache"
	"github.com/matzehuels/vendorjs/pkg/httputil"
)

func newRegistryServer(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/jquery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"jquery","ua":"` + r.UserAgent() + `","accept":"` + r.Header.Get("Accept") + `"}`))
	})
	r.Get("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(nil, "npm", cache.TTLLookup, nil)
	if _, ok := client.cache.(cache.NullCache); !ok {
		t.Errorf("cache = %T, want NullCache when nil is passed", client.cache)
	}
	if client.http.Timeout != httpTimeout {
		t.Errorf("Timeout = %v, want %v", client.http.Timeout, httpTimeout)
	}
}

func TestClientGetSendsHeaders(t *testing.T) {
	srv := newRegistryServer(t)
	client := NewClient(nil, "github", time.Hour, map[string]string{"Accept": "application/vnd.github.v3+json"})

	var got struct {
		Name   string `json:"name"`
		UA     string `json:"ua"`
		Accept string `json:"accept"`
	}
	if err := client.Get(t.Context(), srv.URL+"/jquery", &got); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "jquery" {
		t.Errorf("name = %q, want jquery", got.Name)
	}
	if got.UA != buildinfo.UserAgent() {
		t.Errorf("User-Agent = %q, want %q", got.UA, buildinfo.UserAgent())
	}
	if got.Accept != "application/vnd.github.v3+json" {
		t.Errorf("Accept = %q, want the client default", got.Accept)
	}
}

func TestClientGetErrors(t *testing.T) {
	srv := newRegistryServer(t)
	client := NewClient(nil, "bower", time.Hour, nil)

	var v map[string]any
	err := client.Get(t.Context(), srv.URL+"/gone", &v)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(404) error = %v, want ErrNotFound", err)
	}

	err = client.Get(t.Context(), srv.URL+"/broken", &v)
	var retryErr *httputil.RetryableError
	if !errors.As(err, &retryErr) || !errors.Is(err, ErrNetwork) {
		t.Errorf("Get(502) error = %v, want a retryable ErrNetwork", err)
	}
	var se *httputil.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Errorf("Get(502) should carry the status, got %v", err)
	}
}

func TestClientCached(t *testing.T) {
	c, err := cache.NewMemoryCache(16)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(c, "npm", time.Hour, nil)

	fetches := 0
	lookup := func(refresh bool) string {
		t.Helper()
		var repo string
		err := client.Cached(t.Context(), "backbone", refresh, &repo, func() error {
			fetches++
			repo = "git://github.com/jashkenas/backbone.git"
			return nil
		})
		if err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
		return repo
	}

	lookup(false)
	if got := lookup(false); got != "git://github.com/jashkenas/backbone.git" {
		t.Errorf("cached value = %q", got)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d after a cache hit, want 1", fetches)
	}
	lookup(true)
	if fetches != 2 {
		t.Errorf("fetches = %d after refresh, want 2", fetches)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	c, err := cache.NewMemoryCache(16)
	if err != nil {
		t.Fatal(err)
	}
	client := NewClient(c, "bower", time.Hour, nil)

	var repo string
	err = client.Cached(t.Context(), "missing", false, &repo, func() error { return ErrNotFound })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if _, ok, _ := c.Get(context.Background(), cache.NewDefaultKeyer().HTTPKey("bower", "missing")); ok {
		t.Error("a failed fetch must not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   error
		retryable bool
	}{
		{http.StatusOK, nil, false},
		{http.StatusNotFound, ErrNotFound, false},
		{http.StatusForbidden, ErrNetwork, false},
		{http.StatusTooManyRequests, ErrNetwork, true},
		{http.StatusServiceUnavailable, ErrNetwork, true},
	}
	for _, tt := range tests {
		err := checkStatus("https://registry.npmjs.org/jquery", tt.code)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("checkStatus(%d) = %v, want nil", tt.code, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("checkStatus(%d) = %v, want %v", tt.code, err, tt.wantErr)
		}
		var retryErr *httputil.RetryableError
		if got := errors.As(err, &retryErr); got != tt.retryable {
			t.Errorf("checkStatus(%d) retryable = %v, want %v", tt.code, got, tt.retryable)
		}
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := map[string]string{
		"": "",
		"git://github.com/jashkenas/backbone.git":    "https://github.com/jashkenas/backbone",
		"git+https://github.com/jquery/jquery.git":   "https://github.com/jquery/jquery",
		"git@github.com:twbs/bootstrap.git":          "https://github.com/twbs/bootstrap",
		"ssh://git@github.com/necolas/normalize.css": "https://github.com/necolas/normalize.css",
		"  http://github.com/lodash/lodash/  ":       "https://github.com/lodash/lodash",
	}
	for in, want := range tests {
		if got := NormalizeRepoURL(in); got != want {
			t.Errorf("NormalizeRepoURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseGitHubRepo(t *testing.T) {
	tests := []struct {
		in          string
		owner, repo string
		ok          bool
	}{
		{"git://github.com/jashkenas/underscore.git", "jashkenas", "underscore", true},
		{"https://github.com/components/jquery.ui#master", "components", "jquery.ui", true},
		{"github:necolas/normalize.css", "necolas", "normalize.css", true},
		{"twbs/bootstrap", "twbs", "bootstrap", true},
		{"https://bitbucket.org/owner/repo.git", "", "", false},
		{"jquery", "", "", false},
	}
	for _, tt := range tests {
		owner, repo, ok := ParseGitHubRepo(tt.in)
		if diff := cmp.Diff([]any{tt.owner, tt.repo, tt.ok}, []any{owner, repo, ok}); diff != "" {
			t.Errorf("ParseGitHubRepo(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestPathEscape(t *testing.T) {
	if got := PathEscape("@angular/core"); got != "@angular%2Fcore" {
		t.Errorf("PathEscape(scoped) = %q, want @angular%%2Fcore", got)
	}
	if got := PathEscape("jquery"); got != "jquery" {
		t.Errorf("PathEscape(jquery) = %q", got)
	}
}
