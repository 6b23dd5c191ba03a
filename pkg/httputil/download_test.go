package httputil

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("zip-bytes"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	n, err := Download(context.Background(), server.Client(), server.URL+"/a.zip", &buf)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if n != int64(len("zip-bytes")) || buf.String() != "zip-bytes" {
		t.Errorf("Download() = %d, %q; want %d, %q", n, buf.String(), len("zip-bytes"), "zip-bytes")
	}
}

func TestDownloadFileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "missing.zip")
	err := DownloadFile(context.Background(), server.Client(), server.URL+"/missing.zip", path)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("DownloadFile() error = %v, want StatusError", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("StatusError.Code = %d, want 404", se.Code)
	}
}

func TestDownloadFileWritesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("archive"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "a.zip")
	if err := DownloadFile(context.Background(), server.Client(), server.URL, path); err != nil {
		t.Fatalf("DownloadFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "archive" {
		t.Errorf("file content = %q, want %q", data, "archive")
	}
}
