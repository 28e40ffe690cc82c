package mirror

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"debtop/pkg/errors"
)

func gzippedIndex(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write([]byte(content)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func testLocator(serverURL string) Locator {
	return Locator{Mirror: serverURL, Dist: "stable", Component: "main", Arch: "amd64"}
}

func TestFetcher_Fetch(t *testing.T) {
	index := gzippedIndex(t, "usr/bin/foo\tutils/foo-tool\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dists/stable/main/Contents-amd64.gz" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Write(index)
	}))
	defer srv.Close()

	f := NewFetcherWithClient(srv.Client())
	body, err := f.Fetch(context.Background(), testLocator(srv.URL))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer body.Close()

	got, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(got, index) {
		t.Error("fetched bytes differ from served index")
	}
}

func TestFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcherWithClient(srv.Client())
	_, err := f.Fetch(context.Background(), testLocator(srv.URL))
	if !errors.Is(err, errors.ErrCodeFetch) {
		t.Errorf("got %v, want FETCH_ERROR", err)
	}
}

func TestFetcher_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	index := gzippedIndex(t, "usr/bin/foo\tutils/foo-tool\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write(index)
	}))
	defer srv.Close()

	f := NewFetcherWithClient(srv.Client())
	f.retryDelay = time.Millisecond
	body, err := f.Fetch(context.Background(), testLocator(srv.URL))
	if err != nil {
		t.Fatalf("Fetch after retries: %v", err)
	}
	body.Close()

	if got := calls.Load(); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestFetcher_UnreachableMirror(t *testing.T) {
	f := NewFetcherWithClient(&http.Client{Timeout: 100 * time.Millisecond})
	f.retryDelay = time.Millisecond
	loc := Locator{Mirror: "http://127.0.0.1:1", Dist: "stable", Component: "main", Arch: "amd64"}

	_, err := f.Fetch(context.Background(), loc)
	if !errors.Is(err, errors.ErrCodeFetch) {
		t.Fatalf("got %v, want FETCH_ERROR", err)
	}
}

func TestFetcher_MissingArch(t *testing.T) {
	f := NewFetcher()
	_, err := f.Fetch(context.Background(), Locator{Mirror: "http://mirror.example"})
	if !errors.Is(err, errors.ErrCodeInvalidArch) {
		t.Errorf("got %v, want INVALID_ARCHITECTURE", err)
	}
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile("/nonexistent/Contents-amd64.gz")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("got %v, want NOT_FOUND", err)
	}
}
