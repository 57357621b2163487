package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	f := New(srv.URL+"/img", "")
	b, err := f.Fetch(context.Background(), "logo.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(b) != "png-bytes" {
		t.Fatalf("got %q", b)
	}

	if _, err := f.Fetch(context.Background(), "missing.png"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestHTTPFetcherHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := New(srv.URL, "")
	if _, err := f.Fetch(ctx, "logo.png"); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDirFetcher(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seal.png"), []byte("seal"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := DirFetcher{Dir: dir}
	b, err := f.Fetch(context.Background(), "seal.png")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(b) != "seal" {
		t.Fatalf("got %q", b)
	}
}

func TestDirFetcherRejectsEscape(t *testing.T) {
	f := DirFetcher{Dir: t.TempDir()}
	if _, err := f.Fetch(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatal("expected path escape rejection")
	}
}

func TestDirFetcherCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := DirFetcher{Dir: t.TempDir()}
	if _, err := f.Fetch(ctx, "seal.png"); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
