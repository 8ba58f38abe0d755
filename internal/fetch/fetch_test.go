package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestGetImage_Success(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(200)
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	c := &Client{UserAgent: "htmlproc-test", PerRequestTimeout: 2 * time.Second, MaxBytes: 1024}
	b, err := c.GetImage(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != len(payload) {
		t.Fatalf("expected %d bytes, got %d", len(payload), len(b))
	}
}

func TestGetImage_RejectsDeclaredOversize(t *testing.T) {
	var bodyRead bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(999999999))
		w.WriteHeader(200)
		bodyRead = true
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second, MaxBytes: 5 * 1024 * 1024}
	_, err := c.GetImage(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	_ = bodyRead
}

func TestGetImage_RejectsNonImageContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second, MaxBytes: 5 * 1024 * 1024}
	_, err := c.GetImage(context.Background(), srv.URL)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("expected ErrNotImage, got %v", err)
	}
}

func TestGetImage_RejectsStreamedOverrun(t *testing.T) {
	// Chunked response with no Content-Length whose body exceeds the budget.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(200)
		chunk := make([]byte, 1024)
		for i := 0; i < 16; i++ {
			_, _ = w.Write(chunk)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 5 * time.Second, MaxBytes: 4 * 1024}
	_, err := c.GetImage(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge from streamed overrun, got %v", err)
	}
}

func TestGetImage_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{PerRequestTimeout: time.Second, MaxBytes: 1024}
	if _, err := c.GetImage(context.Background(), "file:///etc/hosts"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
}

func TestGetImage_SendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "image/gif")
		_, _ = w.Write([]byte("GIF89a"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "htmlproc/2.0 (+https://example.invalid/htmlproc)", PerRequestTimeout: 2 * time.Second, MaxBytes: 1024}
	if _, err := c.GetImage(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "htmlproc/2.0 (+https://example.invalid/htmlproc)" {
		t.Fatalf("unexpected user agent %q", gotUA)
	}
}
