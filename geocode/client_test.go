package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Jaipur" {
			t.Errorf("q = %q, want Jaipur", got)
		}
		if got := r.Header.Get("User-Agent"); got != "evroute-test" {
			t.Errorf("user agent = %q", got)
		}
		_, _ = w.Write([]byte(`[{"lat": "26.9124", "lon": "75.7873"}]`))
	}))
	defer upstream.Close()

	c := New(upstream.URL, "evroute-test")
	p, err := c.Resolve(context.Background(), "Jaipur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Lat != 26.9124 || p.Lon != 75.7873 {
		t.Errorf("point = %+v", p)
	}
}

func TestResolveNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	c := New(upstream.URL, "ua")
	if _, err := c.Resolve(context.Background(), "Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer upstream.Close()

	c := New(upstream.URL, "ua")
	_, err := c.Resolve(context.Background(), "Delhi")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected transport error, got %v", err)
	}
}
