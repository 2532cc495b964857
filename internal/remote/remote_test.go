package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"http://example.com", true},
		{"https://example.com/a.yaml", true},
		{"/etc/tools.yaml", false},
		{"file:///etc/tools.yaml", false},
		{"ftp://example.com", false},
	}
	for _, tc := range cases {
		if got := IsURL(tc.in); got != tc.want {
			t.Errorf("IsURL(%q): want %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"a":1}`))
	}))
	defer srv.Close()

	body, ctype, err := Get(context.Background(), srv.Client(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != `{"a":1}` {
		t.Fatalf("body: want %q, got %q", `{"a":1}`, body)
	}
	if ctype != "application/json; charset=utf-8" {
		t.Fatalf("content type: want %q, got %q", "application/json; charset=utf-8", ctype)
	}

	if _, _, err := Get(context.Background(), srv.Client(), srv.URL+"/fail"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}
