package promo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestExtract_TitleAndBlocks(t *testing.T) {
	doc := `<html><head><title> Featured
	Project </title><style>body{}</style></head>
<body><h1>Pi-hole</h1><p>Block ads   on your
network.</p><script>alert(1)</script><div>Try it<br>today</div></body></html>`

	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if got.Title != "Featured Project" {
		t.Fatalf("Title = %q, want %q", got.Title, "Featured Project")
	}
	want := []string{"Pi-hole", "Block ads on your network.", "Try it", "today"}
	if strings.Join(got.Lines, "|") != strings.Join(want, "|") {
		t.Fatalf("Lines = %q, want %q", got.Lines, want)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	_, err := Extract(strings.NewReader("<html><script>x()</script></html>"))
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("Extract error = %v, want ErrEmpty", err)
	}
}

func TestFetcher_FetchAndStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("darkBackground") != "true" {
			t.Errorf("query = %q, want darkBackground=true", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	f := NewFetcher()
	got, err := f.Fetch(ctx, server.URL+"/index.html?darkBackground=true")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(got.Lines) != 1 || got.Lines[0] != "hello" {
		t.Fatalf("Lines = %q, want [hello]", got.Lines)
	}

	if _, err := f.Fetch(ctx, server.URL+"/missing"); err == nil {
		t.Fatalf("Fetch returned nil error for 404")
	}
}
