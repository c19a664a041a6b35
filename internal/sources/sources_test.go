package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssDoc = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Feed</title>
<item>
  <title>First story</title>
  <link>https://news.example.com/first</link>
  <description>A chip story</description>
  <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
</item>
<item>
  <title>Second story</title>
  <link>https://news.example.com/second</link>
</item>
</channel></rss>`

func TestFetchRSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssDoc)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	fixed := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return fixed }

	items, err := f.FetchRSS(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchRSS: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "First story" || first.Link != "https://news.example.com/first" {
		t.Errorf("first item = %+v", first)
	}
	if first.Snippet != "A chip story" {
		t.Errorf("snippet = %q", first.Snippet)
	}
	if first.Domain != "news.example.com" {
		t.Errorf("domain = %q", first.Domain)
	}
	want := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	if !first.DiscoveredAt.Equal(want) {
		t.Errorf("discovered = %v, want %v", first.DiscoveredAt, want)
	}

	// The undated item is stamped with the fetch time.
	if !items[1].DiscoveredAt.Equal(fixed) {
		t.Errorf("undated item stamped %v, want %v", items[1].DiscoveredAt, fixed)
	}
}

func TestFetchSitemap(t *testing.T) {
	doc := `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<url><loc>https://news.example.com/a</loc><lastmod>2026-08-24T08:30:00Z</lastmod></url>
<url><loc>https://news.example.com/b</loc></url>
<url><loc></loc></url>
</urlset>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, doc)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	items, err := f.FetchSitemap(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("FetchSitemap: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (empty loc dropped)", len(items))
	}
	if items[0].Link != "https://news.example.com/a" || items[0].Title != "" {
		t.Errorf("sitemap items carry no title: %+v", items[0])
	}
	want := time.Date(2026, 8, 24, 8, 30, 0, 0, time.UTC)
	if !items[0].DiscoveredAt.Equal(want) {
		t.Errorf("lastmod not honored: %v", items[0].DiscoveredAt)
	}
}

func TestFetchListing(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := `<html><body>
<a href="/story/one">A full headline about markets</a>
<a href="/story/one">A full headline about markets (dup)</a>
<a href="/story/two">Another headline worth reading</a>
<a href="/privacy">Privacy policy page link</a>
<a href="#top">skip</a>
<a href="javascript:void(0)">skip too</a>
<a href="https://other.example.com/x">An external headline to skip</a>
<a href="/s">x</a>
</body></html>`
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	items, err := f.FetchListing(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("FetchListing: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Title != "A full headline about markets" {
		t.Errorf("title = %q", items[0].Title)
	}
	if items[0].Link != srv.URL+"/story/one" {
		t.Errorf("link = %q", items[0].Link)
	}
}

func TestFetchListingHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>")
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, `<a href="/story/%d">Numbered headline number %d</a>`, i, i)
		}
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	items, err := f.FetchListing(context.Background(), srv.URL, 3)
	if err != nil {
		t.Fatalf("FetchListing: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want limit of 3", len(items))
	}
}

func TestFetchRSSBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	if _, err := f.FetchRSS(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 503 feed")
	}
}
