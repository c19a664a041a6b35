// Package sources pulls raw candidate records from RSS feeds, XML sitemaps
// and HTML listing pages.
package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newsbrief/internal/core"
)

const (
	userAgent       = "newsbrief/1.0 (+https://github.com/newsbrief)"
	maxFeedEntries  = 120
	maxSitemapURLs  = 60
	maxListingLinks = 40
)

// Fetcher pulls candidates from the configured source kinds. A single
// HTTP client with a bounded timeout is shared across all fetches.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
	now    func() time.Time
}

// NewFetcher builds a fetcher with a per-request timeout ceiling.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &Fetcher{client: client, parser: parser, now: func() time.Time { return time.Now().UTC() }}
}

// FetchRSS parses an RSS/Atom feed into candidates. Entries beyond the
// first 120 are ignored. Items without a published or updated time are
// stamped with the fetch time.
func (f *Fetcher) FetchRSS(ctx context.Context, feedURL string) ([]core.Candidate, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	items := feed.Items
	if len(items) > maxFeedEntries {
		items = items[:maxFeedEntries]
	}

	out := make([]core.Candidate, 0, len(items))
	for _, it := range items {
		link := strings.TrimSpace(it.Link)
		ts := f.now()
		if it.PublishedParsed != nil {
			ts = it.PublishedParsed.UTC()
		} else if it.UpdatedParsed != nil {
			ts = it.UpdatedParsed.UTC()
		}
		out = append(out, core.Candidate{
			Title:        strings.TrimSpace(it.Title),
			Snippet:      strings.TrimSpace(firstNonEmpty(it.Description, it.Content)),
			Link:         link,
			DiscoveredAt: ts,
			SourceFeed:   feedURL,
			Domain:       core.DomainOf(link),
		})
	}
	return out, nil
}

// urlSet mirrors the sitemap <urlset> schema.
type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// FetchSitemap parses an XML news sitemap into candidates. Sitemap entries
// carry no title or snippet; those are filled after full-text extraction.
func (f *Fetcher) FetchSitemap(ctx context.Context, sitemapURL string, limit int) ([]core.Candidate, error) {
	if limit <= 0 || limit > maxSitemapURLs {
		limit = maxSitemapURLs
	}

	body, err := f.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("failed to parse sitemap %s: %w", sitemapURL, err)
	}

	urls := set.URLs
	if len(urls) > limit {
		urls = urls[:limit]
	}

	out := make([]core.Candidate, 0, len(urls))
	for _, u := range urls {
		loc := strings.TrimSpace(u.Loc)
		if loc == "" {
			continue
		}
		ts := f.now()
		if u.LastMod != "" {
			if t, err := time.Parse(time.RFC3339, u.LastMod); err == nil {
				ts = t.UTC()
			}
		}
		out = append(out, core.Candidate{
			Link:         loc,
			DiscoveredAt: ts,
			SourceFeed:   sitemapURL,
			Domain:       core.DomainOf(loc),
		})
	}
	return out, nil
}

// skipPathFragments are utility pages a listing crawl should never follow.
var skipPathFragments = []string{"/privacy", "/terms", "/subscribe", "/about"}

// FetchListing crawls an HTML listing page for same-domain article links.
// Anchor text becomes the candidate title; listing pages rarely expose
// per-item timestamps, so items are stamped with the fetch time.
func (f *Fetcher) FetchListing(ctx context.Context, pageURL string, limit int) ([]core.Candidate, error) {
	if limit <= 0 || limit > maxListingLinks {
		limit = maxListingLinks
	}

	body, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing %s: %w", pageURL, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing URL %s: %w", pageURL, err)
	}
	pageDomain := core.DomainOf(pageURL)

	seenPaths := map[string]bool{}
	var out []core.Candidate
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		abs := base.ResolveReference(ref)
		if core.DomainOf(abs.String()) != pageDomain {
			return true
		}
		for _, frag := range skipPathFragments {
			if strings.Contains(abs.Path, frag) {
				return true
			}
		}
		title := strings.TrimSpace(s.Text())
		if len(title) < 6 {
			return true
		}
		if seenPaths[abs.Path] {
			return true
		}
		seenPaths[abs.Path] = true

		out = append(out, core.Candidate{
			Title:        title,
			Link:         abs.String(),
			DiscoveredAt: f.now(),
			SourceFeed:   pageURL,
			Domain:       core.DomainOf(abs.String()),
		})
		return len(out) < limit
	})

	return out, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
