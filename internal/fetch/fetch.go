// Package fetch retrieves article pages and extracts cleaned body text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; newsbrief/1.0)"

// Extractor fetches article pages and produces a best-effort title and
// cleaned body, plus the raw markup for metadata enrichment.
type Extractor struct {
	client *http.Client
	hints  []string // keep-hints for long-line cleaning
}

// NewExtractor builds an extractor with a bounded per-fetch timeout so one
// slow article cannot stall the whole run.
func NewExtractor(timeout time.Duration, keepHints []string) *Extractor {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		hints:  keepHints,
	}
}

// Extract fetches url and returns (title, cleanedBody, rawHTML). Any fetch
// failure returns an error with all-empty outputs; callers drop the
// candidate and move on.
func (e *Extractor) Extract(ctx context.Context, url string) (string, string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", "", "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to read body from %s: %w", url, err)
	}
	rawHTML := string(body)

	title, text := e.Parse(rawHTML)
	return title, text, rawHTML, nil
}

// mainContentSelectors favor precision: semantic article containers first.
var mainContentSelectors = []string{
	"article", "main", ".main-content", ".entry-content", ".post-content",
	".post-body", ".article-body", "[role='main']",
}

// Parse extracts the title and cleaned body text from raw markup without
// any network access. Title resolution: <title>, then og:title. Body: a
// precision pass over known content containers; if that yields nothing,
// all paragraph text nodes.
func (e *Extractor) Parse(rawHTML string) (string, string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", ""
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		og, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
		title = strings.TrimSpace(og)
	}

	doc.Find("script, style, nav, footer, header, aside, form, iframe, noscript").Remove()

	var lines []string
	for _, sel := range mainContentSelectors {
		doc.Find(sel).First().Find("p, h2, h3, li, blockquote").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				lines = append(lines, t)
			}
		})
		if len(lines) > 0 {
			break
		}
	}
	if len(lines) == 0 {
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				lines = append(lines, t)
			}
		})
	}

	return title, strings.Join(CleanLines(lines, e.hints), "\n")
}
