// Package enrich derives article metadata from raw page markup: canonical
// URL, site name, publish timestamp, byline, an event-type label and a
// content fingerprint used for duplicate detection.
package enrich

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Meta holds the metadata recovered from a page.
type Meta struct {
	Canonical   string
	SiteName    string
	PublishedAt string
	Byline      []string
}

// ldArticle is the subset of a JSON-LD article block we care about.
type ldArticle struct {
	Type          json.RawMessage `json:"@type"`
	DatePublished string          `json:"datePublished"`
	Author        json.RawMessage `json:"author"`
}

type ldAuthor struct {
	Name string `json:"name"`
}

// FromHTML parses raw markup and extracts metadata. The canonical URL
// falls back to fallbackURL when the page declares none. Publish time and
// byline come from the first JSON-LD block typed NewsArticle or
// BlogPosting; the author may be a single object or a list.
func FromHTML(rawHTML, fallbackURL string) Meta {
	m := Meta{Canonical: fallbackURL}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return m
	}

	if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		m.Canonical = strings.TrimSpace(href)
	}
	if site, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		m.SiteName = strings.TrimSpace(site)
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		art, ok := parseLDArticle(s.Text())
		if !ok {
			return true
		}
		if art.DatePublished != "" {
			m.PublishedAt = art.DatePublished
		}
		m.Byline = parseAuthors(art.Author)
		return false
	})

	return m
}

// parseLDArticle decodes a JSON-LD block and reports whether it describes
// a news article or blog posting. Blocks may be a single object or a list;
// only the first element of a list is considered.
func parseLDArticle(raw string) (ldArticle, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ldArticle{}, false
	}

	var art ldArticle
	if err := json.Unmarshal([]byte(raw), &art); err != nil {
		var list []ldArticle
		if err := json.Unmarshal([]byte(raw), &list); err != nil || len(list) == 0 {
			return ldArticle{}, false
		}
		art = list[0]
	}

	t := strings.ToLower(string(art.Type))
	if !strings.Contains(t, "newsarticle") && !strings.Contains(t, "blogposting") {
		return ldArticle{}, false
	}
	return art, true
}

// parseAuthors accepts either a single author object or a list of them.
func parseAuthors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var one ldAuthor
	if err := json.Unmarshal(raw, &one); err == nil && one.Name != "" {
		return []string{one.Name}
	}
	var many []ldAuthor
	if err := json.Unmarshal(raw, &many); err == nil {
		var names []string
		for _, a := range many {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		return names
	}
	return nil
}

// eventRule pairs an event label with its detection pattern. Order matters:
// the first match wins.
type eventRule struct {
	label   string
	pattern *regexp.Regexp
}

var eventRules = []eventRule{
	{"security_advisory", regexp.MustCompile(`(?i)\b(cve-\d{4}-\d+|vulnerab|patch|zero[- ]day|ransomware|exploit|advisory)\b`)},
	{"launch", regexp.MustCompile(`(?i)\b(launch(es|ed)?|unveil|introduc(e|es|ed)|ga\b|general availability)\b`)},
	{"update", regexp.MustCompile(`(?i)\b(update|release notes|v\d+\.\d+(\.\d+)?|patch)\b`)},
	{"acquisition", regexp.MustCompile(`(?i)\b(acquires?|acquisition|merger|buyout|takeover)\b`)},
	{"policy", regexp.MustCompile(`(?i)\b(antitrust|ftc|doj|cma|dma|dsa|eu commission|ofcom)\b`)},
}

var (
	versionPattern = regexp.MustCompile(`(?i)\bv\d+\.\d+`)
	launchPattern  = regexp.MustCompile(`(?i)\b(launch|ga)\b`)
)

// ClassifyEvent labels text with the first matching event category.
// Default is "news", unless a version number or launch/GA token suggests
// "update" or "launch".
func ClassifyEvent(text string) string {
	low := strings.ToLower(text)
	for _, r := range eventRules {
		if r.pattern.MatchString(low) {
			return r.label
		}
	}
	if versionPattern.MatchString(low) {
		return "update"
	}
	if launchPattern.MatchString(low) {
		return "launch"
	}
	return "news"
}

var whitespace = regexp.MustCompile(`\s+`)

// NoveltyHash returns a stable fingerprint of text, insensitive to case and
// whitespace, used to spot near-identical articles within and across runs.
func NoveltyHash(text string) string {
	norm := strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(text), " "))
	sum := sha1.Sum([]byte(norm))
	return hex.EncodeToString(sum[:])
}
