// Package core defines the domain types shared across the newsbrief pipeline.
package core

import (
	"net/url"
	"strings"
	"time"
)

// Kind identifies a content pipeline. Each kind has its own sources,
// keyword profile and review shape.
type Kind string

const (
	KindTech    Kind = "tech"
	KindFinance Kind = "finance"
)

// Key is the cross-run identity of a discovered article: its domain plus
// URL path. Before enrichment it is derived from the raw link; after
// enrichment callers should prefer the canonical URL.
type Key struct {
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// KeyFor derives an identity Key from a raw URL. A URL that fails to parse
// yields a zero Key, which callers treat as "no identity".
func KeyFor(rawURL string) Key {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Key{}
	}
	return Key{Domain: strings.ToLower(u.Host), Path: u.Path}
}

// DomainOf returns the lowercased host of a URL, or "" if it cannot be parsed.
func DomainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// Candidate is a raw discovered article before extraction and validation.
// Fetchers populate the discovery fields; the enricher and filter add the
// rest as the candidate moves through the pipeline.
type Candidate struct {
	Title        string    `json:"title"`
	Snippet      string    `json:"summary"` // feed-provided summary text
	Link         string    `json:"link"`
	DiscoveredAt time.Time `json:"time"`
	SourceFeed   string    `json:"feed,omitempty"`
	Domain       string    `json:"source,omitempty"`

	// Added by the filter.
	WatchlistHits []string `json:"watchlist_hits,omitempty"`
	ThemeScore    int      `json:"theme_score,omitempty"`

	// Added by the enricher after full-text extraction.
	Canonical   string   `json:"canonical,omitempty"`
	SiteName    string   `json:"site_name,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	Byline      []string `json:"byline,omitempty"`
	EventType   string   `json:"event_type,omitempty"`
	NoveltyHash string   `json:"novelty_hash,omitempty"`

	// Cleaned article body, retained for grounding checks. Not serialized
	// into archives.
	FullText string `json:"-"`
}

// Key returns the candidate's identity, preferring the canonical URL once
// the enricher has set it.
func (c Candidate) Key() Key {
	if c.Canonical != "" {
		return KeyFor(c.Canonical)
	}
	return KeyFor(c.Link)
}

// BestLink returns the canonical URL when known, else the raw link.
func (c Candidate) BestLink() string {
	if c.Canonical != "" {
		return c.Canonical
	}
	return c.Link
}

// Review is a structured AI (or extractive fallback) summary of one article.
// Tech reviews use Positive/Negative/Neutral impacts and may carry a motive;
// finance reviews use Bullish/Bearish/Neutral and carry why-matters and
// watch-next fields.
type Review struct {
	HeadlineRewrite string   `json:"headline_rewrite"`
	Bullets         []string `json:"bullets"`
	Impact          string   `json:"impact"`
	ImpactReason    string   `json:"impact_reason,omitempty"`
	Affected        []string `json:"affected,omitempty"`
	WhyMatters      string   `json:"why_matters,omitempty"`
	WatchNext       []string `json:"watch_next,omitempty"`
	Motive          string   `json:"motive,omitempty"`
}

// Note is a beginner-glossary entry attached to finance results.
type Note struct {
	Term    string `json:"term"`
	Meaning string `json:"meaning"`
}

// Result is a validated, summarized candidate ready for persistence.
// Immutable once appended to a run's output.
type Result struct {
	Item            Candidate `json:"item"`
	Review          Review    `json:"review"`
	BeginnerNotes   []Note    `json:"beginner_notes,omitempty"`
	CompanySnapshot string    `json:"company_snapshot,omitempty"`
	CompanySource   string    `json:"company_source,omitempty"`

	// Most recent prior accepted story from the same outlet, from the
	// seen-state history.
	PriorTitle string `json:"prior_title,omitempty"`
	PriorLink  string `json:"prior_link,omitempty"`
}

// ImpactSet returns the closed set of impact labels for a kind.
func ImpactSet(kind Kind) []string {
	if kind == KindFinance {
		return []string{"Bullish", "Bearish", "Neutral"}
	}
	return []string{"Positive", "Negative", "Neutral"}
}

// ValidImpact reports whether impact belongs to the kind's closed set.
// An empty impact is allowed; the normalizer defaults it to Neutral.
func ValidImpact(kind Kind, impact string) bool {
	if impact == "" {
		return true
	}
	for _, v := range ImpactSet(kind) {
		if impact == v {
			return true
		}
	}
	return false
}

// NormalizedItem is the viewer wire shape for an article.
type NormalizedItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	SiteName    string `json:"site_name"`
	NoveltyHash string `json:"novelty_hash"`
}

// NormalizedReview is the viewer wire shape for a review.
type NormalizedReview struct {
	HeadlineRewrite string   `json:"headline_rewrite"`
	Bullets         []string `json:"bullets"`
	Impact          string   `json:"impact"`
}

// NormalizedResult is the compact, HTML-free shape persisted into year
// archives and consumed by the static viewer. Field names are a contract
// with the viewer and must stay stable.
type NormalizedResult struct {
	Item   NormalizedItem   `json:"item"`
	Review NormalizedReview `json:"review"`
}
