// Package pipeline orchestrates one brief run: collect candidates, score
// and diversify them, extract full text, and produce validated summaries.
package pipeline

import (
	"context"
	"strings"
	"time"

	"newsbrief/internal/core"
	"newsbrief/internal/enrich"
	"newsbrief/internal/fetch"
	"newsbrief/internal/logger"
	"newsbrief/internal/relevance"
	"newsbrief/internal/render"
	"newsbrief/internal/research"
	"newsbrief/internal/sources"
	"newsbrief/internal/state"
	"newsbrief/internal/store"
	"newsbrief/internal/summarize"
)

const companySnapshotLimit = 600

// Options are the per-run selection knobs.
type Options struct {
	WindowMinutes      int
	MaxItems           int
	DiversifyPerDomain int
	Watchlist          []string
	WatchlistOnly      bool
}

// watchlistOnly reports whether watchlist-only filtering is in force. The
// flag is inert without a watchlist, otherwise every candidate would be
// dropped.
func (o Options) watchlistOnly() bool {
	return o.WatchlistOnly && len(o.Watchlist) > 0
}

// Pipeline wires one kind's sources, profile and capabilities together.
// The summarizer and researcher are optional capabilities; cache may be
// nil to disable article caching.
type Pipeline struct {
	Kind       core.Kind
	Profile    *relevance.Profile
	Lists      sources.Lists
	Fetcher    *sources.Fetcher
	Extractor  *fetch.Extractor
	Summarizer summarize.Summarizer
	Validator  *summarize.Validator
	Seen       *state.Store
	Cache      *store.Store
	CacheAge   time.Duration
	Researcher research.Researcher
	Now        func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// Run executes the full selection and summarization flow and returns the
// accepted results in final rank order. Accepted items are marked seen and
// recorded in history; the caller is responsible for saving the state and
// persisting the results.
func (p *Pipeline) Run(ctx context.Context, opts Options) ([]core.Result, error) {
	now := p.now()
	cutoff := now.Add(-time.Duration(opts.WindowMinutes) * time.Minute)

	candidates := p.collect(ctx, opts, cutoff)
	if len(candidates) == 0 {
		logger.Info("no fresh candidates found", "kind", p.Kind)
		return nil, nil
	}
	logger.Info("scoring candidates", "kind", p.Kind, "count", len(candidates))

	// Cheap pre-extraction ranking over feed metadata, then a domain cap
	// so one prolific outlet cannot fill the extraction window.
	ranked := p.Profile.RankPrelim(candidates, now)
	if pool := opts.MaxItems * p.Profile.PoolFactor; len(ranked) > pool {
		ranked = ranked[:pool]
	}
	window := Diversify(ranked, opts.DiversifyPerDomain, opts.MaxItems*p.Profile.WindowFactor)

	extracted := p.extractAndRefilter(ctx, window, opts)
	if len(extracted) == 0 {
		logger.Info("no candidates survived extraction", "kind", p.Kind)
		return nil, nil
	}

	final := p.Profile.RankFinal(extracted, now)
	return p.summarizeWithBackfill(ctx, final, opts, now), nil
}

// collect pulls from every configured source, keeping only fresh, material,
// unseen candidates. Watchlist hits are computed from feed metadata here;
// extraction recomputes them from full text.
func (p *Pipeline) collect(ctx context.Context, opts Options, cutoff time.Time) []core.Candidate {
	var raw []core.Candidate

	pull := func(urls []string, fn func(context.Context, string) ([]core.Candidate, error), label string) {
		for _, u := range urls {
			items, err := fn(ctx, u)
			if err != nil {
				logger.Warn("source fetch failed", "kind", p.Kind, "source", label, "url", u, "error", err.Error())
				continue
			}
			raw = append(raw, items...)
		}
	}

	pull(p.Lists.OfficialRSS, p.Fetcher.FetchRSS, "official_rss")
	pull(p.Lists.MediaRSS, p.Fetcher.FetchRSS, "media_rss")
	pull(p.Lists.Sitemaps, func(ctx context.Context, u string) ([]core.Candidate, error) {
		return p.Fetcher.FetchSitemap(ctx, u, 0)
	}, "sitemap")
	pull(p.Lists.HTMLListings, func(ctx context.Context, u string) ([]core.Candidate, error) {
		return p.Fetcher.FetchListing(ctx, u, 0)
	}, "listing")

	seenKeys := map[core.Key]bool{}
	var out []core.Candidate
	for _, c := range raw {
		key := c.Key()
		if key == (core.Key{}) || seenKeys[key] || p.Seen.Has(key) {
			continue
		}
		if c.DiscoveredAt.Before(cutoff) {
			continue
		}
		// Sitemap and listing candidates carry no title or snippet; their
		// materiality can only be judged after extraction, so the cheap
		// gate applies only when there is metadata to judge.
		if (c.Title != "" || c.Snippet != "") && !p.Profile.IsMaterial(c.Title, c.Snippet, c.Link) {
			continue
		}
		c.WatchlistHits = relevance.WatchlistHits(c.Title+" "+c.Snippet, opts.Watchlist)
		if opts.watchlistOnly() && len(c.WatchlistHits) == 0 {
			continue
		}
		seenKeys[key] = true
		out = append(out, c)
	}

	// Single links bypass freshness and materiality; they are pinned by
	// configuration and only skipped once already seen.
	for _, link := range p.Lists.SingleLinks {
		key := core.KeyFor(link)
		if key == (core.Key{}) || seenKeys[key] || p.Seen.Has(key) {
			continue
		}
		seenKeys[key] = true
		out = append(out, core.Candidate{
			Link:         link,
			DiscoveredAt: p.now(),
			Domain:       core.DomainOf(link),
		})
	}
	return out
}

// extractAndRefilter fetches full article text for each windowed candidate
// and re-applies the gates that feed metadata could only approximate:
// materiality on real text, the dump guard, canonical-key dedupe, and
// watchlist hits recomputed from the body.
func (p *Pipeline) extractAndRefilter(ctx context.Context, window []core.Candidate, opts Options) []core.Candidate {
	var out []core.Candidate
	for _, c := range window {
		title, text, rawHTML, ok := p.extractOne(ctx, c.Link)
		if !ok {
			continue
		}
		if c.Title == "" {
			c.Title = title
		}
		if fetch.LooksLikeDumpText(text) {
			logger.Debug("dropping dump-like page", "url", c.Link)
			continue
		}
		if !p.Profile.IsMaterial(c.Title, text, c.Link) {
			continue
		}

		meta := enrich.FromHTML(rawHTML, c.Link)
		c.Canonical = meta.Canonical
		c.SiteName = meta.SiteName
		c.PublishedAt = meta.PublishedAt
		c.Byline = meta.Byline

		// The canonical URL may collapse onto something already seen.
		if key := c.Key(); p.Seen.Has(key) {
			continue
		}

		c.FullText = text
		c.WatchlistHits = relevance.WatchlistHits(c.Title+" "+text, opts.Watchlist)
		if opts.watchlistOnly() && len(c.WatchlistHits) == 0 {
			continue
		}
		c.ThemeScore = p.Profile.ThemeScore(c.Title + " " + text)
		c.EventType = enrich.ClassifyEvent(c.Title + " " + text)
		c.NoveltyHash = enrich.NoveltyHash(c.Title + " " + text)

		out = append(out, c)
	}
	return out
}

// extractOne serves an article from the cache when fresh enough, fetching
// and caching it otherwise.
func (p *Pipeline) extractOne(ctx context.Context, url string) (title, text, rawHTML string, ok bool) {
	if cached, err := p.Cache.Get(url, p.CacheAge); err == nil && cached != nil {
		return cached.Title, cached.CleanedText, cached.RawHTML, true
	}

	title, text, rawHTML, err := p.Extractor.Extract(ctx, url)
	if err != nil {
		logger.Warn("extraction failed", "url", url, "error", err.Error())
		return "", "", "", false
	}
	if err := p.Cache.Put(store.CachedArticle{
		URL:         url,
		Title:       title,
		CleanedText: text,
		RawHTML:     rawHTML,
		FetchedAt:   time.Now().UTC(),
	}); err != nil {
		logger.Warn("article cache write failed", "url", url, "error", err.Error())
	}
	return title, text, rawHTML, true
}

// summarizeWithBackfill walks final-ranked candidates, summarizing each and
// keeping only reviews that pass grounding validation. Rejected candidates
// are skipped (and stay unseen, eligible for future runs); the walk
// continues past MaxItems worth of failures until MaxItems are accepted or
// the pool is exhausted.
func (p *Pipeline) summarizeWithBackfill(ctx context.Context, final []core.Candidate, opts Options, now time.Time) []core.Result {
	var results []core.Result
	for _, c := range final {
		if len(results) >= opts.MaxItems {
			break
		}

		snapshot, snapshotURL := p.companySnapshot(ctx, c, opts)
		review, ok := p.reviewFor(ctx, c, snapshot)
		if !ok {
			logger.Info("skipping low-quality summary", "title", truncate(c.Title, 80))
			continue
		}

		res := core.Result{Item: c, Review: review}
		if prev, found := p.Seen.LastUpdateForDomain(core.DomainOf(c.BestLink()), c.BestLink()); found {
			res.PriorTitle = prev.Title
			res.PriorLink = prev.Canonical
		}
		if p.Kind == core.KindFinance {
			res.BeginnerNotes = render.BuildBeginnerNotes(firstNonEmpty(c.FullText, c.Snippet))
			res.CompanySnapshot = truncate(snapshot, companySnapshotLimit)
			res.CompanySource = snapshotURL
		}
		results = append(results, res)

		p.Seen.Add(c.Key())
		p.Seen.Record(c, now)
	}
	return results
}

// reviewFor produces a validated review: the AI capability first, then the
// extractive fallback, each gated by the grounding validator.
func (p *Pipeline) reviewFor(ctx context.Context, c core.Candidate, companyContext string) (core.Review, bool) {
	text := firstNonEmpty(c.FullText, c.Snippet)
	req := summarize.Request{
		Kind:           p.Kind,
		Headline:       c.Title,
		ArticleText:    text,
		SourceURL:      c.BestLink(),
		CompanyContext: companyContext,
	}

	if review, present, err := p.Summarizer.Review(ctx, req); err != nil {
		logger.Warn("summarizer error", "title", truncate(c.Title, 80), "error", err.Error())
	} else if present && p.Validator.IsValid(review, text, c.Title) {
		return review, true
	}

	review := summarize.FallbackReview(p.Kind, p.Profile, c.Title, text)
	if p.Validator.IsValid(review, text, c.Title) {
		return review, true
	}
	return core.Review{}, false
}

// companySnapshot resolves background for the most likely company in a
// finance story. Best effort; absence is normal.
func (p *Pipeline) companySnapshot(ctx context.Context, c core.Candidate, opts Options) (string, string) {
	if p.Kind != core.KindFinance || p.Researcher == nil {
		return "", ""
	}
	names := research.GuessCompanyNames(c.Title, c.FullText, opts.Watchlist)
	if len(names) == 0 {
		return "", ""
	}
	summary, sourceURL, ok := p.Researcher.Snapshot(ctx, names[0])
	if !ok {
		return "", ""
	}
	return summary, sourceURL
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
