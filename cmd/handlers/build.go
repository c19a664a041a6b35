package handlers

import (
	"context"
	"time"

	"newsbrief/internal/config"
	"newsbrief/internal/core"
	"newsbrief/internal/fetch"
	"newsbrief/internal/logger"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/relevance"
	"newsbrief/internal/research"
	"newsbrief/internal/sources"
	"newsbrief/internal/state"
	"newsbrief/internal/store"
	"newsbrief/internal/summarize"
)

// built bundles one kind's assembled pipeline with the handles the caller
// must flush or close after the run.
type built struct {
	pipe  *pipeline.Pipeline
	seen  *state.Store
	cache *store.Store
}

func (b *built) close() {
	if b.cache != nil {
		_ = b.cache.Close()
	}
}

// stateFileFor returns the configured state file, falling back to the
// per-kind default so tech and finance never share a seen ledger.
func stateFileFor(cfg *config.Config, kind core.Kind) string {
	if cfg.App.StateFile != "" {
		return cfg.App.StateFile
	}
	if kind == core.KindFinance {
		return "seen_finnews.json"
	}
	return "seen_technews.json"
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

// buildPipeline assembles one kind's pipeline from configuration. The
// summarizer degrades to the extractive-only path when no API key is set,
// and the article cache is optional.
func buildPipeline(ctx context.Context, cfg *config.Config, kind core.Kind) (*built, error) {
	var profile *relevance.Profile
	if kind == core.KindFinance {
		profile = relevance.FinanceProfile()
	} else {
		profile = relevance.TechProfile()
	}

	var summarizer summarize.Summarizer = summarize.Disabled{}
	if key := cfg.AI.Gemini.APIKey; key != "" {
		gem, err := summarize.NewGeminiSummarizer(ctx, key, cfg.AI.Gemini.Model, cfg.AI.Gemini.Temperature)
		if err != nil {
			logger.Warn("gemini init failed, running extractive-only", "error", err.Error())
		} else {
			summarizer = gem
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, running extractive-only", "kind", kind)
	}

	cacheAge := parseDuration(cfg.Cache.MaxAge, 24*time.Hour)
	var cache *store.Store
	if cfg.Cache.Path != "" {
		c, err := store.New(cfg.Cache.Path)
		if err != nil {
			logger.Warn("article cache unavailable", "path", cfg.Cache.Path, "error", err.Error())
		} else {
			cache = c
			if err := cache.Cleanup(cacheAge); err != nil {
				logger.Warn("article cache cleanup failed", "error", err.Error())
			}
		}
	}

	var researcher research.Researcher
	if kind == core.KindFinance {
		researcher = research.NewWikipedia(0)
	}

	b := &built{
		seen:  state.Load(stateFileFor(cfg, kind)),
		cache: cache,
	}
	b.pipe = &pipeline.Pipeline{
		Kind:       kind,
		Profile:    profile,
		Lists:      sources.DefaultLists(kind),
		Fetcher:    sources.NewFetcher(parseDuration(cfg.Fetch.FeedTimeout, 20*time.Second)),
		Extractor:  fetch.NewExtractor(parseDuration(cfg.Fetch.ExtractTimeout, 25*time.Second), profile.KeepHints),
		Summarizer: summarizer,
		Validator:  summarize.NewValidator(kind, profile, cfg.AI.Gemini.Strict),
		Seen:       b.seen,
		Cache:      cache,
		CacheAge:   cacheAge,
		Researcher: researcher,
	}
	return b, nil
}

// watchlistFor merges the configured watchlist with the profile default.
func watchlistFor(cfg *config.Config, profile *relevance.Profile) []string {
	if len(cfg.Watchlist.Entities) > 0 {
		return cfg.Watchlist.Entities
	}
	return profile.Watchlist
}

// optionsFor derives run options from configuration.
func optionsFor(cfg *config.Config, profile *relevance.Profile) pipeline.Options {
	return pipeline.Options{
		WindowMinutes:      cfg.Run.WindowMinutes,
		MaxItems:           cfg.Run.MaxItems,
		DiversifyPerDomain: cfg.Run.DiversifyPerDomain,
		Watchlist:          watchlistFor(cfg, profile),
		WatchlistOnly:      cfg.Watchlist.Only,
	}
}
