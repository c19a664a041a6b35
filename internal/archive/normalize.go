package archive

import (
	"regexp"
	"strings"

	"newsbrief/internal/core"
)

var htmlTag = regexp.MustCompile(`<[^<]+?>`)

// StripHTML removes markup tags from a string.
func StripHTML(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

// NormalizeForViewer maps results into the compact, HTML-free wire shape
// the viewer consumes. Links prefer the canonical URL; bullets are
// HTML-stripped; a missing impact defaults to Neutral. When dedupe is set,
// later results sharing a novelty hash with an earlier one are dropped
// (first occurrence wins).
func NormalizeForViewer(results []core.Result, dedupe bool) []core.NormalizedResult {
	out := make([]core.NormalizedResult, 0, len(results))
	seenHash := map[string]bool{}

	for _, r := range results {
		if dedupe && r.Item.NoveltyHash != "" {
			if seenHash[r.Item.NoveltyHash] {
				continue
			}
			seenHash[r.Item.NoveltyHash] = true
		}

		bullets := make([]string, 0, len(r.Review.Bullets))
		for _, b := range r.Review.Bullets {
			bullets = append(bullets, strings.TrimSpace(StripHTML(b)))
		}
		impact := r.Review.Impact
		if impact == "" {
			impact = "Neutral"
		}

		out = append(out, core.NormalizedResult{
			Item: core.NormalizedItem{
				Title:       r.Item.Title,
				Link:        r.Item.BestLink(),
				SiteName:    r.Item.SiteName,
				NoveltyHash: r.Item.NoveltyHash,
			},
			Review: core.NormalizedReview{
				HeadlineRewrite: r.Review.HeadlineRewrite,
				Bullets:         bullets,
				Impact:          impact,
			},
		})
	}
	return out
}
