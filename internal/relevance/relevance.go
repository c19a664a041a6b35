// Package relevance implements the materiality filter and the composite
// candidate scoring used to rank discovered articles.
package relevance

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"newsbrief/internal/core"
)

// IsMaterial reports whether a candidate is topically relevant. A URL on a
// trusted domain passes outright; otherwise the concatenation of title,
// snippet and URL must match the profile's materiality pattern. Applied
// cheaply on feed metadata before fetching, and again on full text after
// extraction; the second pass is the final gate.
func (p *Profile) IsMaterial(title, snippet, link string) bool {
	t := strings.ToLower(title + " " + snippet + " " + link)
	for _, d := range p.TrustedDomains {
		if strings.Contains(t, d) {
			return true
		}
	}
	return p.Material.MatchString(t)
}

// WatchlistHits returns the sorted, de-duplicated watchlist entries that
// appear as whole words in text.
func WatchlistHits(text string, watchlist []string) []string {
	if len(watchlist) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var hits []string
	for _, w := range watchlist {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
		if re.MatchString(text) && !seen[w] {
			seen[w] = true
			hits = append(hits, w)
		}
	}
	sort.Strings(hits)
	return hits
}

// ThemeScore counts how many distinct theme patterns match the text.
func (p *Profile) ThemeScore(text string) int {
	n := 0
	for _, re := range p.ThemePatterns {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// QualityWeight looks up the fixed quality weight for a URL's domain.
// Unknown domains weigh 1.
func (p *Profile) QualityWeight(link string) int {
	l := strings.ToLower(link)
	for _, dw := range p.QualityWeights {
		if strings.Contains(l, dw.Match) {
			return dw.Weight
		}
	}
	return 1
}

// recencyTerm is strictly decreasing in age; the floor avoids division by
// zero for items discovered this minute.
func recencyTerm(discovered, now time.Time) float64 {
	mins := int(now.Sub(discovered).Minutes())
	if mins < 1 {
		mins = 1
	}
	return 1.0 / float64(mins)
}

// PrelimScore is the cheap pre-extraction score over titles and snippets.
func (p *Profile) PrelimScore(c core.Candidate, now time.Time) float64 {
	q := p.QualityWeight(c.Link)
	th := p.ThemeScore(c.Title + " " + c.Snippet)
	return float64(q)*10 + 3*float64(len(c.WatchlistHits)) + float64(th) + recencyTerm(c.DiscoveredAt, now)
}

// FinalScore is the authoritative post-extraction score. It reuses the
// theme and watchlist values the pipeline derived from full text.
func (p *Profile) FinalScore(c core.Candidate, now time.Time) float64 {
	q := p.QualityWeight(c.Link)
	return float64(q)*12 + 4*float64(len(c.WatchlistHits)) + 2*float64(c.ThemeScore) + recencyTerm(c.DiscoveredAt, now)
}

// RankPrelim sorts candidates by descending preliminary score, keeping the
// input order for ties.
func (p *Profile) RankPrelim(cands []core.Candidate, now time.Time) []core.Candidate {
	out := make([]core.Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		return p.PrelimScore(out[i], now) > p.PrelimScore(out[j], now)
	})
	return out
}

// RankFinal sorts candidates by descending final score, keeping the input
// order for ties.
func (p *Profile) RankFinal(cands []core.Candidate, now time.Time) []core.Candidate {
	out := make([]core.Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		return p.FinalScore(out[i], now) > p.FinalScore(out[j], now)
	})
	return out
}
