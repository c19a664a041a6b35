package summarize

import (
	"regexp"
	"strings"

	"newsbrief/internal/core"
	"newsbrief/internal/relevance"
)

var sentenceEnd = regexp.MustCompile(`(?m)(?:[.!?])\s+`)

// splitSentences breaks text on sentence-ending punctuation followed by
// whitespace, keeping the punctuation with the sentence.
func splitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last : loc[0]+1])
		if s != "" {
			out = append(out, s)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// extractiveBullets picks the first k sentences that match the profile's
// topical cues, capping each at wordCap words (0 means uncapped). If
// nothing qualifies, the first few sentences stand in regardless.
func extractiveBullets(text string, profile *relevance.Profile, k, wordCap int) []string {
	sents := splitSentences(text)
	var picked []string
	for _, s := range sents {
		if profile.ExtractiveKey.MatchString(s) {
			picked = append(picked, capWords(s, wordCap))
		}
		if len(picked) >= k {
			break
		}
	}
	if len(picked) == 0 {
		for i := 0; i < len(sents) && i < 3; i++ {
			picked = append(picked, capWords(sents[i], wordCap))
		}
	}
	return picked
}

func capWords(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= limit {
		return s
	}
	return strings.Join(words[:limit], " ")
}

// FallbackReview builds an extractive heuristic review used when the AI
// summarizer is absent or its output fails validation. Impact comes from a
// simple keyword-polarity check, defaulting to Neutral.
func FallbackReview(kind core.Kind, profile *relevance.Profile, title, fulltext string) core.Review {
	k, wordCap := 6, 0
	if kind == core.KindFinance {
		k, wordCap = 4, 24
	}
	bullets := extractiveBullets(fulltext, profile, k, wordCap)

	low := strings.ToLower(title + " " + fulltext)
	impact := "Neutral"
	if profile.PositiveCues.MatchString(low) {
		impact = core.ImpactSet(kind)[0]
	}
	if profile.NegativeCues.MatchString(low) {
		impact = core.ImpactSet(kind)[1]
	}

	review := core.Review{
		HeadlineRewrite: title,
		Bullets:         bullets,
		Impact:          impact,
		ImpactReason:    "Heuristic extractive summary; treat as preliminary.",
	}
	if kind == core.KindFinance {
		review.WhyMatters = "Likely to sway sector sentiment short term."
	}
	return review
}
