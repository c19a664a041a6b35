package fetch

import (
	"regexp"
	"strings"
)

// dropPatterns match boilerplate, navigation and paywall lines that should
// never reach the summarizer.
var dropPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^comments have to be`),
	regexp.MustCompile(`(?i)^sign into unlock benefits`),
	regexp.MustCompile(`(?i)^looks like you are already logged in`),
	regexp.MustCompile(`(?i)^to continue logging in`),
	regexp.MustCompile(`(?i)^we have migrated to a new commenting platform`),
	regexp.MustCompile(`(?i)^subscribe|^sign in|^log in|^register`),
	regexp.MustCompile(`(?i)newsletter|cookie|advertisement`),
	regexp.MustCompile(`(?i)^published on \w+ \d{1,2}, \d{4}`),
	regexp.MustCompile(`(?i)^updated\s*-\s*`),
	regexp.MustCompile(`(?i)^download the app`),
	regexp.MustCompile(`(?i)^read more:`),
}

const (
	longLineLimit = 280
	dedupeKeyLen  = 160
)

var collapseSpace = regexp.MustCompile(`\s+`)

// CleanLines filters extracted text lines: drops boilerplate, drops
// overly long lines unless they carry a topical keep hint, and de-dupes
// near-identical lines. No line-count truncation is applied; the full
// cleaned body is retained for grounding checks downstream.
func CleanLines(lines []string, keepHints []string) []string {
	var kept []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if matchesAny(line, dropPatterns) {
			continue
		}
		if len(line) > longLineLimit && !containsHint(line, keepHints) {
			continue
		}
		kept = append(kept, line)
	}

	seen := map[string]bool{}
	var deduped []string
	for _, l := range kept {
		key := collapseSpace.ReplaceAllString(strings.ToLower(l), " ")
		if len(key) > dedupeKeyLen {
			key = key[:dedupeKeyLen]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, l)
	}
	return deduped
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func containsHint(line string, hints []string) bool {
	low := strings.ToLower(line)
	for _, h := range hints {
		if strings.Contains(low, h) {
			return true
		}
	}
	return false
}

const (
	dumpMinChars         = 400
	dumpMinSentences     = 3
	dumpMinSentenceWords = 6
)

var sentenceSplit = regexp.MustCompile(`[.!?]+\s+|\n+`)

// LooksLikeDumpText reports whether an extracted body is too short or too
// unstructured to summarize reliably. Such candidates are dropped before a
// summarization call is spent on them.
func LooksLikeDumpText(body string) bool {
	body = strings.TrimSpace(body)
	if len(body) < dumpMinChars {
		return true
	}
	substantial := 0
	for _, s := range sentenceSplit.Split(body, -1) {
		if len(strings.Fields(s)) >= dumpMinSentenceWords {
			substantial++
			if substantial >= dumpMinSentences {
				return false
			}
		}
	}
	return true
}
