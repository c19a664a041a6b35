package summarize

import (
	"strings"
	"unicode"

	"newsbrief/internal/core"
	"newsbrief/internal/relevance"
)

// Validator checks that a review is structurally sound and that its claims
// are grounded in the source article. Strict mode adds numeric grounding,
// entity grounding and the hedge-ratio check on top of the structural gate.
type Validator struct {
	profile *relevance.Profile
	kind    core.Kind
	strict  bool
}

// NewValidator builds a validator for one content kind.
func NewValidator(kind core.Kind, profile *relevance.Profile, strict bool) *Validator {
	return &Validator{profile: profile, kind: kind, strict: strict}
}

const (
	entityMissTolerance = 2
	hedgePhrase         = "not specified in the article"
)

// hedgeEquivalents are phrases signalling the model could not ground a
// bullet in the source text.
var hedgeEquivalents = []string{
	hedgePhrase,
	"cannot be determined",
	"insufficient information",
}

// entityStopwords are capitalized tokens that carry no entity meaning;
// sentence-initial words and common connectives land here.
var entityStopwords = map[string]bool{
	"The": true, "A": true, "An": true, "This": true, "That": true, "These": true,
	"Those": true, "It": true, "Its": true, "In": true, "On": true, "At": true,
	"For": true, "With": true, "After": true, "Before": true, "While": true,
	"However": true, "Meanwhile": true, "According": true, "As": true, "But": true,
	"And": true, "Or": true, "If": true, "When": true, "Where": true, "Why": true,
	"How": true, "What": true, "Who": true, "New": true, "Not": true, "No": true,
}

// IsValid reports whether a review is acceptable for persistence.
func (v *Validator) IsValid(review core.Review, sourceText, headline string) bool {
	if !v.structurallySound(review) {
		return false
	}
	if !core.ValidImpact(v.kind, review.Impact) {
		return false
	}
	if !v.strict {
		return true
	}

	lowSource := strings.ToLower(sourceText)
	if !numbersGrounded(review.Bullets, lowSource) {
		return false
	}
	if !entitiesGrounded(review.Bullets, sourceText, headline) {
		return false
	}
	if tooHedged(review.Bullets) {
		return false
	}
	return true
}

// structurallySound gates on bullet count and per-bullet word counts.
func (v *Validator) structurallySound(review core.Review) bool {
	n := len(review.Bullets)
	if n < v.profile.BulletMin || n > v.profile.BulletMax {
		return false
	}
	for _, b := range review.Bullets {
		words := len(strings.Fields(b))
		if words < v.profile.BulletWordMin || words > v.profile.BulletWordMax {
			return false
		}
	}
	return true
}

// numbersGrounded requires every numeric token in the bullets to appear,
// comma-normalized, somewhere in the lowercased source text. One invented
// statistic invalidates the whole review.
func numbersGrounded(bullets []string, lowSource string) bool {
	normSource := strings.ReplaceAll(lowSource, ",", "")
	for _, b := range bullets {
		for _, tok := range numericTokens(b) {
			if !strings.Contains(normSource, tok) {
				return false
			}
		}
	}
	return true
}

// numericTokens extracts integer, decimal and percent tokens from a bullet,
// stripped of grouping commas.
func numericTokens(s string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		t := strings.Trim(cur.String(), ".")
		cur.Reset()
		if t == "" {
			return
		}
		if strings.IndexFunc(t, unicode.IsDigit) < 0 {
			return
		}
		toks = append(toks, t)
	}
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == '.', r == '%':
			cur.WriteRune(r)
		case r == ',' && cur.Len() > 0:
			// grouping comma inside a number: drop it
		default:
			flush()
		}
	}
	flush()
	return toks
}

// entitiesGrounded tolerates up to two capitalized tokens in the bullets
// that appear in neither source text nor headline; a third miss
// invalidates. This catches invented entities while forgiving incidental
// capitalization.
func entitiesGrounded(bullets []string, sourceText, headline string) bool {
	lowSource := strings.ToLower(sourceText)
	lowHeadline := strings.ToLower(headline)

	misses := 0
	for _, b := range bullets {
		for _, tok := range strings.Fields(b) {
			tok = strings.Trim(tok, `.,;:!?"'()[]`)
			if len(tok) < 2 {
				continue
			}
			first := []rune(tok)[0]
			if !unicode.IsUpper(first) {
				continue
			}
			if entityStopwords[tok] {
				continue
			}
			low := strings.ToLower(tok)
			if strings.Contains(lowSource, low) || strings.Contains(lowHeadline, low) {
				continue
			}
			misses++
			if misses > entityMissTolerance {
				return false
			}
		}
	}
	return true
}

// tooHedged rejects reviews where more than half the bullets admit they
// could not find the fact in the article.
func tooHedged(bullets []string) bool {
	if len(bullets) == 0 {
		return true
	}
	hedged := 0
	for _, b := range bullets {
		low := strings.ToLower(b)
		for _, h := range hedgeEquivalents {
			if strings.Contains(low, h) {
				hedged++
				break
			}
		}
	}
	return hedged*2 > len(bullets)
}
