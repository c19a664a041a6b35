package render

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"newsbrief/internal/core"
)

// glossary maps beginner finance terms to one-line explanations surfaced
// alongside finance briefs.
var glossary = map[string]string{
	"ipo":        "Initial Public Offering, a company sells shares to the public for the first time.",
	"fpo":        "Follow-on Public Offer, a listed company issues more shares to raise funds.",
	"ofs":        "Offer for Sale, promoters or large holders sell shares via an exchange window.",
	"pledge":     "Promoters use their shares as collateral; high pledging is risky.",
	"block deal": "Large buy/sell trade between big investors in a special window.",
	"buyback":    "Company purchases its own shares; usually supportive for price.",
	"ebitda":     "Earnings before interest, taxes, depreciation and amortization.",
	"guidance":   "Management's outlook on revenue, margins, etc.",
	"downgrade":  "Broker or ratings agency cuts its view on a stock or debt.",
	"upgrade":    "Broker or ratings agency raises its view on a stock or debt.",
	"capex":      "Capital expenditure, spending on plants, equipment or expansion.",
	"tender":     "Competitive bidding to win a government or private contract.",
	"dividend":   "Cash paid to shareholders from profits.",
	"split":      "Shares are divided into more shares; market cap unchanged.",
	"bonus":      "Free additional shares to shareholders; market cap unchanged.",
}

const maxBeginnerNotes = 8

var (
	termPatterns     map[string]*regexp.Regexp
	termPatternsOnce sync.Once
)

func compileTermPatterns() {
	termPatterns = make(map[string]*regexp.Regexp, len(glossary))
	for term := range glossary {
		termPatterns[term] = regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
	}
}

// BuildBeginnerNotes scans text for glossary terms and returns an
// explanatory note per term found, capped at eight.
func BuildBeginnerNotes(text string) []core.Note {
	termPatternsOnce.Do(compileTermPatterns)
	low := strings.ToLower(text)

	var notes []core.Note
	for term, meaning := range glossary {
		if termPatterns[term].MatchString(low) {
			notes = append(notes, core.Note{Term: strings.ToUpper(term), Meaning: meaning})
		}
	}
	// Map iteration order is random; keep output stable for the viewer.
	sort.Slice(notes, func(i, j int) bool { return notes[i].Term < notes[j].Term })
	if len(notes) > maxBeginnerNotes {
		notes = notes[:maxBeginnerNotes]
	}
	return notes
}
