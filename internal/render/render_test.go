package render

import (
	"strings"
	"testing"

	"newsbrief/internal/core"
)

func TestHTMLBlockTech(t *testing.T) {
	r := core.Result{
		Item: core.Candidate{
			Title:     "Raw title",
			Link:      "https://amp.example.com/1",
			Canonical: "https://a.example.com/1",
			SiteName:  "Example Tech",
			EventType: "launch",
		},
		Review: core.Review{
			HeadlineRewrite: "Vendor ships <new> accelerator",
			Bullets:         []string{"throughput doubled on large models", "pricing unchanged for now"},
			Impact:          "Positive",
			Motive:          "positions against rival silicon",
		},
	}

	block := HTMLBlock(r, core.KindTech)
	for _, want := range []string{
		"\U0001F7E2",
		"Vendor ships &lt;new&gt; accelerator",
		"[launch]",
		"• throughput doubled on large models",
		"<b>Impact:</b> Positive",
		"https://a.example.com/1",
		"Example Tech",
		"Motive (inferred):",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("tech block missing %q:\n%s", want, block)
		}
	}
	if strings.Contains(block, "Not investment advice") {
		t.Error("tech block must not carry the finance footer")
	}
}

func TestHTMLBlockFinance(t *testing.T) {
	r := core.Result{
		Item: core.Candidate{
			Title: "Raw title",
			Link:  "https://fin.example.com/1",
		},
		Review: core.Review{
			HeadlineRewrite: "Firm beats estimates",
			Bullets:         []string{"profit rose on order wins"},
			Impact:          "Bearish",
			ImpactReason:    "margin pressure persists",
			Affected:        []string{"Acme Ltd", "suppliers"},
			WhyMatters:      "sets the tone for the sector",
			WatchNext:       []string{"Q2 guidance", "promoter stake"},
		},
		BeginnerNotes:   []core.Note{{Term: "CAPEX", Meaning: "spending on expansion"}},
		CompanySnapshot: "Acme Ltd makes widgets.",
		CompanySource:   "https://en.wikipedia.org/wiki/Acme",
	}

	block := HTMLBlock(r, core.KindFinance)
	for _, want := range []string{
		"\U0001F534",
		"<b>AI take:</b> Bearish",
		"Acme Ltd, suppliers",
		"CAPEX: spending on expansion",
		"Acme Ltd makes widgets.",
		"Q2 guidance; promoter stake",
		"<i>Not investment advice.</i>",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("finance block missing %q:\n%s", want, block)
		}
	}
}

func TestHTMLBlockDefaults(t *testing.T) {
	block := HTMLBlock(core.Result{Item: core.Candidate{Link: "https://a.example.com/x"}}, core.KindTech)
	for _, want := range []string{"[No title]", "⚪", "[news]", "(no concise bullets available)"} {
		if !strings.Contains(block, want) {
			t.Errorf("default block missing %q:\n%s", want, block)
		}
	}
}

func TestBuildBeginnerNotes(t *testing.T) {
	text := "The company announced a BUYBACK after raising capex guidance; an IPO for the unit is also planned."
	notes := BuildBeginnerNotes(text)

	terms := make([]string, 0, len(notes))
	for _, n := range notes {
		terms = append(terms, n.Term)
	}
	want := []string{"BUYBACK", "CAPEX", "GUIDANCE", "IPO"}
	if len(terms) != len(want) {
		t.Fatalf("terms = %v, want %v", terms, want)
	}
	for i := range want {
		if terms[i] != want[i] {
			t.Errorf("term[%d] = %q, want %q", i, terms[i], want[i])
		}
	}
}

func TestBuildBeginnerNotesWholeWordAndCap(t *testing.T) {
	if notes := BuildBeginnerNotes("the shipout was delayed"); len(notes) != 0 {
		t.Errorf("substring must not match a term, got %v", notes)
	}

	all := "ipo fpo ofs pledge buyback ebitda guidance downgrade upgrade capex tender dividend"
	if notes := BuildBeginnerNotes(all); len(notes) != maxBeginnerNotes {
		t.Errorf("notes should cap at %d, got %d", maxBeginnerNotes, len(notes))
	}
}

func TestHTMLBlockPriorCoverage(t *testing.T) {
	r := core.Result{
		Item: core.Candidate{
			Title: "Fresh story",
			Link:  "https://a.example.com/2",
		},
		Review:     core.Review{Bullets: []string{"one concrete fact"}},
		PriorTitle: "Last week's <related> story",
		PriorLink:  "https://a.example.com/1",
	}

	for _, kind := range []core.Kind{core.KindTech, core.KindFinance} {
		block := HTMLBlock(r, kind)
		if !strings.Contains(block, "Earlier from this outlet:") {
			t.Errorf("%s block missing prior-coverage line:\n%s", kind, block)
		}
		if !strings.Contains(block, "Last week&#39;s &lt;related&gt; story") {
			t.Errorf("%s block prior title not escaped:\n%s", kind, block)
		}
	}

	r.PriorTitle, r.PriorLink = "", ""
	if block := HTMLBlock(r, core.KindTech); strings.Contains(block, "Earlier from this outlet") {
		t.Errorf("prior-coverage line rendered without history:\n%s", block)
	}
}
