package archive

import (
	"testing"

	"newsbrief/internal/core"
)

func TestStripHTML(t *testing.T) {
	got := StripHTML("<b>Strong</b> words <a href='x'>here</a>")
	if got != "Strong words here" {
		t.Errorf("StripHTML = %q", got)
	}
}

func TestNormalizeForViewer(t *testing.T) {
	results := []core.Result{
		{
			Item: core.Candidate{
				Title:       "First",
				Link:        "https://amp.example.com/1",
				Canonical:   "https://a.example.com/1",
				SiteName:    "Example",
				NoveltyHash: "h1",
			},
			Review: core.Review{
				HeadlineRewrite: "First rewritten",
				Bullets:         []string{" <b>bold</b> claim ", "plain claim"},
				Impact:          "Positive",
			},
		},
		{
			Item:   core.Candidate{Title: "Second", Link: "https://b.example.com/2", NoveltyHash: "h2"},
			Review: core.Review{Bullets: []string{"something"}},
		},
	}

	out := NormalizeForViewer(results, false)
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if out[0].Item.Link != "https://a.example.com/1" {
		t.Errorf("link should prefer canonical, got %q", out[0].Item.Link)
	}
	if out[0].Review.Bullets[0] != "bold claim" {
		t.Errorf("bullet should be HTML-stripped and trimmed, got %q", out[0].Review.Bullets[0])
	}
	if out[1].Review.Impact != "Neutral" {
		t.Errorf("missing impact should default to Neutral, got %q", out[1].Review.Impact)
	}
}

func TestNormalizeForViewerDedupe(t *testing.T) {
	results := []core.Result{
		{Item: core.Candidate{Title: "keep", Link: "https://a.example.com/1", NoveltyHash: "same"}},
		{Item: core.Candidate{Title: "drop", Link: "https://b.example.com/1", NoveltyHash: "same"}},
		{Item: core.Candidate{Title: "no hash 1", Link: "https://c.example.com/1"}},
		{Item: core.Candidate{Title: "no hash 2", Link: "https://c.example.com/2"}},
	}

	out := NormalizeForViewer(results, true)
	if len(out) != 3 {
		t.Fatalf("got %d results, want 3", len(out))
	}
	if out[0].Item.Title != "keep" {
		t.Errorf("first occurrence should win, got %q", out[0].Item.Title)
	}

	// Without the flag everything passes through.
	if got := NormalizeForViewer(results, false); len(got) != 4 {
		t.Errorf("dedupe=false filtered items: got %d, want 4", len(got))
	}
}
