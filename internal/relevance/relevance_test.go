package relevance

import (
	"testing"
	"time"

	"newsbrief/internal/core"
)

func TestIsMaterial(t *testing.T) {
	p := TechProfile()

	tests := []struct {
		name    string
		title   string
		snippet string
		link    string
		want    bool
	}{
		{
			name:  "keyword in title",
			title: "New GPU benchmarks leak ahead of launch",
			link:  "https://example.com/post",
			want:  true,
		},
		{
			name:    "keyword only in snippet",
			title:   "Weekly roundup",
			snippet: "Everything about the latest semiconductor supply news",
			link:    "https://example.com/roundup",
			want:    true,
		},
		{
			name:  "trusted domain passes without keywords",
			title: "A quiet note",
			link:  "https://techcrunch.com/2026/08/note",
			want:  true,
		},
		{
			name:  "irrelevant content rejected",
			title: "Best sourdough recipes this summer",
			link:  "https://example.com/food",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.IsMaterial(tt.title, tt.snippet, tt.link)
			if got != tt.want {
				t.Errorf("IsMaterial(%q, %q, %q) = %v, want %v", tt.title, tt.snippet, tt.link, got, tt.want)
			}
		})
	}
}

func TestWatchlistHits(t *testing.T) {
	watchlist := []string{"NVIDIA", "Apple", "TSMC"}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case-insensitive whole-word matches, sorted",
			text: "tsmc and nvidia both reported strong quarters",
			want: []string{"NVIDIA", "TSMC"},
		},
		{
			name: "substring does not match",
			text: "pineapple harvest up this year",
			want: nil,
		},
		{
			name: "repeated mentions deduplicated",
			text: "Apple said Apple Silicon shipments grew",
			want: []string{"Apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WatchlistHits(tt.text, watchlist)
			if len(got) != len(tt.want) {
				t.Fatalf("WatchlistHits(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("hit[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestQualityWeight(t *testing.T) {
	p := TechProfile()

	if w := p.QualityWeight("https://blog.google/ai/post"); w != 12 {
		t.Errorf("official blog weight = %d, want 12", w)
	}
	if w := p.QualityWeight("https://unknown.example.com/story"); w != 1 {
		t.Errorf("unknown domain weight = %d, want 1", w)
	}
}

func TestScoringPrefersQualityAndWatchlist(t *testing.T) {
	p := TechProfile()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	official := core.Candidate{
		Title:        "Cloud platform launch",
		Link:         "https://blog.google/cloud/launch",
		DiscoveredAt: now.Add(-60 * time.Minute),
	}
	blog := core.Candidate{
		Title:        "Cloud platform launch",
		Link:         "https://smallblog.example.com/cloud-launch",
		DiscoveredAt: now.Add(-5 * time.Minute),
	}

	// Quality weight dominates recency: a fresh unknown-domain item still
	// scores below an hour-old official post.
	if p.PrelimScore(official, now) <= p.PrelimScore(blog, now) {
		t.Errorf("official post should outrank fresher unknown blog")
	}

	withHits := blog
	withHits.WatchlistHits = []string{"Google", "NVIDIA"}
	if p.PrelimScore(withHits, now) <= p.PrelimScore(blog, now) {
		t.Errorf("watchlist hits should raise the preliminary score")
	}
}

func TestFinalScoreUsesStoredThemeScore(t *testing.T) {
	p := TechProfile()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	base := core.Candidate{
		Title:        "An update",
		Link:         "https://example.com/a",
		DiscoveredAt: now.Add(-30 * time.Minute),
	}
	themed := base
	themed.ThemeScore = 3

	if p.FinalScore(themed, now) <= p.FinalScore(base, now) {
		t.Errorf("theme score should raise the final score")
	}
}

func TestRankPrelimStableAndNonDestructive(t *testing.T) {
	p := TechProfile()
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	cands := []core.Candidate{
		{Title: "first tie", Link: "https://a.example.com/1", DiscoveredAt: now.Add(-10 * time.Minute)},
		{Title: "second tie", Link: "https://b.example.com/2", DiscoveredAt: now.Add(-10 * time.Minute)},
		{Title: "official", Link: "https://openai.com/blog/3", DiscoveredAt: now.Add(-10 * time.Minute)},
	}

	ranked := p.RankPrelim(cands, now)
	if ranked[0].Title != "official" {
		t.Errorf("highest-quality candidate should rank first, got %q", ranked[0].Title)
	}
	if ranked[1].Title != "first tie" || ranked[2].Title != "second tie" {
		t.Errorf("ties must keep input order, got %q then %q", ranked[1].Title, ranked[2].Title)
	}
	if cands[0].Title != "first tie" {
		t.Errorf("input slice must not be reordered")
	}
}
