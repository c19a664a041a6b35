// Package research provides best-effort company background lookups used to
// flavour finance summaries. Every call is optional: failures and empty
// results are reported as absence, never as pipeline errors.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"time"

	"newsbrief/internal/relevance"
)

// Researcher looks up a short company snapshot for a name. ok is false
// when nothing useful was found.
type Researcher interface {
	Snapshot(ctx context.Context, name string) (summary, sourceURL string, ok bool)
}

// Wikipedia resolves names through the Wikipedia search API and the REST
// page-summary endpoint.
type Wikipedia struct {
	client *http.Client
}

// NewWikipedia builds a researcher with a bounded per-call timeout.
func NewWikipedia(timeout time.Duration) *Wikipedia {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Wikipedia{client: &http.Client{Timeout: timeout}}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Snapshot searches for the name and returns the first page's extract.
func (w *Wikipedia) Snapshot(ctx context.Context, name string) (string, string, bool) {
	searchURL := "https://en.wikipedia.org/w/api.php?action=query&list=search&format=json&srlimit=1&srsearch=" +
		url.QueryEscape(name)

	var sr searchResponse
	if err := w.getJSON(ctx, searchURL, &sr); err != nil || len(sr.Query.Search) == 0 {
		return "", "", false
	}

	title := sr.Query.Search[0].Title
	var sum summaryResponse
	pageURL := "https://en.wikipedia.org/api/rest_v1/page/summary/" + url.PathEscape(title)
	if err := w.getJSON(ctx, pageURL, &sum); err != nil || sum.Extract == "" {
		return "", "", false
	}
	return sum.Extract, sum.ContentURLs.Desktop.Page, true
}

func (w *Wikipedia) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "newsbrief/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("research fetch %s: status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// companySuffix matches capitalized names ending in a corporate suffix,
// the quick heuristic for spotting companies in Indian market stories.
var companySuffix = regexp.MustCompile(`\b([A-Z][A-Za-z&.\- ]+(?:Ltd|Limited|Industries|Motors|Bank|Steel|Power|Pharma|Cements|Airways|Airlines|Technologies|Labs|Services))\b`)

// GuessCompanyNames extracts likely company names from a story. Watchlist
// hits win outright; otherwise suffix-matched names, capped at two.
func GuessCompanyNames(title, text string, watchlist []string) []string {
	if hits := relevance.WatchlistHits(title+" "+text, watchlist); len(hits) > 0 {
		return hits
	}
	seen := map[string]bool{}
	var names []string
	for _, m := range companySuffix.FindAllStringSubmatch(title+" "+text, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) > 2 {
		names = names[:2]
	}
	return names
}
