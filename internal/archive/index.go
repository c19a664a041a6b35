package archive

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"newsbrief/internal/core"
)

// IndexEntry is the canonical per-date index shape: item counts for the
// legacy viewer alongside run-key lists for the current one. Both field
// families are a contract with the viewer and must stay stable.
type IndexEntry struct {
	Tech        int      `json:"tech"`
	Finance     int      `json:"finance"`
	TechRuns    []string `json:"tech_runs"`
	FinanceRuns []string `json:"finance_runs"`
}

// flexEntry tolerates every historical index shape while decoding:
// kind fields that are ints (counts), kind fields that are run-key lists,
// and entries that are not objects at all.
type flexEntry struct {
	techCount, finCount       int
	techLegacy, finLegacy     []string
	techRuns, finRuns         []string
	hasTechCount, hasFinCount bool
}

func decodeFlexEntry(raw json.RawMessage) flexEntry {
	var e flexEntry
	if len(raw) == 0 {
		return e
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		// Bare int or list from a very old shape: nothing recoverable.
		return e
	}

	e.techCount, e.techLegacy, e.hasTechCount = decodeCountOrRuns(obj["tech"])
	e.finCount, e.finLegacy, e.hasFinCount = decodeCountOrRuns(obj["finance"])
	_ = json.Unmarshal(obj["tech_runs"], &e.techRuns)
	_ = json.Unmarshal(obj["finance_runs"], &e.finRuns)
	return e
}

// decodeCountOrRuns reads a kind field that historically held either an
// integer count or the runs list itself.
func decodeCountOrRuns(raw json.RawMessage) (int, []string, bool) {
	if len(raw) == 0 {
		return 0, nil, false
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil, true
	}
	var runs []string
	if err := json.Unmarshal(raw, &runs); err == nil {
		return 0, runs, false
	}
	return 0, nil, false
}

// MergeRuns unions previous run keys with newly observed ones, sorted
// ascending. "HH:MM" keys sort correctly as strings.
func MergeRuns(prev, next []string) []string {
	set := map[string]bool{}
	for _, r := range prev {
		set[r] = true
	}
	for _, r := range next {
		set[r] = true
	}
	merged := make([]string, 0, len(set))
	for r := range set {
		merged = append(merged, r)
	}
	sort.Strings(merged)
	return merged
}

// IndexPath returns the index file path.
func (a *Archive) IndexPath() string {
	return filepath.Join(a.baseDir, "index.json")
}

// UpdateIndex merges newly observed run keys for a date into the index and
// reconciles counts against the year archives. Run lists are a union with
// whatever was already recorded; counts are recomputed from the year
// files, falling back to a legacy integer when the recount yields zero so
// old viewer data still displays. Returns the index path.
func (a *Archive) UpdateIndex(dateKey string, techRuns, finRuns []string) (string, error) {
	path := a.IndexPath()
	idx := loadJSONMap(path)

	prev := decodeFlexEntry(idx[dateKey])

	entry := IndexEntry{
		TechRuns:    MergeRuns(MergeRuns(prev.techRuns, prev.techLegacy), techRuns),
		FinanceRuns: MergeRuns(MergeRuns(prev.finRuns, prev.finLegacy), finRuns),
	}

	entry.Tech = a.CountForDate(core.KindTech, dateKey)
	if entry.Tech == 0 && prev.hasTechCount {
		entry.Tech = prev.techCount
	}
	entry.Finance = a.CountForDate(core.KindFinance, dateKey)
	if entry.Finance == 0 && prev.hasFinCount {
		entry.Finance = prev.finCount
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	idx[dateKey] = raw

	if err := writeJSONAtomic(path, idx); err != nil {
		return "", err
	}
	return path, nil
}

// Recount rewrites a date's index counts and run lists purely from the
// year archives, keeping legacy counts only where the archives are empty.
func (a *Archive) Recount(dateKey string) (string, error) {
	techDay := a.DayFor(core.KindTech, dateKey)
	finDay := a.DayFor(core.KindFinance, dateKey)

	techRuns := make([]string, 0, len(techDay.Runs))
	for k := range techDay.Runs {
		techRuns = append(techRuns, k)
	}
	finRuns := make([]string, 0, len(finDay.Runs))
	for k := range finDay.Runs {
		finRuns = append(finRuns, k)
	}
	return a.UpdateIndex(dateKey, techRuns, finRuns)
}
