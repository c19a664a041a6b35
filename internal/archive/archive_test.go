package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"newsbrief/internal/core"
)

func result(title, link, hash string) core.NormalizedResult {
	return core.NormalizedResult{
		Item:   core.NormalizedItem{Title: title, Link: link, NoveltyHash: hash},
		Review: core.NormalizedReview{HeadlineRewrite: title, Bullets: []string{"a point here"}, Impact: "Neutral"},
	}
}

func readYearFile(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshaling %s: %v", path, err)
	}
	return m
}

func TestWriteRunCreatesYearFile(t *testing.T) {
	arc := New(t.TempDir())

	path, err := arc.WriteRun("2026-08-24", core.KindTech, []core.NormalizedResult{result("one", "https://a.example.com/1", "h1")}, "09:30")
	if err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if filepath.Base(path) != "2026_tech.json" {
		t.Errorf("year file name = %s, want 2026_tech.json", filepath.Base(path))
	}

	day := arc.DayFor(core.KindTech, "2026-08-24")
	if len(day.Runs["09:30"]) != 1 {
		t.Fatalf("run 09:30 has %d items, want 1", len(day.Runs["09:30"]))
	}
	if got := arc.CountForDate(core.KindTech, "2026-08-24"); got != 1 {
		t.Errorf("CountForDate = %d, want 1", got)
	}
}

func TestWriteRunIsIdempotentPerRunKey(t *testing.T) {
	arc := New(t.TempDir())
	date := "2026-08-24"

	first := []core.NormalizedResult{result("one", "https://a.example.com/1", "h1"), result("two", "https://a.example.com/2", "h2")}
	if _, err := arc.WriteRun(date, core.KindTech, first, "09:30"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	// Re-exporting the same run replaces it wholesale, no duplication.
	second := []core.NormalizedResult{result("one", "https://a.example.com/1", "h1")}
	if _, err := arc.WriteRun(date, core.KindTech, second, "09:30"); err != nil {
		t.Fatalf("WriteRun replay: %v", err)
	}

	day := arc.DayFor(core.KindTech, date)
	if len(day.Runs["09:30"]) != 1 {
		t.Errorf("replayed run has %d items, want 1", len(day.Runs["09:30"]))
	}
}

func TestWriteRunKeepsOtherRunsAndDates(t *testing.T) {
	arc := New(t.TempDir())

	if _, err := arc.WriteRun("2026-08-23", core.KindTech, []core.NormalizedResult{result("old", "https://a.example.com/old", "h0")}, "08:00"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if _, err := arc.WriteRun("2026-08-24", core.KindTech, []core.NormalizedResult{result("am", "https://a.example.com/am", "h1")}, "09:30"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if _, err := arc.WriteRun("2026-08-24", core.KindTech, []core.NormalizedResult{result("pm", "https://a.example.com/pm", "h2")}, "18:30"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	today := arc.DayFor(core.KindTech, "2026-08-24")
	if len(today.Runs) != 2 {
		t.Errorf("today has %d runs, want 2", len(today.Runs))
	}
	yesterday := arc.DayFor(core.KindTech, "2026-08-23")
	if len(yesterday.Runs["08:00"]) != 1 {
		t.Errorf("yesterday's run was disturbed: %+v", yesterday.Runs)
	}
	if got := arc.CountForDate(core.KindTech, "2026-08-24"); got != 2 {
		t.Errorf("CountForDate = %d, want 2", got)
	}
}

func TestWriteRunMigratesLegacyBareList(t *testing.T) {
	dir := t.TempDir()
	arc := New(dir)

	// Seed a legacy-shaped year file: the date maps straight to a list.
	legacy := map[string]any{
		"2026-01-05": []core.NormalizedResult{result("legacy", "https://a.example.com/legacy", "hL")},
	}
	data, _ := json.Marshal(legacy)
	path := filepath.Join(dir, "data", "2026_tech.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := arc.WriteRun("2026-01-05", core.KindTech, []core.NormalizedResult{result("new", "https://a.example.com/new", "hN")}, "10:00"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}

	day := arc.DayFor(core.KindTech, "2026-01-05")
	if len(day.Runs[LegacyRunKey]) != 1 {
		t.Errorf("legacy items should migrate under %q, got runs %v", LegacyRunKey, day.Runs)
	}
	if len(day.Runs["10:00"]) != 1 {
		t.Errorf("new run missing after migration")
	}
}

func TestWriteRunRequiresRunKey(t *testing.T) {
	arc := New(t.TempDir())
	if _, err := arc.WriteRun("2026-08-24", core.KindTech, nil, ""); err == nil {
		t.Fatal("expected error for empty run key")
	}
}

func TestWriteRunNilResultsBecomesEmptyRun(t *testing.T) {
	arc := New(t.TempDir())
	path, err := arc.WriteRun("2026-08-24", core.KindFinance, nil, "09:30")
	if err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	file := readYearFile(t, path)
	var day Day
	if err := json.Unmarshal(file["2026-08-24"], &day); err != nil {
		t.Fatalf("day unmarshal: %v", err)
	}
	items, ok := day.Runs["09:30"]
	if !ok {
		t.Fatal("empty run should still be recorded")
	}
	if items == nil || len(items) != 0 {
		t.Errorf("empty run should serialize as an empty list, got %v", items)
	}
}

func TestYearFilePathUsesDateYear(t *testing.T) {
	arc := New("base")
	got := arc.YearFilePath(core.KindFinance, "2025-12-31")
	want := filepath.Join("base", "data", "2025_finance.json")
	if got != want {
		t.Errorf("YearFilePath = %s, want %s", got, want)
	}
}
