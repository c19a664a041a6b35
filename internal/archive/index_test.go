package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"newsbrief/internal/core"
)

func readIndex(t *testing.T, arc *Archive) map[string]IndexEntry {
	t.Helper()
	data, err := os.ReadFile(arc.IndexPath())
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	var idx map[string]IndexEntry
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatalf("unmarshaling index: %v", err)
	}
	return idx
}

func TestMergeRuns(t *testing.T) {
	tests := []struct {
		name string
		prev []string
		next []string
		want []string
	}{
		{"union sorted", []string{"18:30", "09:30"}, []string{"12:00"}, []string{"09:30", "12:00", "18:30"}},
		{"duplicates collapse", []string{"09:30"}, []string{"09:30"}, []string{"09:30"}},
		{"both empty", nil, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeRuns(tt.prev, tt.next)
			if len(got) != len(tt.want) {
				t.Fatalf("MergeRuns = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("run[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUpdateIndexCountsFromArchives(t *testing.T) {
	arc := New(t.TempDir())
	date := "2026-08-24"

	if _, err := arc.WriteRun(date, core.KindTech, []core.NormalizedResult{
		result("a", "https://a.example.com/1", "h1"),
		result("b", "https://a.example.com/2", "h2"),
	}, "09:30"); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	if _, err := arc.UpdateIndex(date, []string{"09:30"}, nil); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}

	entry := readIndex(t, arc)[date]
	if entry.Tech != 2 {
		t.Errorf("tech count = %d, want 2", entry.Tech)
	}
	if entry.Finance != 0 {
		t.Errorf("finance count = %d, want 0", entry.Finance)
	}
	if len(entry.TechRuns) != 1 || entry.TechRuns[0] != "09:30" {
		t.Errorf("tech runs = %v, want [09:30]", entry.TechRuns)
	}
}

func TestUpdateIndexMergesWithPreviousRuns(t *testing.T) {
	arc := New(t.TempDir())
	date := "2026-08-24"

	if _, err := arc.WriteRun(date, core.KindTech, []core.NormalizedResult{result("a", "https://a.example.com/1", "h1")}, "09:30"); err != nil {
		t.Fatal(err)
	}
	if _, err := arc.UpdateIndex(date, []string{"09:30"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := arc.WriteRun(date, core.KindTech, []core.NormalizedResult{result("b", "https://a.example.com/2", "h2")}, "18:30"); err != nil {
		t.Fatal(err)
	}
	if _, err := arc.UpdateIndex(date, []string{"18:30"}, nil); err != nil {
		t.Fatal(err)
	}

	entry := readIndex(t, arc)[date]
	if len(entry.TechRuns) != 2 || entry.TechRuns[0] != "09:30" || entry.TechRuns[1] != "18:30" {
		t.Errorf("tech runs = %v, want [09:30 18:30]", entry.TechRuns)
	}
	if entry.Tech != 2 {
		t.Errorf("tech count = %d, want 2", entry.Tech)
	}
}

func TestUpdateIndexLegacyShapes(t *testing.T) {
	dir := t.TempDir()
	arc := New(dir)
	date := "2025-03-01"

	// Legacy entry: kind fields hold run lists, no *_runs keys, plus a
	// finance integer count with no backing archive.
	legacy := map[string]any{
		date: map[string]any{
			"tech":    []string{"07:00"},
			"finance": 5,
		},
	}
	data, _ := json.Marshal(legacy)
	if err := os.WriteFile(filepath.Join(dir, "index.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := arc.UpdateIndex(date, []string{"09:30"}, nil); err != nil {
		t.Fatalf("UpdateIndex: %v", err)
	}

	entry := readIndex(t, arc)[date]
	if len(entry.TechRuns) != 2 || entry.TechRuns[0] != "07:00" || entry.TechRuns[1] != "09:30" {
		t.Errorf("legacy run list should merge, got %v", entry.TechRuns)
	}
	// No finance year file exists; the legacy integer count must survive.
	if entry.Finance != 5 {
		t.Errorf("finance count = %d, want legacy 5", entry.Finance)
	}
}

func TestRecountRebuildsFromArchives(t *testing.T) {
	arc := New(t.TempDir())
	date := "2026-08-24"

	if _, err := arc.WriteRun(date, core.KindTech, []core.NormalizedResult{result("a", "https://a.example.com/1", "h1")}, "09:30"); err != nil {
		t.Fatal(err)
	}
	if _, err := arc.WriteRun(date, core.KindFinance, []core.NormalizedResult{
		result("b", "https://b.example.com/1", "h2"),
		result("c", "https://b.example.com/2", "h3"),
	}, "09:30"); err != nil {
		t.Fatal(err)
	}

	if _, err := arc.Recount(date); err != nil {
		t.Fatalf("Recount: %v", err)
	}

	entry := readIndex(t, arc)[date]
	if entry.Tech != 1 || entry.Finance != 2 {
		t.Errorf("counts = tech %d finance %d, want 1 and 2", entry.Tech, entry.Finance)
	}
	if len(entry.FinanceRuns) != 1 || entry.FinanceRuns[0] != "09:30" {
		t.Errorf("finance runs = %v, want [09:30]", entry.FinanceRuns)
	}
}
