package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newsbrief/internal/core"
)

func TestLoadMissingFileStartsEmpty(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "absent.json"))
	if st.Len() != 0 {
		t.Errorf("missing file should start empty, got %d keys", st.Len())
	}
}

func TestLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := Load(path)
	if st.Len() != 0 {
		t.Errorf("corrupt file should start empty, got %d keys", st.Len())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	st := Load(path)
	c := core.Candidate{Title: "story", Link: "https://a.example.com/story"}
	st.Add(c.Key())
	st.Record(c, now)
	if err := st.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	re := Load(path)
	if !re.Has(core.KeyFor("https://a.example.com/story")) {
		t.Error("reloaded store should remember the key")
	}
	entry, ok := re.LastUpdateForDomain("a.example.com", "")
	if !ok || entry.Title != "story" {
		t.Errorf("history entry = %+v, ok=%v", entry, ok)
	}
}

func TestSaveFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	st := Load(path)
	st.Add(core.Key{Domain: "a.example.com", Path: "/x"})
	if err := st.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var shape struct {
		Seen    [][2]string       `json:"seen"`
		History []json.RawMessage `json:"history"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		t.Fatalf("state file is not the expected shape: %v", err)
	}
	if len(shape.Seen) != 1 || shape.Seen[0][0] != "a.example.com" || shape.Seen[0][1] != "/x" {
		t.Errorf("seen pairs = %v", shape.Seen)
	}
}

func TestHistoryTrimmedOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	st := Load(path)
	for i := 0; i < historyLimit+50; i++ {
		st.Record(core.Candidate{Title: "t", Link: "https://a.example.com/x"}, now)
	}
	if err := st.Save(); err != nil {
		t.Fatal(err)
	}

	re := Load(path)
	if got := len(re.history); got != historyLimit {
		t.Errorf("history length after save = %d, want %d", got, historyLimit)
	}
}

func TestLastUpdateForDomainExcludesCurrent(t *testing.T) {
	st := Load(filepath.Join(t.TempDir(), "seen.json"))
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	st.Record(core.Candidate{Title: "older", Link: "https://a.example.com/1"}, now.Add(-time.Hour))
	st.Record(core.Candidate{Title: "current", Link: "https://a.example.com/2"}, now)

	entry, ok := st.LastUpdateForDomain("a.example.com", "https://a.example.com/2")
	if !ok || entry.Title != "older" {
		t.Errorf("want the older entry, got %+v ok=%v", entry, ok)
	}

	_, ok = st.LastUpdateForDomain("b.example.com", "")
	if ok {
		t.Error("unknown domain should report no history")
	}
}
