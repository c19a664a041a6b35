// Package state persists the cross-run "seen" ledger and a bounded recent
// history, the sole de-duplication record across executions.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"newsbrief/internal/core"
)

const historyLimit = 500

// HistoryEntry records an accepted article for per-domain followups.
type HistoryEntry struct {
	Domain    string `json:"domain"`
	Canonical string `json:"canonical"`
	Link      string `json:"link"`
	Title     string `json:"title"`
	TimeISO   string `json:"time_iso"`
}

// fileShape is the on-disk layout: {"seen": [[domain, path], ...],
// "history": [...]}. The pair encoding keeps the file readable by the
// original viewer tooling.
type fileShape struct {
	Seen    [][2]string    `json:"seen"`
	History []HistoryEntry `json:"history"`
}

// Store is the durable seen-state. Keys only ever accumulate; rejected
// candidates are never added, so they stay eligible for future runs.
type Store struct {
	path    string
	seen    map[core.Key]bool
	history []HistoryEntry
}

// Load reads the state file, tolerating a missing or corrupt file by
// starting empty.
func Load(path string) *Store {
	st := &Store{path: path, seen: map[core.Key]bool{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	var fs fileShape
	if err := json.Unmarshal(data, &fs); err != nil {
		return st
	}
	for _, pair := range fs.Seen {
		st.seen[core.Key{Domain: pair[0], Path: pair[1]}] = true
	}
	st.history = fs.History
	return st
}

// Has reports whether a key was accepted in a previous run.
func (s *Store) Has(key core.Key) bool {
	return s.seen[key]
}

// Add marks a key as seen.
func (s *Store) Add(key core.Key) {
	s.seen[key] = true
}

// Len returns the number of seen keys.
func (s *Store) Len() int {
	return len(s.seen)
}

// Record appends an accepted item to the history ledger.
func (s *Store) Record(c core.Candidate, now time.Time) {
	s.history = append(s.history, HistoryEntry{
		Domain:    core.DomainOf(c.BestLink()),
		Canonical: c.BestLink(),
		Link:      c.Link,
		Title:     c.Title,
		TimeISO:   now.Format(time.RFC3339),
	})
}

// LastUpdateForDomain returns the most recent history entry for a domain,
// skipping the entry for excludeCanonical (usually the current article).
func (s *Store) LastUpdateForDomain(domain, excludeCanonical string) (HistoryEntry, bool) {
	for i := len(s.history) - 1; i >= 0; i-- {
		e := s.history[i]
		if e.Domain == domain && e.Canonical != excludeCanonical {
			return e, true
		}
	}
	return HistoryEntry{}, false
}

// Save writes the state back, keeping only the most recent history
// entries. The write is atomic so a crash cannot corrupt the prior state.
func (s *Store) Save() error {
	fs := fileShape{Seen: make([][2]string, 0, len(s.seen))}
	for k := range s.seen {
		fs.Seen = append(fs.Seen, [2]string{k.Domain, k.Path})
	}
	hist := s.history
	if len(hist) > historyLimit {
		hist = hist[len(hist)-historyLimit:]
	}
	fs.History = hist

	data, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
