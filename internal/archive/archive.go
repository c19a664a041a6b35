// Package archive persists normalized run results into dated, append-only
// JSON year files plus a lightweight date index consumed by the static
// viewer. Legacy file shapes are migrated forward at read time; nothing
// already on disk is ever silently dropped.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"newsbrief/internal/core"
)

// LegacyRunKey is the run key legacy bare-list day records migrate under.
const LegacyRunKey = "00:00"

// Archive manages the viewer data directory: data/{YYYY}_{kind}.json year
// files and index.json. Calls are read-modify-write over whole files;
// concurrent runners against the same directory are not supported, runs
// are expected to be externally serialized.
type Archive struct {
	baseDir string
}

// New returns an archive rooted at baseDir.
func New(baseDir string) *Archive {
	return &Archive{baseDir: baseDir}
}

// Day is the current per-date shape inside a year file: one or more runs
// keyed by a time-of-day string.
type Day struct {
	Runs map[string][]core.NormalizedResult `json:"runs"`
}

// normalizeDay converts any historical day shape to the current one:
//   - bare list of items      -> {"runs": {"00:00": [...]}}
//   - {"runs": {...}}         -> unchanged
//   - other dict / missing    -> {"runs": {}}
func normalizeDay(raw json.RawMessage) Day {
	day := Day{Runs: map[string][]core.NormalizedResult{}}
	if len(raw) == 0 {
		return day
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var items []core.NormalizedResult
		if err := json.Unmarshal(raw, &items); err == nil {
			day.Runs[LegacyRunKey] = items
		}
		return day
	}

	var cur Day
	if err := json.Unmarshal(raw, &cur); err == nil && cur.Runs != nil {
		return cur
	}
	return day
}

func yearFromDateKey(dateKey string) string {
	if i := strings.Index(dateKey, "-"); i > 0 {
		return dateKey[:i]
	}
	return dateKey
}

// YearFilePath returns the path of the year file for a kind and date.
func (a *Archive) YearFilePath(kind core.Kind, dateKey string) string {
	return filepath.Join(a.baseDir, "data", fmt.Sprintf("%s_%s.json", yearFromDateKey(dateKey), kind))
}

// loadJSONMap reads a JSON object file into raw per-key messages. Missing
// or malformed files yield an empty map; the write path then rebuilds.
func loadJSONMap(path string) map[string]json.RawMessage {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]json.RawMessage{}
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return map[string]json.RawMessage{}
	}
	return m
}

// writeJSONAtomic marshals payload and replaces path in one rename, so a
// failed write never corrupts the existing file.
func writeJSONAtomic(path string, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// WriteRun merges one run's normalized results into the year file for
// dateKey: the target date is migrated to the runs shape if needed, the
// entry at runs[runKey] is replaced wholesale (idempotent by run key), and
// every other date and run is left untouched. Returns the file path.
func (a *Archive) WriteRun(dateKey string, kind core.Kind, results []core.NormalizedResult, runKey string) (string, error) {
	if runKey == "" {
		return "", fmt.Errorf("run key is required")
	}
	path := a.YearFilePath(kind, dateKey)

	file := loadJSONMap(path)
	day := normalizeDay(file[dateKey])
	if results == nil {
		results = []core.NormalizedResult{}
	}
	day.Runs[runKey] = results

	dayRaw, err := json.Marshal(day)
	if err != nil {
		return "", fmt.Errorf("failed to marshal day %s: %w", dateKey, err)
	}
	file[dateKey] = dayRaw

	if err := writeJSONAtomic(path, file); err != nil {
		return "", err
	}
	return path, nil
}

// DayFor returns the (migrated) day record for a date, without writing.
func (a *Archive) DayFor(kind core.Kind, dateKey string) Day {
	file := loadJSONMap(a.YearFilePath(kind, dateKey))
	return normalizeDay(file[dateKey])
}

// CountForDate sums items across all of a date's runs in the year file.
// Missing files or dates count zero.
func (a *Archive) CountForDate(kind core.Kind, dateKey string) int {
	day := a.DayFor(kind, dateKey)
	total := 0
	for _, items := range day.Runs {
		total += len(items)
	}
	return total
}
