package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"newsbrief/internal/archive"
	"newsbrief/internal/core"
	"newsbrief/internal/logger"
)

// IST is the timezone used for archive date and run keys, matching the
// static viewer's expectations.
var IST = time.FixedZone("IST", 5*3600+30*60)

// DateKey formats a time as the archive date key, in IST.
func DateKey(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// RunKey formats a time as the intra-day run key, in IST.
func RunKey(t time.Time) string {
	return t.In(IST).Format("15:04")
}

// CombinedOutcome reports what a combined run produced and wrote. RunID
// ties the two kinds' log lines to one invocation.
type CombinedOutcome struct {
	RunID       string
	Tech        []core.Result
	Finance     []core.Result
	TechPath    string
	FinancePath string
	IndexPath   string
	DateKey     string
	RunKey      string
}

// RunCombined executes both pipelines back to back and persists their
// results into the year archives under a single run key. A failure in one
// kind never aborts the other; it is logged and exported as an empty run.
// Novelty-hash de-duplication is applied at export so near-identical
// stories collected by both kinds appear once.
func RunCombined(ctx context.Context, tech, finance *Pipeline, techOpts, finOpts Options, arc *archive.Archive, now time.Time) (CombinedOutcome, error) {
	out := CombinedOutcome{RunID: uuid.NewString(), DateKey: DateKey(now), RunKey: RunKey(now)}
	logger.Info("combined run starting", "run_id", out.RunID, "date", out.DateKey, "run", out.RunKey)

	out.Tech = safeRun(ctx, tech, techOpts)
	out.Finance = safeRun(ctx, finance, finOpts)

	var err error
	out.TechPath, err = arc.WriteRun(out.DateKey, core.KindTech,
		archive.NormalizeForViewer(out.Tech, true), out.RunKey)
	if err != nil {
		return out, err
	}
	out.FinancePath, err = arc.WriteRun(out.DateKey, core.KindFinance,
		archive.NormalizeForViewer(out.Finance, true), out.RunKey)
	if err != nil {
		return out, err
	}

	// Only runs that produced items are listed in the index.
	var techRuns, finRuns []string
	if len(out.Tech) > 0 {
		techRuns = []string{out.RunKey}
	}
	if len(out.Finance) > 0 {
		finRuns = []string{out.RunKey}
	}
	out.IndexPath, err = arc.UpdateIndex(out.DateKey, techRuns, finRuns)
	if err != nil {
		return out, err
	}
	return out, nil
}

// safeRun executes one pipeline and degrades its failure to an empty
// result set.
func safeRun(ctx context.Context, p *Pipeline, opts Options) []core.Result {
	if p == nil {
		return nil
	}
	results, err := p.Run(ctx, opts)
	if err != nil {
		logger.Error("pipeline run failed", err, "kind", p.Kind)
		return nil
	}
	logger.Info("pipeline run finished", "kind", p.Kind, "items", len(results))
	return results
}
