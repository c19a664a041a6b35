package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newsbrief/internal/archive"
	"newsbrief/internal/config"
	"newsbrief/internal/core"
	"newsbrief/internal/logger"
	"newsbrief/internal/pipeline"
)

// NewCombinedCmd creates the combined export command: both kinds in one
// run, persisted into the year archives without any Telegram delivery.
func NewCombinedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combined",
		Short: "Run both pipelines and persist the results into the archives",
		Long: `Run the tech and finance pipelines back to back and write their
results into the dated year archives plus the viewer index. A failure in
one kind never aborts the other.

Examples:
  newsbrief combined
  newsbrief combined --window 1440 --max 8`,
		Args: cobra.NoArgs,
		Run:  runCombined,
	}

	cmd.Flags().Int("window", 0, "Freshness window in minutes (overrides config)")
	cmd.Flags().Int("max", 0, "Maximum accepted items per kind (overrides config)")
	cmd.Flags().Int("per-domain", 0, "Domain diversity cap (overrides config)")

	return cmd
}

func runCombined(cmd *cobra.Command, args []string) {
	cfg := config.Get()
	if v, _ := cmd.Flags().GetInt("window"); v > 0 {
		cfg.Run.WindowMinutes = v
	}
	if v, _ := cmd.Flags().GetInt("max"); v > 0 {
		cfg.Run.MaxItems = v
	}
	if v, _ := cmd.Flags().GetInt("per-domain"); v > 0 {
		cfg.Run.DiversifyPerDomain = v
	}

	ctx := context.Background()

	tech, err := buildPipeline(ctx, cfg, core.KindTech)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build tech pipeline: %v\n", err)
		os.Exit(1)
	}
	defer tech.close()

	finance, err := buildPipeline(ctx, cfg, core.KindFinance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build finance pipeline: %v\n", err)
		os.Exit(1)
	}
	defer finance.close()

	arc := archive.New(cfg.App.ArchiveDir)
	outcome, err := pipeline.RunCombined(ctx,
		tech.pipe, finance.pipe,
		optionsFor(cfg, tech.pipe.Profile),
		optionsFor(cfg, finance.pipe.Profile),
		arc, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "combined run failed: %v\n", err)
		os.Exit(1)
	}

	if err := tech.seen.Save(); err != nil {
		logger.Error("failed to save tech seen state", err)
	}
	if err := finance.seen.Save(); err != nil {
		logger.Error("failed to save finance seen state", err)
	}

	fmt.Println("Wrote:", outcome.TechPath, outcome.FinancePath)
	fmt.Println("Index updated for", outcome.DateKey, "run", outcome.RunKey)
}
