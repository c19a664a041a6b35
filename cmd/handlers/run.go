package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"newsbrief/internal/archive"
	"newsbrief/internal/config"
	"newsbrief/internal/core"
	"newsbrief/internal/logger"
	"newsbrief/internal/messaging"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/render"
)

// NewRunCmd creates the single-kind brief command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tech|finance]",
		Short: "Run one brief pipeline and print (or send) the results",
		Long: `Collect fresh articles for one content kind, summarize the best of
them and print the rendered blocks. With --send the blocks are also
delivered to the configured Telegram chat.

Examples:
  newsbrief run tech
  newsbrief run finance --send
  newsbrief run tech --window 360 --max 5`,
		Args: cobra.ExactArgs(1),
		Run:  runBrief,
	}

	cmd.Flags().Int("window", 0, "Freshness window in minutes (overrides config)")
	cmd.Flags().Int("max", 0, "Maximum accepted items (overrides config)")
	cmd.Flags().Int("per-domain", 0, "Domain diversity cap (overrides config)")
	cmd.Flags().Bool("send", false, "Deliver rendered blocks to Telegram")
	cmd.Flags().Bool("archive", false, "Also persist this run into the year archives")

	return cmd
}

// sendEnabled resolves delivery from the configured default, with the
// --send flag taking precedence when set explicitly.
func sendEnabled(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("send") {
		v, _ := cmd.Flags().GetBool("send")
		return v
	}
	return cfg.Run.Send
}

func kindFromArg(arg string) (core.Kind, error) {
	switch strings.ToLower(arg) {
	case "tech":
		return core.KindTech, nil
	case "finance":
		return core.KindFinance, nil
	}
	return "", fmt.Errorf("unknown kind %q (want tech or finance)", arg)
}

func runBrief(cmd *cobra.Command, args []string) {
	kind, err := kindFromArg(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

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
	send := sendEnabled(cmd, cfg)
	toArchive, _ := cmd.Flags().GetBool("archive")

	ctx := context.Background()
	b, err := buildPipeline(ctx, cfg, kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build pipeline: %v\n", err)
		os.Exit(1)
	}
	defer b.close()

	results, err := b.pipe.Run(ctx, optionsFor(cfg, b.pipe.Profile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "run failed: %v\n", err)
		os.Exit(1)
	}

	tg := messaging.NewTelegramClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Silent)
	for _, r := range results {
		block := render.HTMLBlock(r, kind)
		fmt.Println(archive.StripHTML(block))
		fmt.Println(strings.Repeat("-", 90))
		if send {
			ok := tg.SendHTML(ctx, block)
			logger.Info("telegram delivery", "ok", ok, "title", r.Item.Title)
		}
	}
	if len(results) == 0 {
		fmt.Println("No items accepted this run.")
	}

	if err := b.seen.Save(); err != nil {
		logger.Error("failed to save seen state", err)
	}

	if toArchive {
		arc := archive.New(cfg.App.ArchiveDir)
		ts := time.Now().UTC()
		dateKey, runKey := pipeline.DateKey(ts), pipeline.RunKey(ts)
		if _, err := arc.WriteRun(dateKey, kind, archive.NormalizeForViewer(results, true), runKey); err != nil {
			logger.Error("archive write failed", err)
			os.Exit(1)
		}
		var techRuns, finRuns []string
		if len(results) > 0 {
			if kind == core.KindTech {
				techRuns = []string{runKey}
			} else {
				finRuns = []string{runKey}
			}
		}
		if _, err := arc.UpdateIndex(dateKey, techRuns, finRuns); err != nil {
			logger.Error("index update failed", err)
			os.Exit(1)
		}
	}
}
