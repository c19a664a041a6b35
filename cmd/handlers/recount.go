package handlers

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"newsbrief/internal/archive"
	"newsbrief/internal/config"
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NewRecountCmd creates the index maintenance command.
func NewRecountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recount <date>",
		Short: "Rebuild a date's index entry from the year archives",
		Long: `Recompute item counts and run lists for one date purely from what
the year archives contain, repairing an index that drifted out of sync.

Example:
  newsbrief recount 2026-08-24`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dateKey := args[0]
			if !dateKeyPattern.MatchString(dateKey) {
				fmt.Fprintf(os.Stderr, "invalid date %q (want YYYY-MM-DD)\n", dateKey)
				os.Exit(1)
			}
			arc := archive.New(config.Get().App.ArchiveDir)
			path, err := arc.Recount(dateKey)
			if err != nil {
				fmt.Fprintf(os.Stderr, "recount failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Index updated:", path)
		},
	}
}
