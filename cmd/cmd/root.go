package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newsbrief/cmd/handlers"
	"newsbrief/internal/config"
	"newsbrief/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsbrief",
	Short: "Newsbrief collects, summarizes and archives tech and finance news",
	Long: `Newsbrief pulls fresh articles from RSS feeds, sitemaps and listing
pages, filters and ranks them, summarizes the best with a grounded AI
review (or an extractive fallback), and persists results into dated
JSON archives consumed by a static viewer.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.newsbrief.yaml)")

	rootCmd.AddCommand(handlers.NewRunCmd())
	rootCmd.AddCommand(handlers.NewCombinedCmd())
	rootCmd.AddCommand(handlers.NewRecountCmd())
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
}
