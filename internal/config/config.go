// Package config loads application configuration from a YAML file,
// environment variables and an optional .env file, in the usual viper
// precedence order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Run       Run       `mapstructure:"run"`
	AI        AI        `mapstructure:"ai"`
	Fetch     Fetch     `mapstructure:"fetch"`
	Cache     Cache     `mapstructure:"cache"`
	Telegram  Telegram  `mapstructure:"telegram"`
	Watchlist Watchlist `mapstructure:"watchlist"`
	Logging   Logging   `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	StateFile  string `mapstructure:"state_file"`
	ArchiveDir string `mapstructure:"archive_dir"`
}

// Run holds per-run selection knobs
type Run struct {
	WindowMinutes      int  `mapstructure:"window_minutes"`
	MaxItems           int  `mapstructure:"max_items"`
	DiversifyPerDomain int  `mapstructure:"diversify_per_domain"`
	Send               bool `mapstructure:"send"`
}

// AI holds LLM summarizer configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	Strict      bool    `mapstructure:"strict"`
}

// Fetch holds HTTP fetching configuration
type Fetch struct {
	FeedTimeout    string `mapstructure:"feed_timeout"`
	ExtractTimeout string `mapstructure:"extract_timeout"`
}

// Cache holds the article cache configuration
type Cache struct {
	Path   string `mapstructure:"path"`
	MaxAge string `mapstructure:"max_age"`
}

// Telegram holds delivery configuration
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	Silent   bool   `mapstructure:"silent"`
}

// Watchlist holds entity watchlist configuration
type Watchlist struct {
	Entities []string `mapstructure:"entities"`
	Only     bool     `mapstructure:"only"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newsbrief")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if raw := viper.GetString("watchlist.entities"); raw != "" && strings.Contains(raw, ",") {
		config.Watchlist.Entities = splitCSV(raw)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// Empty means the per-kind default (seen_technews.json / seen_finnews.json).
	viper.SetDefault("app.state_file", "")
	viper.SetDefault("app.archive_dir", "docs")

	viper.SetDefault("run.window_minutes", 180)
	viper.SetDefault("run.max_items", 10)
	viper.SetDefault("run.diversify_per_domain", 2)
	viper.SetDefault("run.send", false)

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.temperature", 0.2)
	viper.SetDefault("ai.gemini.strict", true)

	viper.SetDefault("fetch.feed_timeout", "20s")
	viper.SetDefault("fetch.extract_timeout", "25s")

	viper.SetDefault("cache.path", "")
	viper.SetDefault("cache.max_age", "24h")

	viper.SetDefault("telegram.silent", false)

	viper.SetDefault("watchlist.entities", "")
	viper.SetDefault("watchlist.only", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
	})
	bindEnvKeys("telegram.bot_token", []string{"TELEGRAM_BOT_TOKEN"})
	bindEnvKeys("telegram.chat_id", []string{"TELEGRAM_CHAT_ID"})
	bindEnvKeys("telegram.silent", []string{"TELEGRAM_SILENT"})

	bindEnvKeys("app.state_file", []string{"STATE_FILE"})
	bindEnvKeys("run.window_minutes", []string{"WINDOW_MIN"})
	bindEnvKeys("run.max_items", []string{"MAX_ITEMS"})
	bindEnvKeys("run.diversify_per_domain", []string{"DIVERSIFY_PER_DOMAIN"})
	bindEnvKeys("watchlist.entities", []string{"WATCHLIST"})
	bindEnvKeys("watchlist.only", []string{"WATCHLIST_ONLY"})
}

// bindEnvKeys binds a config key to the first matching env variable name
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
