package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ppiankov/claimcheck/internal/logging"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is the release version, overridden at link time
var Version = "v0.1.0"

var (
	cfgFile string
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimcheck",
	Short: "claimcheck - fact-check short claims against several sources",
	Long: `claimcheck takes a natural-language claim and returns a verdict
(TRUE, FALSE, UNVERIFIED or ERROR) with supporting sources.

Sources are consulted in a fixed order and the first one with an answer wins:
  1. a small built-in fact table
  2. recent news, for claims that read like news
  3. a generative language model
  4. the Google Knowledge Graph

Any source without credentials is skipped.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("claimcheck %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimcheck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with API keys (ignored if missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and environment variables
func initConfig() {
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded environment from %s\n", envFile)
		}
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
		} else {
			// Search for config in home directory
			viper.AddConfigPath(filepath.Join(home, ".claimcheck"))
			viper.SetConfigType("yaml")
			viper.SetConfigName("config")
		}
	}

	configureViper(viper.GetViper())

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configureViper registers defaults and environment bindings on v.
// Environment variables match CLAIMCHECK_<SECTION>_<KEY>; the bare API key
// variables are honoured as well.
func configureViper(v *viper.Viper) {
	setDefaults(v, model.DefaultConfig())

	v.SetEnvPrefix("CLAIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("llm.api_key", "CLAIMCHECK_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("kgraph.api_key", "CLAIMCHECK_KGRAPH_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("news.api_key", "CLAIMCHECK_NEWS_API_KEY", "NEWS_API_KEY")
	_ = v.BindEnv("http.http_proxy", "CLAIMCHECK_HTTP_HTTP_PROXY", "HTTP_PROXY")
	_ = v.BindEnv("http.https_proxy", "CLAIMCHECK_HTTP_HTTPS_PROXY", "HTTPS_PROXY")
	_ = v.BindEnv("http.no_proxy", "CLAIMCHECK_HTTP_NO_PROXY", "NO_PROXY")
}

func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.cors_origins", cfg.Server.CORSOrigins)
	v.SetDefault("server.rate_limit", cfg.Server.RateLimit)
	v.SetDefault("server.rate_burst", cfg.Server.RateBurst)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)

	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	v.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	v.SetDefault("http.no_proxy", cfg.HTTP.NoProxy)
	v.SetDefault("http.requests_per_second", cfg.HTTP.RequestsPerSecond)
	v.SetDefault("http.burst_size", cfg.HTTP.BurstSize)

	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.api_key", cfg.LLM.APIKey)
	v.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	v.SetDefault("llm.timeout", cfg.LLM.Timeout)
	v.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)

	v.SetDefault("news.api_key", cfg.News.APIKey)
	v.SetDefault("news.base_url", cfg.News.BaseURL)
	v.SetDefault("kgraph.api_key", cfg.KGraph.APIKey)
	v.SetDefault("kgraph.base_url", cfg.KGraph.BaseURL)
	v.SetDefault("knowledge.file", cfg.Knowledge.File)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig resolves the effective configuration from v
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) *zap.Logger {
	level := cfg.Log.Level
	if verbose && level == "info" {
		level = "debug"
	}
	logger := logging.New(level, cfg.Log.Format)
	zap.ReplaceGlobals(logger)
	return logger
}
