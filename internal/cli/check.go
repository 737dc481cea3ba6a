package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var checkTimeout time.Duration

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Fact-check a single claim and print the verdict",
	Long: `Check runs one claim through the same sources as the HTTP service and
prints the verdict as JSON.

Example:
  claimcheck check "Paris is the capital of France"
  claimcheck check "The stock market crashed today" --llm-provider openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout")
	checkCmd.Flags().String("llm-provider", "gemini", "language model provider (gemini, openai, anthropic, ollama)")
	checkCmd.Flags().String("llm-model", "", "language model name (provider default if empty)")

	_ = viper.BindPFlag("llm.provider", checkCmd.Flags().Lookup("llm-provider"))
	_ = viper.BindPFlag("llm.model", checkCmd.Flags().Lookup("llm-model"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")
	if claim == "" {
		return fmt.Errorf("no claim provided")
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	// Keep stdout clean for the JSON verdict
	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	analyzer, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Sources: %s\n", strings.Join(analyzer.Stages(), ", "))
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	verdict := analyzer.Analyze(ctx, claim)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(verdict)
}
