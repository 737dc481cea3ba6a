package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Report which sources are configured and reachable",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	status := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "✗"
	}

	fmt.Fprintf(out, "%s knowledge base\n", status(true))
	fmt.Fprintf(out, "%s news search (NEWS_API_KEY)\n", status(pipeline.KeyConfigured(cfg.News.APIKey)))
	fmt.Fprintf(out, "%s knowledge graph (GOOGLE_API_KEY)\n", status(pipeline.KeyConfigured(cfg.KGraph.APIKey)))

	llmCfg := llm.ConfigFromModel(cfg)
	if llmCfg.Provider == "" {
		fmt.Fprintf(out, "%s language model (no provider configured)\n", status(false))
		return nil
	}
	if llm.RequiresAPIKey(llmCfg.Provider) && !pipeline.KeyConfigured(llmCfg.APIKey) {
		fmt.Fprintf(out, "%s language model %s (API key not set)\n", status(false), llmCfg.Provider)
		return nil
	}

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		fmt.Fprintf(out, "%s language model: %v\n", status(false), err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	fmt.Fprintf(out, "%s language model %s reachable\n", status(provider.IsAvailable(ctx)), provider.Name())

	return nil
}
