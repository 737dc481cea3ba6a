package pipeline

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/fetch"
	"github.com/ppiankov/claimcheck/internal/kgraph"
	"github.com/ppiankov/claimcheck/internal/knowledge"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/logging"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/news"
	"go.uber.org/zap"
)

// placeholderKeys are the values shipped in the template .env file
var placeholderKeys = map[string]bool{
	"your_gemini_api_key":          true,
	"your_actual_api_key_here":     true,
	"your_newsapi_org_key":         true,
	"your_knowledge_graph_api_key": true,
}

// KeyConfigured reports whether key is set to something other than a
// template placeholder
func KeyConfigured(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && !placeholderKeys[strings.ToLower(key)]
}

// NewPipeline builds the analyzer described by cfg. A stage whose
// credentials are missing is left out; only an unreadable facts file is
// fatal.
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Analyzer, error) {
	return newPipeline(cfg, DefaultRand(), logging.OrNop(logger))
}

func newPipeline(cfg *model.Config, rnd Rand, logger *zap.Logger) (*Analyzer, error) {
	facts, err := knowledge.Load(cfg.Knowledge.File)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}
	logger.Debug("knowledge base loaded", zap.Int("facts", facts.Len()))

	fetcher := fetch.NewFetcher(cfg.HTTP)
	stages := []Stage{NewKnowledgeStage(facts)}

	if KeyConfigured(cfg.News.APIKey) {
		client, err := news.NewClient(fetcher, cfg.News.APIKey, cfg.News.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("news client: %w", err)
		}
		stages = append(stages, NewNewsStage(client, logger.Named(StageNews)))
	} else {
		logger.Warn("NEWS_API_KEY not set, news lookups disabled")
	}

	if checker := newChecker(cfg, logger); checker != nil {
		stages = append(stages, NewLLMStage(checker, rnd, logger.Named(StageLLM)))
	}

	if KeyConfigured(cfg.KGraph.APIKey) {
		client, err := kgraph.NewClient(fetcher, cfg.KGraph.APIKey, cfg.KGraph.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("knowledge graph client: %w", err)
		}
		stages = append(stages, NewGraphStage(client, rnd, logger.Named(StageGraph)))
	} else {
		logger.Warn("GOOGLE_API_KEY not set, knowledge graph lookups disabled")
	}

	return NewAnalyzer(logger, stages...), nil
}

// newChecker returns nil when the language model stage cannot run
func newChecker(cfg *model.Config, logger *zap.Logger) *llm.Checker {
	llmCfg := llm.ConfigFromModel(cfg)
	if llmCfg.Provider == "" {
		logger.Warn("no language model provider configured")
		return nil
	}
	if llm.RequiresAPIKey(llmCfg.Provider) && !KeyConfigured(llmCfg.APIKey) {
		logger.Warn("language model API key not set, general knowledge checks disabled",
			zap.String("provider", llmCfg.Provider))
		return nil
	}

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		logger.Warn("failed to initialize language model provider", zap.Error(err))
		return nil
	}
	if provider == nil {
		return nil
	}
	return llm.NewChecker(provider)
}
