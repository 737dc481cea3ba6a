package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/extract"
	"github.com/ppiankov/claimcheck/internal/kgraph"
	"github.com/ppiankov/claimcheck/internal/llm"
	"github.com/ppiankov/claimcheck/internal/logging"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/ppiankov/claimcheck/internal/news"
	"go.uber.org/zap"
)

const (
	llmConfidenceMin   = 85
	llmConfidenceMax   = 95
	graphConfidenceMin = 50
	graphConfidenceMax = 65

	// graphSnippetLen is the number of description characters quoted
	graphSnippetLen = 200
)

// FactTable is the static knowledge consulted first
type FactTable interface {
	Lookup(claimLower string) (model.Verdict, bool)
}

// NewsSearcher finds recent articles for a set of keywords
type NewsSearcher interface {
	Lookup(ctx context.Context, keywords []string) ([]news.Article, error)
}

// ClaimChecker asks a language model about a claim
type ClaimChecker interface {
	Check(ctx context.Context, claim string) (string, error)
	ProviderName() string
	Attribution() model.Source
}

// EntitySearcher resolves an entity in a knowledge graph
type EntitySearcher interface {
	Lookup(ctx context.Context, entity string) (*kgraph.EntityResult, error)
}

// KnowledgeStage answers from the static fact table
type KnowledgeStage struct {
	facts FactTable
}

func NewKnowledgeStage(facts FactTable) *KnowledgeStage {
	return &KnowledgeStage{facts: facts}
}

func (s *KnowledgeStage) Name() string { return StageKnowledge }

func (s *KnowledgeStage) Lookup(_ context.Context, claim string) (model.Verdict, bool) {
	return s.facts.Lookup(strings.ToLower(claim))
}

// NewsStage handles claims that read like recent news
type NewsStage struct {
	searcher NewsSearcher
	entities *extract.EntityExtractor
	triggers *extract.TriggerMatcher
	logger   *zap.Logger
}

func NewNewsStage(searcher NewsSearcher, logger *zap.Logger) *NewsStage {
	return &NewsStage{
		searcher: searcher,
		entities: extract.NewEntityExtractor(),
		triggers: extract.NewTriggerMatcher(),
		logger:   logging.OrNop(logger),
	}
}

func (s *NewsStage) Name() string { return StageNews }

func (s *NewsStage) Lookup(ctx context.Context, claim string) (model.Verdict, bool) {
	phrase, ok := s.triggers.Match(strings.ToLower(claim))
	if !ok {
		return model.Verdict{}, false
	}

	keywords := s.entities.Keywords(claim)
	articles, err := s.searcher.Lookup(ctx, keywords)
	if err != nil {
		s.logger.Debug("news lookup yielded nothing",
			zap.String("trigger", phrase), zap.Strings("keywords", keywords), zap.Error(err))
		metrics.StageErrors.WithLabelValues(StageNews).Inc()
		return model.Verdict{}, false
	}
	if len(articles) == 0 {
		return model.Verdict{}, false
	}

	sources := make([]model.Source, 0, len(articles))
	for _, a := range articles {
		s.logger.Debug("news article",
			zap.String("source", a.SourceName),
			zap.String("title", a.Title),
			zap.String("published_at", a.PublishedAt))
		sources = append(sources, model.Source{Title: a.SourceName, URL: a.URL})
	}

	return model.Verdict{
		Verdict: model.VerdictUnverified,
		Explanation: fmt.Sprintf("This appears to be a recent news event. Here are the latest top articles related to '%s'. We recommend reading them to form your own conclusion.",
			strings.Join(keywords, " ")),
		Sources:    sources,
		Confidence: model.ConfidenceNews,
	}, true
}

// LLMStage classifies the claim with a language model
type LLMStage struct {
	checker ClaimChecker
	rnd     Rand
	logger  *zap.Logger
}

func NewLLMStage(checker ClaimChecker, rnd Rand, logger *zap.Logger) *LLMStage {
	if rnd == nil {
		rnd = DefaultRand()
	}
	return &LLMStage{checker: checker, rnd: rnd, logger: logging.OrNop(logger)}
}

func (s *LLMStage) Name() string { return StageLLM }

func (s *LLMStage) Lookup(ctx context.Context, claim string) (model.Verdict, bool) {
	text, err := s.checker.Check(ctx, claim)
	if err != nil {
		s.logger.Warn("language model check failed",
			zap.String("provider", s.checker.ProviderName()), zap.Error(err))
		metrics.StageErrors.WithLabelValues(StageLLM).Inc()
		return model.Verdict{}, false
	}
	s.logger.Debug("language model answered", zap.String("provider", s.checker.ProviderName()))

	return model.Verdict{
		Verdict:     llm.Classify(text),
		Explanation: text,
		Sources:     []model.Source{s.checker.Attribution()},
		Confidence:  randomPercent(s.rnd, llmConfidenceMin, llmConfidenceMax),
	}, true
}

// GraphStage describes the claim's main entity from the knowledge graph
type GraphStage struct {
	searcher EntitySearcher
	entities *extract.EntityExtractor
	rnd      Rand
	logger   *zap.Logger
}

func NewGraphStage(searcher EntitySearcher, rnd Rand, logger *zap.Logger) *GraphStage {
	if rnd == nil {
		rnd = DefaultRand()
	}
	return &GraphStage{
		searcher: searcher,
		entities: extract.NewEntityExtractor(),
		rnd:      rnd,
		logger:   logging.OrNop(logger),
	}
}

func (s *GraphStage) Name() string { return StageGraph }

func (s *GraphStage) Lookup(ctx context.Context, claim string) (model.Verdict, bool) {
	entity := s.entities.Extract(claim)
	result, err := s.searcher.Lookup(ctx, entity)
	if err != nil || result == nil {
		s.logger.Debug("knowledge graph lookup yielded nothing",
			zap.String("entity", entity), zap.Error(err))
		if err != nil {
			metrics.StageErrors.WithLabelValues(StageGraph).Inc()
		}
		return model.Verdict{}, false
	}

	url := result.DescriptionURL
	if url == "" {
		url = "#"
	}

	return model.Verdict{
		Verdict: model.VerdictUnverified,
		Explanation: fmt.Sprintf("We found information on '%s', but could not definitively verify this specific claim. Here is a summary from Google: %s...",
			result.Name, snippet(result.Description, graphSnippetLen)),
		Sources:    []model.Source{{Title: "Knowledge Graph Source", URL: url}},
		Confidence: randomPercent(s.rnd, graphConfidenceMin, graphConfidenceMax),
	}, true
}

// snippet lower-cases s and keeps its first n characters
func snippet(s string, n int) string {
	r := []rune(strings.ToLower(s))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
