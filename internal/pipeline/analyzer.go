// Package pipeline runs a claim through the ordered fallback chain of
// lookups and returns the first verdict produced.
package pipeline

import (
	"context"
	"time"

	"github.com/ppiankov/claimcheck/internal/logging"
	"github.com/ppiankov/claimcheck/internal/metrics"
	"github.com/ppiankov/claimcheck/internal/model"
	"go.uber.org/zap"
)

// Analyzer consults its stages in order until one answers
type Analyzer struct {
	stages []Stage
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer over stages, tried in the given order.
// Nil stages are skipped.
func NewAnalyzer(logger *zap.Logger, stages ...Stage) *Analyzer {
	kept := make([]Stage, 0, len(stages))
	for _, s := range stages {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &Analyzer{stages: kept, logger: logging.OrNop(logger)}
}

// Stages returns the names of the enabled stages in order
func (a *Analyzer) Stages() []string {
	names := make([]string, 0, len(a.stages))
	for _, s := range a.stages {
		names = append(names, s.Name())
	}
	return names
}

// Analyze returns exactly one verdict for claim. When every stage misses
// the result is the ERROR verdict.
func (a *Analyzer) Analyze(ctx context.Context, claim string) model.Verdict {
	for _, stage := range a.stages {
		start := time.Now()
		verdict, ok := stage.Lookup(ctx, claim)
		metrics.StageDuration.WithLabelValues(stage.Name()).Observe(time.Since(start).Seconds())

		if !ok {
			a.logger.Debug("stage missed", zap.String("stage", stage.Name()))
			continue
		}

		if verdict.Sources == nil {
			verdict.Sources = []model.Source{}
		}
		metrics.Verdicts.WithLabelValues(stage.Name(), string(verdict.Verdict)).Inc()
		a.logger.Info("claim analyzed",
			zap.String("stage", stage.Name()),
			zap.String("verdict", string(verdict.Verdict)),
			zap.String("confidence", verdict.Confidence))
		return verdict
	}

	metrics.Verdicts.WithLabelValues(StageNone, string(model.VerdictError)).Inc()
	a.logger.Info("no stage could verify claim")
	return model.ExhaustedVerdict()
}
