package pipeline

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Stage is one lookup source in the fallback chain. A stage that has
// nothing to say, or whose dependency failed, returns false.
type Stage interface {
	Name() string
	Lookup(ctx context.Context, claim string) (model.Verdict, bool)
}

// Stage names used in logs and metrics
const (
	StageKnowledge = "knowledge"
	StageNews      = "news"
	StageLLM       = "llm"
	StageGraph     = "kgraph"
	StageNone      = "none"
)

// Rand supplies the cosmetic confidence values
type Rand interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int {
	return rand.Intn(n)
}

// DefaultRand returns the process-wide random source
func DefaultRand() Rand {
	return defaultRand{}
}

// randomPercent formats a value in [lo, hi] as a percentage string
func randomPercent(r Rand, lo, hi int) string {
	return fmt.Sprintf("%d%%", lo+r.IntN(hi-lo+1))
}
