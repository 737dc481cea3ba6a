package llm

import (
	"context"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Checker asks a language model to fact-check a claim
type Checker struct {
	provider Provider
}

// NewChecker creates a checker backed by provider
func NewChecker(provider Provider) *Checker {
	return &Checker{provider: provider}
}

// ProviderName returns the underlying provider name
func (c *Checker) ProviderName() string {
	return c.provider.Name()
}

// Attribution returns the source cited on verdicts from this checker
func (c *Checker) Attribution() model.Source {
	return c.provider.Attribution()
}

// Check returns the raw model text for the claim
func (c *Checker) Check(ctx context.Context, claim string) (string, error) {
	resp, err := c.provider.Complete(ctx, CompletionRequest{Prompt: BuildPrompt(claim)})
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Text == "" {
		return "", ErrEmptyResponse
	}
	return resp.Text, nil
}

// Classify maps a model response onto a verdict by its leading word.
// Anything other than a "true" or "false" prefix is UNVERIFIED.
func Classify(response string) model.VerdictKind {
	lower := strings.ToLower(response)
	switch {
	case strings.HasPrefix(lower, "true"):
		return model.VerdictTrue
	case strings.HasPrefix(lower, "false"):
		return model.VerdictFalse
	default:
		return model.VerdictUnverified
	}
}
