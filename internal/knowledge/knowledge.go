// Package knowledge holds the hand-authored fact table consulted before any
// external lookup.
package knowledge

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
	"gopkg.in/yaml.v3"
)

// Fact is a static claim record. A claim matches when it contains every key.
type Fact struct {
	Keys        []string       `yaml:"keys"`
	Verdict     string         `yaml:"verdict"`
	Explanation string         `yaml:"explanation"`
	Sources     []model.Source `yaml:"sources"`
}

// Base is an ordered, immutable list of facts
type Base struct {
	facts []Fact
}

// BuiltinFacts returns the facts compiled into the binary
func BuiltinFacts() []Fact {
	return []Fact{
		{
			Keys:        []string{"nepal", "parliament", "singha durbar", "burnt", "fire"},
			Verdict:     string(model.VerdictFalse),
			Explanation: "This is a common piece of misinformation. Photos of Singha Durbar burning are real but are from a major fire in 1973. While the parliament is housed there, it did not burn down in recent protests. This is a case of real images being used in a false context.",
			Sources: []model.Source{
				{Title: "The 1973 Singha Durbar Fire - The Record", URL: "https://www.recordnepal.com/the-1973-singha-durbar-fire"},
			},
		},
	}
}

// New creates a knowledge base from the given facts. Keys are lower-cased
// and the slice is copied so callers cannot mutate the table afterwards.
func New(facts []Fact) *Base {
	copied := make([]Fact, 0, len(facts))
	for _, f := range facts {
		keys := make([]string, 0, len(f.Keys))
		for _, k := range f.Keys {
			keys = append(keys, strings.ToLower(k))
		}
		sources := make([]model.Source, len(f.Sources))
		copy(sources, f.Sources)

		copied = append(copied, Fact{
			Keys:        keys,
			Verdict:     f.Verdict,
			Explanation: f.Explanation,
			Sources:     sources,
		})
	}
	return &Base{facts: copied}
}

// Load builds the knowledge base from the built-in facts followed by the
// facts in path. An empty path yields only the built-in facts.
func Load(path string) (*Base, error) {
	facts := BuiltinFacts()
	if path == "" {
		return New(facts), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read facts file: %w", err)
	}

	var extra []Fact
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse facts file: %w", err)
	}

	for i := range extra {
		if err := normalizeFact(&extra[i]); err != nil {
			return nil, fmt.Errorf("fact %d in %s: %w", i, path, err)
		}
	}

	return New(append(facts, extra...)), nil
}

// normalizeFact upper-cases the verdict and rejects facts that would match
// every claim or carry an unknown verdict
func normalizeFact(f *Fact) error {
	if len(f.Keys) == 0 {
		return fmt.Errorf("no keys")
	}
	for _, k := range f.Keys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("blank key")
		}
	}

	f.Verdict = strings.ToUpper(strings.TrimSpace(f.Verdict))
	switch model.VerdictKind(f.Verdict) {
	case model.VerdictTrue, model.VerdictFalse, model.VerdictUnverified, model.VerdictError:
	default:
		return fmt.Errorf("unknown verdict %q", f.Verdict)
	}
	return nil
}

// Len returns the number of facts
func (b *Base) Len() int {
	return len(b.facts)
}

// Lookup returns the verdict of the first fact whose keys all occur in
// claimLower. Matching is plain substring containment, order-independent.
func (b *Base) Lookup(claimLower string) (model.Verdict, bool) {
	for _, fact := range b.facts {
		if !containsAll(claimLower, fact.Keys) {
			continue
		}

		sources := make([]model.Source, len(fact.Sources))
		copy(sources, fact.Sources)

		return model.Verdict{
			Verdict:     model.ParseVerdictKind(fact.Verdict),
			Explanation: fact.Explanation,
			Sources:     sources,
			Confidence:  model.ConfidenceKnowledgeBase,
		}, true
	}
	return model.Verdict{}, false
}

func containsAll(s string, keys []string) bool {
	for _, k := range keys {
		if !strings.Contains(s, k) {
			return false
		}
	}
	return true
}
