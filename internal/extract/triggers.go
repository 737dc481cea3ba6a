package extract

import "strings"

// TriggerMatcher detects phrases that mark a claim as recent news
type TriggerMatcher struct {
	phrases []string
}

// NewTriggerMatcher creates a matcher with the default news phrases
func NewTriggerMatcher() *TriggerMatcher {
	return &TriggerMatcher{
		phrases: []string{
			"today", "yesterday", "this week", "market", "election",
			"downgrade", "days ago", "last month", "breaking news",
		},
	}
}

// Match reports the first phrase contained in the lower-cased claim
func (m *TriggerMatcher) Match(claimLower string) (string, bool) {
	for _, phrase := range m.phrases {
		if strings.Contains(claimLower, phrase) {
			return phrase, true
		}
	}
	return "", false
}
