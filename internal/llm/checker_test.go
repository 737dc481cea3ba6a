package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ppiankov/claimcheck/internal/model"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name       string
	available  bool
	response   *CompletionResponse
	err        error
	lastPrompt string
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.lastPrompt = req.Prompt
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func (m *MockProvider) Attribution() model.Source {
	return model.Source{Title: "Source: Mock", URL: "https://mock.example/"}
}

func TestChecker_Check_Success(t *testing.T) {
	mock := &MockProvider{
		name:     "mock",
		response: &CompletionResponse{Text: "TRUE. Water boils at 100C at sea level."},
	}
	checker := NewChecker(mock)

	text, err := checker.Check(context.Background(), "Water boils at 100C")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if text != "TRUE. Water boils at 100C at sea level." {
		t.Errorf("Expected raw response, got %q", text)
	}
	if !strings.Contains(mock.lastPrompt, "Statement: 'Water boils at 100C'") {
		t.Errorf("Expected claim embedded verbatim in prompt, got %q", mock.lastPrompt)
	}
	if checker.ProviderName() != "mock" || checker.Attribution().Title != "Source: Mock" {
		t.Error("Expected provider metadata to pass through")
	}
}

func TestChecker_Check_ProviderError(t *testing.T) {
	checker := NewChecker(&MockProvider{err: errors.New("quota exceeded")})

	if _, err := checker.Check(context.Background(), "x"); err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestChecker_Check_EmptyResponse(t *testing.T) {
	checker := NewChecker(&MockProvider{response: &CompletionResponse{Text: ""}})

	_, err := checker.Check(context.Background(), "x")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse, got %v", err)
	}

	checker = NewChecker(&MockProvider{})
	if _, err := checker.Check(context.Background(), "x"); !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("Expected ErrEmptyResponse for nil response, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		response string
		want     model.VerdictKind
	}{
		{"TRUE. The Earth orbits the Sun.", model.VerdictTrue},
		{"true - obviously", model.VerdictTrue},
		{"False. The moon is not made of cheese.", model.VerdictFalse},
		{"UNVERIFIED. There is no reliable data.", model.VerdictUnverified},
		{"I think this is TRUE", model.VerdictUnverified},
		{"", model.VerdictUnverified},
		{"Truthfully, nobody knows", model.VerdictTrue}, // prefix match only
	}

	for _, tt := range tests {
		if got := Classify(tt.response); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.response, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Paris is the capital of France")

	for _, want := range []string{"TRUE, FALSE, or UNVERIFIED", "one-sentence explanation", "'Paris is the capital of France'"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q, got %q", want, prompt)
		}
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{Config{Provider: "gemini", APIKey: "k"}, "gemini", false, false},
		{Config{Provider: "Google", APIKey: "k"}, "gemini", false, false},
		{Config{Provider: "openai", APIKey: "k"}, "openai", false, false},
		{Config{Provider: "claude", APIKey: "k"}, "anthropic", false, false},
		{Config{Provider: "ollama"}, "ollama", false, false},
		{Config{Provider: ""}, "", true, false},
		{Config{Provider: "gemini"}, "", false, true},
		{Config{Provider: "mystery", APIKey: "k"}, "", false, true},
	}

	for _, tt := range tests {
		p, err := NewProvider(tt.config)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewProvider(%q) expected error", tt.config.Provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewProvider(%q) unexpected error: %v", tt.config.Provider, err)
			continue
		}
		if tt.wantNil {
			if p != nil {
				t.Errorf("NewProvider(%q) expected nil provider", tt.config.Provider)
			}
			continue
		}
		if p.Name() != tt.wantName {
			t.Errorf("NewProvider(%q).Name() = %q, want %q", tt.config.Provider, p.Name(), tt.wantName)
		}
	}
}

func TestGeminiProvider_Attribution(t *testing.T) {
	p, err := NewGeminiProvider(Config{APIKey: "k"})
	if err != nil {
		t.Fatalf("NewGeminiProvider failed: %v", err)
	}
	src := p.Attribution()
	if src.Title != "Source: Google Gemini" || src.URL != "https://ai.google/" {
		t.Errorf("Unexpected attribution %+v", src)
	}
}
