package model

import "time"

// Config is the complete claimcheck configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	News      NewsConfig      `yaml:"news" mapstructure:"news"`
	KGraph    KGraphConfig    `yaml:"kgraph" mapstructure:"kgraph"`
	Knowledge KnowledgeConfig `yaml:"knowledge" mapstructure:"knowledge"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig controls the inbound HTTP endpoint
type ServerConfig struct {
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	CORSOrigins  []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	RateLimit    float64       `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second per client, 0 disables
	RateBurst    int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// HTTPConfig controls outbound calls to the news and knowledge graph APIs
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
}

// LLMConfig selects the generative language model
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // gemini, openai, anthropic, ollama
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// NewsConfig configures the news search API
type NewsConfig struct {
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// KGraphConfig configures the knowledge graph search API
type KGraphConfig struct {
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// KnowledgeConfig points at optional extra facts
type KnowledgeConfig struct {
	File string `yaml:"file,omitempty" mapstructure:"file"`
}

// LogConfig configures the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":5000",
			CORSOrigins:  []string{"*"},
			RateLimit:    0,
			RateBurst:    10,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
		},
		HTTP: HTTPConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "claimcheck/0.1 (+https://github.com/ppiankov/claimcheck)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Provider:  "gemini",
			Timeout:   30,
			MaxTokens: 256,
		},
		News: NewsConfig{
			BaseURL: "https://newsapi.org/v2",
		},
		KGraph: KGraphConfig{
			BaseURL: "https://kgsearch.googleapis.com/v1",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
