package core

import "time"

// Provider kinds accepted in .reviewbuddy.yml. Anything else is a
// configuration error, not a silent default.
const (
	ProviderAPI    = "api"
	ProviderOllama = "ollama"
)

// RepoConfig represents the structure of the .reviewbuddy.yml file a target
// repository may carry. Unset keys keep their defaults; see DefaultRepoConfig.
type RepoConfig struct {
	// ModelProvider selects the review backend: "api" or "ollama".
	ModelProvider string `yaml:"model_provider"`

	API    APIProviderConfig    `yaml:"api"`
	Ollama OllamaProviderConfig `yaml:"ollama"`

	StaticAnalysis StaticAnalysisConfig `yaml:"static_analysis"`

	CommentFormat  string `yaml:"comment_format"`
	MaxSuggestions int    `yaml:"max_suggestions"`
}

// APIProviderConfig configures the hosted chat-completions provider.
type APIProviderConfig struct {
	Endpoint string `yaml:"api_endpoint"`
	Model    string `yaml:"model_name"`
	// APIKey may be left empty and supplied via the REVIEWBUDDY_API_KEY
	// environment variable instead.
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (c APIProviderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OllamaProviderConfig configures the locally hosted model daemon.
type OllamaProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"ollama_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the generation-request timeout as a duration.
func (c OllamaProviderConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StaticAnalysisConfig controls which linters run for which language.
type StaticAnalysisConfig struct {
	Enabled bool `yaml:"enabled"`
	// Tools maps a language tag to an ordered list of tool names.
	Tools             map[string][]string `yaml:"tools"`
	SeverityThreshold Severity            `yaml:"severity_threshold"`
}

// DefaultRepoConfig returns the configuration used when a repository carries
// no .reviewbuddy.yml, and the base onto which a user file is overlaid.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		ModelProvider: ProviderAPI,
		API: APIProviderConfig{
			Endpoint:       "https://api.openai.com/v1",
			Model:          "gpt-4o",
			TimeoutSeconds: 60,
		},
		Ollama: OllamaProviderConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2",
			TimeoutSeconds: 120,
		},
		StaticAnalysis: StaticAnalysisConfig{
			Enabled: true,
			Tools: map[string][]string{
				"python":     {"pylint", "flake8"},
				"javascript": {"eslint"},
				"typescript": {"eslint"},
			},
			SeverityThreshold: SeverityWarning,
		},
		CommentFormat:  "markdown",
		MaxSuggestions: 10,
	}
}
