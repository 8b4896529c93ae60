package docsite

// Default configuration values.
const (
	DefaultBasePath      = "/docs"
	DefaultContentPath   = "content/docs"
	DefaultSearchAPIPath = "/api/docs/search-index"
	DefaultAIChatAPIPath = "/api/docs/chat"
)

// Config locates the documentation content and the endpoints that serve it.
type Config struct {
	// BasePath prefixes every document URL (e.g., "/docs").
	BasePath string `json:"basePath" yaml:"base_path"`

	// ContentPath is the directory holding the documentation sources.
	ContentPath string `json:"contentPath" yaml:"content_path"`

	// SearchAPIPath is the endpoint serving the search index.
	// It also identifies the index in client-side caches.
	SearchAPIPath string `json:"searchApiPath" yaml:"search_api_path"`

	// AIChatAPIPath is the endpoint serving the chat stream.
	AIChatAPIPath string `json:"aiChatApiPath" yaml:"ai_chat_api_path"`
}

// ConfigOptions holds optional overrides for NewConfig.
// Nil fields take the default value.
type ConfigOptions struct {
	BasePath      *string
	ContentPath   *string
	SearchAPIPath *string
	AIChatAPIPath *string
}

// NewConfig returns a Config with defaults applied for unset options.
func NewConfig(opts ConfigOptions) Config {
	cfg := DefaultConfig()
	if opts.BasePath != nil {
		cfg.BasePath = *opts.BasePath
	}
	if opts.ContentPath != nil {
		cfg.ContentPath = *opts.ContentPath
	}
	if opts.SearchAPIPath != nil {
		cfg.SearchAPIPath = *opts.SearchAPIPath
	}
	if opts.AIChatAPIPath != nil {
		cfg.AIChatAPIPath = *opts.AIChatAPIPath
	}
	return cfg
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BasePath:      DefaultBasePath,
		ContentPath:   DefaultContentPath,
		SearchAPIPath: DefaultSearchAPIPath,
		AIChatAPIPath: DefaultAIChatAPIPath,
	}
}

// ProviderType identifies a hosted language model provider.
type ProviderType string

// Supported providers.
const (
	ProviderGroq      ProviderType = "groq"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderGemini    ProviderType = "gemini"
)

// Default models per provider.
const (
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"
	DefaultOpenAIModel    = "gpt-4o"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

// ModelProvider selects and configures the model used for chat.
type ModelProvider struct {
	Type    ProviderType `json:"providerType" yaml:"type"`
	Model   string       `json:"model,omitempty" yaml:"model"`
	BaseURL string       `json:"baseURL,omitempty" yaml:"base_url"`
	APIKey  string       `json:"-" yaml:"api_key"`
}

// DefaultModelProvider returns the provider used when none is configured.
func DefaultModelProvider() ModelProvider {
	return ModelProvider{Type: ProviderGroq, Model: DefaultGroqModel}
}

// ModelName returns the configured model, or the provider's default.
func (p ModelProvider) ModelName() string {
	if p.Model != "" {
		return p.Model
	}
	switch p.Type {
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderOpenAI:
		return DefaultOpenAIModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultGroqModel
	}
}

// Validate returns an error if the provider type is unknown.
func (p ModelProvider) Validate() error {
	switch p.Type {
	case ProviderGroq, ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		return nil
	case "":
		return Errorf(EINVALID, "model provider type required")
	default:
		return Errorf(EINVALID, "unknown model provider %q", p.Type)
	}
}
