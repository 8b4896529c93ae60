package main

import (
	"cmp"
	"errors"
	"io/fs"
	"os"

	"github.com/fwojciec/docsite"
	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration file. Flags and
// environment variables take precedence over its values.
type FileConfig struct {
	docsite.Config `yaml:",inline"`

	Provider        docsite.ModelProvider `yaml:"provider"`
	SystemPrompt    string                `yaml:"system_prompt"`
	MaxCorpusTokens int                   `yaml:"max_corpus_tokens"`
	Extractor       string                `yaml:"extractor"`
	SiteURL         string                `yaml:"site_url"`
	DB              string                `yaml:"db"`
}

// LoadConfigFile reads path. An empty path yields an empty configuration.
func LoadConfigFile(path string) (*FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return &cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docsite.Errorf(docsite.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, docsite.Errorf(docsite.EINVALID, "parse config file %q: %v", path, err)
	}
	return &cfg, nil
}

// Settings is the resolved configuration of a run.
type Settings struct {
	Config          docsite.Config
	Provider        docsite.ModelProvider
	SystemPrompt    string
	MaxCorpusTokens int
	Extractor       string
	SiteURL         string
	DB              string
}

// ProviderLabel identifies the provider and model, e.g. "groq/llama-3.3-70b-versatile".
func (s Settings) ProviderLabel() string {
	return string(s.Provider.Type) + "/" + s.Provider.ModelName()
}

// apiKeyEnv names the environment variable holding each provider's key.
var apiKeyEnv = map[docsite.ProviderType]string{
	docsite.ProviderGroq:      "GROQ_API_KEY",
	docsite.ProviderAnthropic: "ANTHROPIC_API_KEY",
	docsite.ProviderOpenAI:    "OPENAI_API_KEY",
	docsite.ProviderGemini:    "GEMINI_API_KEY",
}

// Resolve merges flags, file and defaults in that order of precedence.
// getenv supplies provider API keys.
func (c *CLI) Resolve(file *FileConfig, getenv func(string) string) Settings {
	opt := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	provider := docsite.DefaultModelProvider()
	provider.Type = cmp.Or(docsite.ProviderType(c.Provider), file.Provider.Type, provider.Type)
	provider.Model = cmp.Or(c.Model, file.Provider.Model)
	provider.BaseURL = file.Provider.BaseURL
	provider.APIKey = cmp.Or(getenv("DOCSITE_API_KEY"), getenv(apiKeyEnv[provider.Type]), file.Provider.APIKey)

	return Settings{
		Config: docsite.NewConfig(docsite.ConfigOptions{
			BasePath:      opt(cmp.Or(c.BasePath, file.BasePath)),
			ContentPath:   opt(cmp.Or(c.ContentPath, file.ContentPath)),
			SearchAPIPath: opt(file.SearchAPIPath),
			AIChatAPIPath: opt(file.AIChatAPIPath),
		}),
		Provider:        provider,
		SystemPrompt:    file.SystemPrompt,
		MaxCorpusTokens: file.MaxCorpusTokens,
		Extractor:       cmp.Or(c.Extractor, file.Extractor, "goquery"),
		SiteURL:         file.SiteURL,
		DB:              cmp.Or(c.DB, file.DB),
	}
}
