package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProviderConfig describes one LLM provider profile. The type selects
// the adapter: "ollama" talks to a local model server through
// langchaingo, "openai" and "openai-compatible" go through the OpenAI
// client with a configurable base URL.
type ProviderConfig struct {
	Type           string   `yaml:"type"`
	BaseURL        string   `yaml:"base_url"`
	DefaultModel   string   `yaml:"default_model"`
	Models         []string `yaml:"models"`
	RequiresAPIKey bool     `yaml:"requires_api_key"`
	APIKey         string   `yaml:"api_key"`
}

type UAVConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

type AgentConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Temperature   float32 `yaml:"temperature"`
}

type Config struct {
	SelectedProvider string                    `yaml:"selected_provider"`
	Providers        map[string]ProviderConfig `yaml:"providers"`
	UAV              UAVConfig                 `yaml:"uav"`
	Agent            AgentConfig               `yaml:"agent"`
}

func defaults() *Config {
	return &Config{
		SelectedProvider: "Ollama",
		Providers: map[string]ProviderConfig{
			"Ollama": {
				Type:         "ollama",
				BaseURL:      "http://localhost:11434",
				DefaultModel: "llama2",
			},
			"OpenAI": {
				Type:           "openai",
				BaseURL:        "https://api.openai.com/v1",
				DefaultModel:   "gpt-4o-mini",
				Models:         []string{"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini", "gpt-3.5-turbo"},
				RequiresAPIKey: true,
			},
		},
		UAV: UAVConfig{
			BaseURL: "http://localhost:8000",
		},
		Agent: AgentConfig{
			MaxIterations: 50,
			Temperature:   0.1,
		},
	}
}

// Load reads llm_settings.yaml from the user config dir and then the
// working directory, the latter taking precedence, and finally applies
// environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := defaults()

	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".uav-agent", "llm_settings.yaml")
		if _, err := os.Stat(userPath); err == nil {
			if err := loadFromFile(userPath, cfg); err != nil {
				return nil, fmt.Errorf("load user config: %w", err)
			}
		}
	}

	localPath := "llm_settings.yaml"
	if _, err := os.Stat(localPath); err == nil {
		if err := loadFromFile(localPath, cfg); err != nil {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv lets environment variables win over file values, the way
// the rest of the toolchain expects secrets to arrive.
func (c *Config) applyEnv() {
	if v := os.Getenv("UAV_API_URL"); v != "" {
		c.UAV.BaseURL = v
	}
	if v := os.Getenv("UAV_API_KEY"); v != "" {
		c.UAV.APIKey = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.SelectedProvider = v
	}

	provider, ok := c.Providers[c.SelectedProvider]
	if !ok {
		return
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		provider.DefaultModel = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		provider.BaseURL = v
	}
	if v := firstEnv("LLM_API_KEY", "OPENAI_API_KEY"); v != "" {
		provider.APIKey = v
	}
	c.Providers[c.SelectedProvider] = provider
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// Provider returns the selected provider profile.
func (c *Config) Provider() (ProviderConfig, error) {
	provider, ok := c.Providers[c.SelectedProvider]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("unknown LLM provider %q", c.SelectedProvider)
	}
	if provider.RequiresAPIKey && provider.APIKey == "" {
		return ProviderConfig{}, fmt.Errorf("provider %q requires an API key (set LLM_API_KEY)", c.SelectedProvider)
	}
	return provider, nil
}

// Save writes the settings back to the working directory.
func (c *Config) Save(path string) error {
	if path == "" {
		path = "llm_settings.yaml"
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
