package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsSelectOllama(t *testing.T) {
	cfg := defaults()

	if cfg.SelectedProvider != "Ollama" {
		t.Errorf("unexpected default provider: %s", cfg.SelectedProvider)
	}
	provider, err := cfg.Provider()
	if err != nil {
		t.Fatalf("Provider failed: %v", err)
	}
	if provider.Type != "ollama" || provider.BaseURL != "http://localhost:11434" {
		t.Errorf("unexpected provider: %+v", provider)
	}
	if cfg.Agent.MaxIterations != 50 {
		t.Errorf("unexpected max iterations: %d", cfg.Agent.MaxIterations)
	}
}

func TestLoadFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llm_settings.yaml")
	content := `selected_provider: OpenAI
providers:
  OpenAI:
    type: openai
    base_url: https://example.test/v1
    default_model: gpt-4o
    requires_api_key: true
    api_key: sk-test
uav:
  base_url: http://sim:8000
  api_key: secret
agent:
  max_iterations: 12
  temperature: 0.5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	if err := loadFromFile(path, cfg); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.SelectedProvider != "OpenAI" {
		t.Errorf("unexpected provider: %s", cfg.SelectedProvider)
	}
	if cfg.UAV.BaseURL != "http://sim:8000" || cfg.UAV.APIKey != "secret" {
		t.Errorf("uav section not loaded: %+v", cfg.UAV)
	}
	if cfg.Agent.MaxIterations != 12 {
		t.Errorf("agent section not loaded: %+v", cfg.Agent)
	}

	provider, err := cfg.Provider()
	if err != nil {
		t.Fatalf("Provider failed: %v", err)
	}
	if provider.BaseURL != "https://example.test/v1" || provider.APIKey != "sk-test" {
		t.Errorf("unexpected provider: %+v", provider)
	}

	// Ollama profile from defaults should survive the merge.
	if _, ok := cfg.Providers["Ollama"]; !ok {
		t.Error("default Ollama profile lost after merge")
	}
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv("UAV_API_URL", "http://env-sim:9000")
	t.Setenv("UAV_API_KEY", "env-key")
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("LLM_MODEL", "gpt-4.1-mini")
	t.Setenv("LLM_API_KEY", "sk-env")

	cfg := defaults()
	cfg.applyEnv()

	if cfg.UAV.BaseURL != "http://env-sim:9000" || cfg.UAV.APIKey != "env-key" {
		t.Errorf("uav env overrides not applied: %+v", cfg.UAV)
	}
	if cfg.SelectedProvider != "OpenAI" {
		t.Errorf("provider env override not applied: %s", cfg.SelectedProvider)
	}

	provider, err := cfg.Provider()
	if err != nil {
		t.Fatalf("Provider failed: %v", err)
	}
	if provider.DefaultModel != "gpt-4.1-mini" || provider.APIKey != "sk-env" {
		t.Errorf("provider env overrides not applied: %+v", provider)
	}
}

func TestProviderRequiresAPIKey(t *testing.T) {
	cfg := defaults()
	cfg.SelectedProvider = "OpenAI"

	if _, err := cfg.Provider(); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestProviderUnknownName(t *testing.T) {
	cfg := defaults()
	cfg.SelectedProvider = "DoesNotExist"

	if _, err := cfg.Provider(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "llm_settings.yaml")

	cfg := defaults()
	cfg.UAV.BaseURL = "http://saved:8000"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := defaults()
	if err := loadFromFile(path, loaded); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.UAV.BaseURL != "http://saved:8000" {
		t.Errorf("round trip lost value: %s", loaded.UAV.BaseURL)
	}
}
