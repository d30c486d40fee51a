package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FININSIGHT_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("AI.Provider = %q, want gemini", cfg.AI.Provider)
	}
	if cfg.AI.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("AI.APIKeyEnv = %q", cfg.AI.APIKeyEnv)
	}
	if cfg.Store.Path == "" {
		t.Error("Store.Path empty")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[ai]\nprovider = \"claude\"\nmodel = \"claude-3-5-sonnet-20241022\"\n\n[store]\npath = \"/tmp/custom.db\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FININSIGHT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Provider != "claude" {
		t.Errorf("AI.Provider = %q, want claude", cfg.AI.Provider)
	}
	if cfg.Store.Path != "/tmp/custom.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}

	// Env beats file.
	t.Setenv("FININSIGHT_AI_PROVIDER", "gemini")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.Provider != "gemini" {
		t.Errorf("AI.Provider = %q, want env override gemini", cfg.AI.Provider)
	}
}

func TestResolveAPIKey(t *testing.T) {
	ai := AIConfig{Provider: "gemini", APIKey: "inline"}
	if key, err := ai.ResolveAPIKey(); err != nil || key != "inline" {
		t.Errorf("ResolveAPIKey = %q, %v", key, err)
	}

	t.Setenv("FININSIGHT_TEST_KEY", "from-env")
	ai = AIConfig{Provider: "gemini", APIKeyEnv: "FININSIGHT_TEST_KEY"}
	if key, err := ai.ResolveAPIKey(); err != nil || key != "from-env" {
		t.Errorf("ResolveAPIKey = %q, %v", key, err)
	}

	ai = AIConfig{Provider: "gemini", APIKeyEnv: "FININSIGHT_UNSET_KEY"}
	if _, err := ai.ResolveAPIKey(); err == nil {
		t.Error("ResolveAPIKey succeeded with no key available")
	}
}
