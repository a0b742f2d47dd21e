package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFilePersistsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AIModel != "gpt-4" || cfg.VoiceEngine != "espeak-ng" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}

	data, rerr := os.ReadFile(path)
	if rerr != nil {
		t.Fatalf("defaults were not persisted: %v", rerr)
	}
	if !strings.Contains(string(data), `"ai_model": "gpt-4"`) {
		t.Fatalf("persisted config missing defaults:\n%s", data)
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("want ErrMalformed, got %v", err)
	}
	if cfg == nil || cfg.AIModel != "gpt-4" {
		t.Fatalf("malformed config must still yield usable defaults: %+v", cfg)
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"ai_model": "gpt-4o-mini", "voice_enabled": true, "commands": {"scan": {"enabled": false, "timeout": 15}}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Fatalf("file value lost: %q", cfg.AIModel)
	}
	if !cfg.VoiceEnabled {
		t.Fatalf("voice_enabled lost")
	}
	if cfg.Commands.Scan.Enabled || cfg.Commands.Scan.Timeout != 15 {
		t.Fatalf("nested command settings lost: %+v", cfg.Commands.Scan)
	}
	// Untouched sections keep their defaults.
	if cfg.Network.DefaultScanPorts != "1-1000" {
		t.Fatalf("defaults clobbered: %+v", cfg.Network)
	}
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"ai_model": "from-file"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("GENGAR_AI_MODEL", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AIModel != "from-env" {
		t.Fatalf("env override lost: %q", cfg.AIModel)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.AIProvider = "gemini" },
		func(c *Config) { c.AIModel = "" },
		func(c *Config) { c.SpeakTimeoutSec = 0 },
		func(c *Config) { c.Commands.Scan.Timeout = -1 },
		func(c *Config) { c.Network.MaxThreads = 0 },
	}
	for i, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("case %d: want validation error", i)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestOverrideDottedLookup(t *testing.T) {
	cfg := Default()
	cfg.Overrides = map[string]any{
		"scan": map[string]any{"aggressive": true, "retries": float64(3)},
	}

	v, ok := cfg.Override("scan.aggressive")
	if !ok || v != true {
		t.Fatalf("scan.aggressive: got %v ok=%t", v, ok)
	}
	if _, ok := cfg.Override("scan.missing"); ok {
		t.Fatalf("missing key must report !ok")
	}
	if _, ok := cfg.Override("nope.at.all"); ok {
		t.Fatalf("missing path must report !ok")
	}
}

func TestOverridesSurviveRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.Overrides = map[string]any{"scan": map[string]any{"aggressive": true}}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, ok := loaded.Override("scan.aggressive")
	if !ok || v != true {
		t.Fatalf("override lost on roundtrip: got %v ok=%t", v, ok)
	}
}
