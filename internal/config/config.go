// Package config loads the GENGAR configuration file and applies
// environment overrides. The schema is explicit; the only dynamic part is
// the Overrides map reserved for per-command settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
)

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderYandex Provider = "yandex"
)

// ErrMalformed reports a config file that exists but cannot be parsed.
// Callers are expected to fall back to defaults and keep going.
var ErrMalformed = errors.New("malformed config file")

type ScanCommand struct {
	Enabled bool `json:"enabled"`
	Timeout int  `json:"timeout"`
}

type VPNCommand struct {
	Enabled       bool `json:"enabled"`
	CheckInterval int  `json:"check_interval"`
}

type FirewallCommand struct {
	Enabled bool   `json:"enabled"`
	LogPath string `json:"log_path"`
}

type Commands struct {
	Scan     ScanCommand     `json:"scan"`
	VPN      VPNCommand      `json:"vpn"`
	Firewall FirewallCommand `json:"firewall"`
}

type Network struct {
	DefaultScanPorts string `json:"default_scan_ports"`
	ScanTimeout      int    `json:"scan_timeout"`
	MaxThreads       int    `json:"max_threads"`
}

type Security struct {
	AllowedIPs  []string `json:"allowed_ips"`
	BlockedIPs  []string `json:"blocked_ips"`
	VPNRequired bool     `json:"vpn_required"`
}

type Config struct {
	AIModel          string   `json:"ai_model" env:"GENGAR_AI_MODEL"`
	AIProvider       Provider `json:"ai_provider" env:"GENGAR_AI_PROVIDER"`
	OpenAIAPIKey     string   `json:"openai_api_key" env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string   `json:"openai_base_url" env:"OPENAI_BASE_URL"`
	YandexOAuthToken string   `json:"yandex_oauth_token" env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string   `json:"yandex_folder_id" env:"YANDEX_FOLDER_ID"`

	SystemPromptPath string `json:"system_prompt_path" env:"GENGAR_SYSTEM_PROMPT_PATH"`

	VoiceEnabled    bool    `json:"voice_enabled" env:"GENGAR_VOICE_ENABLED"`
	VoiceEngine     string  `json:"voice_engine" env:"GENGAR_VOICE_ENGINE"`
	VoiceRate       int     `json:"voice_rate"`
	VoiceVolume     float64 `json:"voice_volume"`
	SpeakTimeoutSec int     `json:"speak_timeout_sec"`

	LogLevel       string `json:"log_level" env:"GENGAR_LOG_LEVEL"`
	LogDir         string `json:"log_dir" env:"GENGAR_LOG_DIR"`
	CommandLogPath string `json:"command_log_path" env:"GENGAR_COMMAND_LOG_PATH"`
	SummaryDir     string `json:"summary_dir" env:"GENGAR_SUMMARY_DIR"`

	// Cron spec for the periodic session report; empty disables it.
	ReportSchedule string `json:"report_schedule" env:"GENGAR_REPORT_SCHEDULE"`

	Commands Commands `json:"commands"`
	Network  Network  `json:"network"`
	Security Security `json:"security"`

	// Overrides holds genuinely dynamic per-command settings that have no
	// place in the fixed schema. Read with Override(key).
	Overrides map[string]any `json:"overrides,omitempty"`
}

// Default returns the configuration GENGAR runs with when no file exists.
func Default() *Config {
	return &Config{
		AIModel:          "gpt-4",
		AIProvider:       ProviderOpenAI,
		SystemPromptPath: "prompts/system_prompt.txt",
		VoiceEnabled:     false,
		VoiceEngine:      "espeak-ng",
		VoiceRate:        150,
		VoiceVolume:      0.9,
		SpeakTimeoutSec:  10,
		LogLevel:         "INFO",
		LogDir:           "logs",
		CommandLogPath:   "logs/commands.jsonl",
		SummaryDir:       "logs",
		ReportSchedule:   "0 21 * * *",
		Commands: Commands{
			Scan:     ScanCommand{Enabled: true, Timeout: 30},
			VPN:      VPNCommand{Enabled: true, CheckInterval: 60},
			Firewall: FirewallCommand{Enabled: true, LogPath: "/var/log/firewall.log"},
		},
		Network: Network{
			DefaultScanPorts: "1-1000",
			ScanTimeout:      5,
			MaxThreads:       100,
		},
	}
}

// Load reads the config file at path, persisting defaults when the file is
// missing, and then applies environment overrides. A malformed file is
// reported via an error wrapping ErrMalformed together with a usable
// default config, so the caller can warn and continue.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := json.Unmarshal(data, cfg); uerr != nil {
			cfg = Default()
			if perr := parseEnv(cfg); perr != nil {
				return nil, perr
			}
			return cfg, fmt.Errorf("%w: %s: %v", ErrMalformed, path, uerr)
		}
	case os.IsNotExist(err):
		if serr := Save(path, cfg); serr != nil {
			if perr := parseEnv(cfg); perr != nil {
				return nil, perr
			}
			return cfg, fmt.Errorf("failed to persist default config: %w", serr)
		}
	default:
		if perr := parseEnv(cfg); perr != nil {
			return nil, perr
		}
		return cfg, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse env overrides: %w", err)
	}
	return nil
}

// Save writes cfg as indented JSON, creating parent directories.
func Save(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to ensure config dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the fields every component relies on at startup.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case ProviderOpenAI, ProviderYandex:
	default:
		return fmt.Errorf("unknown ai provider: %q", c.AIProvider)
	}
	if c.AIModel == "" {
		return errors.New("ai_model must not be empty")
	}
	if c.SpeakTimeoutSec <= 0 {
		return fmt.Errorf("speak_timeout_sec must be positive, got %d", c.SpeakTimeoutSec)
	}
	if c.Commands.Scan.Timeout <= 0 {
		return fmt.Errorf("commands.scan.timeout must be positive, got %d", c.Commands.Scan.Timeout)
	}
	if c.Network.MaxThreads <= 0 {
		return fmt.Errorf("network.max_threads must be positive, got %d", c.Network.MaxThreads)
	}
	return nil
}

// Override resolves a dotted key inside the dynamic Overrides map,
// e.g. "scan.aggressive". Returns false when any path segment is absent.
func (c *Config) Override(key string) (any, bool) {
	var cur any = c.Overrides
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
