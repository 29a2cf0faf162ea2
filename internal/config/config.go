package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	configFileVariable = "SPEND_CONFIG_FILE"
	defaultOllamaURL   = "http://localhost:11434"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort   string
	LogLevel   string
	CORSOrigin string

	LLM LLMConfig

	StrictCategories bool
	OperatorWorkers  int

	// ChatSessionIdle is how long an untouched chat session survives. Zero
	// keeps sessions until they are closed.
	ChatSessionIdle time.Duration
}

// LLMConfig selects and tunes the language model used by the parse pipeline.
type LLMConfig struct {
	Provider    string
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	Timeout     time.Duration
}

// In all cases the default behavior should be for the docker compose setup
// with a local ollama.
var defaults = map[string]any{
	"postgres_address":     "localhost",
	"postgres_port":        "5433",
	"postgres_db":          "postgres",
	"postgres_username":    "postgres",
	"postgres_password":    "testpassword",
	"http_port":            "9446",
	"log_level":            "info",
	"cors_origin":          "http://localhost:3000",
	"llm_provider":         "ollama",
	"llm_base_url":         "",
	"llm_model":            "llama3.1:8b",
	"llm_api_key":          "",
	"llm_temperature":      0.1,
	"llm_timeout":          "60s",
	"ai_strict_categories": true,
	"operator_workers":     1,
	"chat_session_idle":    "30m",
}

// ProcessEnvironmentVariables builds the Config from defaults, an optional
// YAML file named by SPEND_CONFIG_FILE, a .env file and the process environment,
// in increasing order of precedence.
func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path := os.Getenv(configFileVariable); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, known := defaults[key]; !known {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (*Config, error) {
	cfg := Config{
		PostgresAddress:  k.String("postgres_address"),
		PostgresPort:     k.String("postgres_port"),
		PostgresDB:       k.String("postgres_db"),
		PostgresUsername: k.String("postgres_username"),
		PostgresPassword: k.String("postgres_password"),
		HTTPPort:         k.String("http_port"),
		LogLevel:         k.String("log_level"),
		CORSOrigin:       k.String("cors_origin"),
		LLM: LLMConfig{
			Provider:    strings.ToLower(k.String("llm_provider")),
			BaseURL:     k.String("llm_base_url"),
			Model:       k.String("llm_model"),
			APIKey:      k.String("llm_api_key"),
			Temperature: k.Float64("llm_temperature"),
			Timeout:     k.Duration("llm_timeout"),
		},
		StrictCategories: k.Bool("ai_strict_categories"),
		OperatorWorkers:  k.Int("operator_workers"),
		ChatSessionIdle:  k.Duration("chat_session_idle"),
	}

	// Only ollama has a local default; hosted providers use their SDK's endpoint.
	if cfg.LLM.BaseURL == "" && (cfg.LLM.Provider == "ollama" || cfg.LLM.Provider == "") {
		cfg.LLM.BaseURL = defaultOllamaURL
	}

	if cfg.LLM.Timeout <= 0 {
		return nil, fmt.Errorf("config: llm_timeout must be a positive duration, got %q", k.String("llm_timeout"))
	}
	if cfg.ChatSessionIdle < 0 {
		return nil, fmt.Errorf("config: chat_session_idle must not be negative, got %q", k.String("chat_session_idle"))
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return nil, fmt.Errorf("config: llm_temperature %v out of range [0, 2]", cfg.LLM.Temperature)
	}

	return &cfg, nil
}

// PostgresURL is the lib/pq connection string for the configured database.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
