package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	APIPrefix   string `json:"api_prefix"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// BigQuery (warehouse)
	GCPProjectID                 string        `json:"gcp_project_id"`
	GoogleApplicationCredentials string        `json:"google_application_credentials"`
	BigQueryLocation             string        `json:"bigquery_location"`
	QueryTimeout                 time.Duration `json:"-"`

	// Postgres (training store)
	PostgresURL string `json:"postgres_url"`

	// LLM
	LLMProvider      string `json:"llm_provider"` // "anthropic" | "ollama"
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for custom proxy
	AnthropicModel   string `json:"anthropic_model"`
	OllamaHost       string `json:"ollama_host"`
	OllamaModel      string `json:"ollama_model"`

	// Pipeline
	EnrichmentTimeout  time.Duration `json:"-"`
	InsightMode        string        `json:"insight_mode"` // "local" | "llm"
	EnableAuditLogging bool          `json:"enable_audit_logging"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		APIPrefix:          DefaultAPIPrefix,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		BigQueryLocation:   DefaultBigQueryLocation,
		QueryTimeout:       DefaultQueryTimeout,
		PostgresURL:        DefaultPostgresURL,
		LLMProvider:        DefaultLLMProvider,
		OllamaHost:         DefaultOllamaHost,
		OllamaModel:        DefaultOllamaModel,
		EnrichmentTimeout:  DefaultEnrichmentTimeout,
		InsightMode:        DefaultInsightMode,
		EnableAuditLogging: true,
	}

	// Load from JSON config file if specified
	if path := getEnv("AICOCKPIT_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("AICOCKPIT_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("AICOCKPIT_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("AICOCKPIT_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("AICOCKPIT_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("AICOCKPIT_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("GCP_PROJECT_ID", ""); v != "" {
		cfg.GCPProjectID = v
	}
	if v := getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""); v != "" {
		cfg.GoogleApplicationCredentials = v
	}
	if v := getEnv("BIGQUERY_LOCATION", ""); v != "" {
		cfg.BigQueryLocation = v
	}
	if v := getEnv("POSTGRES_URL", ""); v != "" {
		cfg.PostgresURL = v
	}
	if v := getEnv("LLM_PROVIDER", ""); v != "" {
		cfg.LLMProvider = v
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("ANTHROPIC_MODEL", ""); v != "" {
		cfg.AnthropicModel = v
	}
	if v := getEnv("OLLAMA_HOST", ""); v != "" {
		cfg.OllamaHost = v
	}
	if v := getEnv("OLLAMA_MODEL", ""); v != "" {
		cfg.OllamaModel = v
	}
	if v := getEnv("ENRICHMENT_TIMEOUT_SECONDS", ""); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			cfg.EnrichmentTimeout = time.Duration(s) * time.Second
		}
	}
	if v := getEnv("INSIGHT_MODE", ""); v != "" {
		cfg.InsightMode = v
	}
	if v := getEnv("ENABLE_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = v == "true" || v == "1"
	}
	if v := getEnv("QUERY_TIMEOUT_SECONDS", ""); v != "" {
		if s, err := strconv.Atoi(v); err == nil && s > 0 {
			cfg.QueryTimeout = time.Duration(s) * time.Second
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
