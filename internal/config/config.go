package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultMaxBodySize int64 = 1 * 1024 * 1024 // 1MB
	DefaultConfigPath        = "config.yaml"
	DefaultEnvPath           = ".env"
	DefaultLLMTimeout        = 30 * time.Second
)

// ProviderConfig describes the LLM endpoint replies are generated with.
// It is read once at startup and never modified afterwards.
type ProviderConfig struct {
	Backend        string        `yaml:"backend"`         // http, openai (default: http)
	Dialect        string        `yaml:"dialect"`         // chat, generative (default: chat)
	BaseURL        string        `yaml:"base_url"`        // e.g. https://api.groq.com/openai/v1
	CompletionPath string        `yaml:"completion_path"` // e.g. /chat/completions; {model} is expanded
	Model          string        `yaml:"model"`
	APIKeyHeader   string        `yaml:"api_key_header"` // Authorization, x-goog-api-key, ...
	APIKey         string        `yaml:"api_key"`        // From YAML or Env
	Temperature    bool          `yaml:"temperature"`    // Send temperature 0.7 (chat dialect only)
	Timeout        time.Duration `yaml:"timeout"`
}

// URL returns the full completion endpoint with {model} expanded.
func (p ProviderConfig) URL() string {
	path := strings.ReplaceAll(p.CompletionPath, ModelPlaceholder, p.Model)
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(p.BaseURL, "/") + path
}

// Rotation configures lumberjack for file log outputs
type Rotation struct {
	MaxSize    int  `yaml:"max_size"`    // Megabytes
	MaxBackups int  `yaml:"max_backups"` // Number of old files to keep
	MaxAge     int  `yaml:"max_age"`     // Days to keep
	Compress   bool `yaml:"compress"`
}

// Config holds the configuration for the email writer service
type Config struct {
	Log struct {
		Level    string `yaml:"level"`  // DEBUG, INFO, WARN, ERROR
		Format   string `yaml:"format"` // text, json
		Output   string `yaml:"output"` // stdout, stderr, /path/to/file
		Rotation Rotation `yaml:"rotation"`
	} `yaml:"log"`

	Server struct {
		Port         int           `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		MaxBodySize  int64         `yaml:"max_body_size"`
		AllowOrigins []string      `yaml:"allow_origins"`
	} `yaml:"server"`

	LLM ProviderConfig `yaml:"llm"`
}

// GetLogLevel returns the slog.Level based on Log.Level string
func (c *Config) GetLogLevel() slog.Level {
	switch strings.ToUpper(c.Log.Level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads configuration from YAML file and supplements with environment variables.
// A .env file in the working directory, if present, is loaded into the environment first
// without overriding variables that are already set.
func LoadConfig() *Config {
	if err := godotenv.Load(getEnv("ENV_FILE", DefaultEnvPath)); err == nil {
		slog.Info("env file loaded")
	}

	cfg := &Config{}

	// Set some defaults before loading
	cfg.Log.Level = "INFO"
	cfg.Log.Format = "text"
	cfg.Log.Output = "stdout"
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 60 * time.Second
	cfg.Server.MaxBodySize = DefaultMaxBodySize
	cfg.Server.AllowOrigins = []string{"*"}
	cfg.LLM.Backend = BackendHTTP
	cfg.LLM.Dialect = DialectChat
	cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	cfg.LLM.CompletionPath = "/chat/completions"
	cfg.LLM.Model = "llama-3.3-70b-versatile"
	cfg.LLM.APIKeyHeader = "Authorization"
	cfg.LLM.Timeout = DefaultLLMTimeout

	// Log Rotation defaults
	cfg.Log.Rotation.MaxSize = 100
	cfg.Log.Rotation.MaxBackups = 10
	cfg.Log.Rotation.MaxAge = 7
	cfg.Log.Rotation.Compress = true

	// Try to load from YAML
	configPath := getEnv("CONFIG_PATH", DefaultConfigPath)
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			slog.Error("unmarshal config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Info("config loaded", "path", configPath)
	} else {
		if !os.IsNotExist(err) {
			slog.Error("read config failed", "error", err, "path", configPath)
			os.Exit(1)
		}
		slog.Info("config not found, using defaults", "path", configPath)
	}

	// Always supplement/override with environment variables for secrets and critical items
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.APIKeyHeader = getEnv("LLM_API_KEY_HEADER", cfg.LLM.APIKeyHeader)
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.CompletionPath = getEnv("LLM_COMPLETION_PATH", cfg.LLM.CompletionPath)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Dialect = getEnv("LLM_DIALECT", cfg.LLM.Dialect)
	cfg.LLM.Backend = getEnv("LLM_BACKEND", cfg.LLM.Backend)
	if d := getEnvDuration("LLM_TIMEOUT", 0); d > 0 {
		cfg.LLM.Timeout = d
	}

	if envPort := getEnvInt("PORT", 0); envPort != 0 {
		cfg.Server.Port = envPort
	}
	if envLogLevel := os.Getenv("LOG_LEVEL"); envLogLevel != "" {
		cfg.Log.Level = envLogLevel
	}
	if envLogFormat := os.Getenv("LOG_FORMAT"); envLogFormat != "" {
		cfg.Log.Format = envLogFormat
	}
	if envLogOutput := getEnv("LOG_OUTPUT", ""); envLogOutput != "" {
		cfg.Log.Output = envLogOutput
	}
	if envLogMaxSize := getEnvInt("LOG_MAX_SIZE", 0); envLogMaxSize != 0 {
		cfg.Log.Rotation.MaxSize = envLogMaxSize
	}
	if envLogMaxBackups := getEnvInt("LOG_MAX_BACKUPS", 0); envLogMaxBackups != 0 {
		cfg.Log.Rotation.MaxBackups = envLogMaxBackups
	}
	if envLogMaxAge := getEnvInt("LOG_MAX_AGE", 0); envLogMaxAge != 0 {
		cfg.Log.Rotation.MaxAge = envLogMaxAge
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.LLM.APIKey == "" {
		errs = append(errs, "LLM_API_KEY is required")
	}
	if c.LLM.BaseURL == "" {
		errs = append(errs, "llm.base_url is required")
	}
	if c.LLM.Model == "" {
		errs = append(errs, "llm.model is required")
	}
	if c.LLM.APIKeyHeader == "" {
		errs = append(errs, "llm.api_key_header is required")
	}

	switch c.LLM.Dialect {
	case DialectChat, DialectGenerative:
	default:
		errs = append(errs, fmt.Sprintf("unknown llm dialect: %q", c.LLM.Dialect))
	}

	switch c.LLM.Backend {
	case BackendHTTP:
	case BackendOpenAI:
		if c.LLM.Dialect != DialectChat {
			errs = append(errs, "llm backend openai requires the chat dialect")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown llm backend: %q", c.LLM.Backend))
	}

	if c.LLM.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("invalid llm timeout: %v", c.LLM.Timeout))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid server port: %d", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
