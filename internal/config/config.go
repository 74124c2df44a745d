package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	Server  Server  `mapstructure:"server"`
	Catalog Catalog `mapstructure:"catalog"`
	Chat    Chat    `mapstructure:"chat"`
	Admin   Admin   `mapstructure:"admin"`
	PostHog PostHog `mapstructure:"posthog"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	SiteName   string `mapstructure:"site_name"`
	BaseURL    string `mapstructure:"base_url"`
	ConfigFile string `mapstructure:"config_file"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	TemplateDir     string        `mapstructure:"template_dir"`
	CORS            CORS          `mapstructure:"cors"`
	RateLimit       RateLimit     `mapstructure:"rate_limit"`
}

// CORS holds cross-origin settings for the JSON API
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimit holds the request throttle settings
type RateLimit struct {
	Enabled bool `mapstructure:"enabled"`
	Limit   int  `mapstructure:"limit"`
}

// Catalog holds article store configuration
type Catalog struct {
	// Path to a YAML or JSON article file. Empty means the built-in articles.
	Path string `mapstructure:"path"`
}

// Chat holds chat widget configuration
type Chat struct {
	Provider string       `mapstructure:"provider"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout string `mapstructure:"timeout"`
}

// Admin holds back-office credentials and session settings
type Admin struct {
	Email      string        `mapstructure:"email"`
	Password   string        `mapstructure:"password"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// PostHog holds product analytics configuration
type PostHog struct {
	APIKey string `mapstructure:"api_key"`
	Host   string `mapstructure:"host"`
}

// Enabled reports whether analytics events should be sent.
func (p PostHog) Enabled() bool {
	return isValidAPIKey(p.APIKey)
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	ChatProviderCanned = "canned"
	ChatProviderGemini = "gemini"
)

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".mfdl")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.site_name", "Mattia")
	viper.SetDefault("app.base_url", "http://localhost:8080")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.template_dir", "")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})
	viper.SetDefault("server.rate_limit.enabled", false)
	viper.SetDefault("server.rate_limit.limit", 100)

	viper.SetDefault("catalog.path", "")

	viper.SetDefault("chat.provider", ChatProviderCanned)
	viper.SetDefault("chat.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("chat.gemini.timeout", "20s")

	viper.SetDefault("admin.email", "mattia@example.com")
	viper.SetDefault("admin.password", "admin123")
	viper.SetDefault("admin.session_ttl", "12h")

	viper.SetDefault("posthog.host", "https://app.posthog.com")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("chat.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("posthog.api_key", []string{
		"POSTHOG_API_KEY",
	})

	bindEnvKeys("posthog.host", []string{
		"POSTHOG_HOST",
	})

	bindEnvKeys("admin.password", []string{
		"ADMIN_PASSWORD",
		"MFDL_ADMIN_PASSWORD",
	})

	bindEnvKeys("catalog.path", []string{
		"CATALOG_PATH",
		"MFDL_CATALOG",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"MFDL_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.Catalog.Path != "" {
		config.Catalog.Path = expandPath(config.Catalog.Path)
	}
	if config.Server.TemplateDir != "" {
		config.Server.TemplateDir = expandPath(config.Server.TemplateDir)
	}

	config.Chat.Provider = strings.ToLower(strings.TrimSpace(config.Chat.Provider))

	if config.Chat.Gemini.Timeout != "" {
		if _, err := time.ParseDuration(config.Chat.Gemini.Timeout); err != nil {
			return fmt.Errorf("invalid duration for chat.gemini.timeout: %s", config.Chat.Gemini.Timeout)
		}
	}

	if config.App.Debug {
		config.Logging.Level = "debug"
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present
func validateConfig(config *Config) error {
	var errors []string

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port must be between 1 and 65535, got %d", config.Server.Port))
	}

	if config.Server.RateLimit.Enabled && config.Server.RateLimit.Limit <= 0 {
		errors = append(errors, fmt.Sprintf("server.rate_limit.limit must be positive when rate limiting is enabled, got %d", config.Server.RateLimit.Limit))
	}

	switch config.Chat.Provider {
	case ChatProviderCanned:
	case ChatProviderGemini:
		if !isValidAPIKey(config.Chat.Gemini.APIKey) {
			errors = append(errors, "Gemini chat provider requires an API key. Set GEMINI_API_KEY environment variable or chat.gemini.api_key in config file.")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown chat provider: %s. Supported: canned, gemini", config.Chat.Provider))
	}

	if config.Admin.Email == "" || config.Admin.Password == "" {
		errors = append(errors, "admin.email and admin.password are required")
	}
	if config.Admin.SessionTTL <= 0 {
		errors = append(errors, "admin.session_ttl must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// GeminiTimeout returns the parsed Gemini request timeout.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Chat.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-posthog-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
