// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration loaded from the environment.
// It is built once at process start and passed explicitly to the services
// that need it; there is no global configuration singleton.
type Config struct {
	Port      string
	DataDir   string
	LogDir    string
	DebugMode bool

	// LLM provider settings
	LLMProvider string
	LLMConfig   map[string]string

	// Payment-data provider; only reported in health, no API calls.
	StripeSecretKey string
}

// Load reads configuration from the environment. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnvPath("DATA_DIR", "data"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		DebugMode:       getEnvBool("DEBUG_MODE", true),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		LLMConfig: map[string]string{
			"api_key":       getEnv("OPENAI_API_KEY", ""),
			"default_model": getEnv("LLM_MODEL", "gpt-4"),
			"base_url":      getEnv("LLM_BASE_URL", ""),
		},
	}

	return cfg, nil
}

// HasLLMKey reports whether a model-provider API key is configured.
func (c *Config) HasLLMKey() bool {
	return c.LLMConfig != nil && c.LLMConfig["api_key"] != ""
}

// HasStripeKey reports whether the payment provider is configured.
func (c *Config) HasStripeKey() bool {
	return c.StripeSecretKey != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value == "true" || value == "1" || value == "yes"
}
