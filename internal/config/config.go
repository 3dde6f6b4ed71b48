package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Anthropic API
	AnthropicAPIKey string
	ClaudeModel     string

	// Media search
	WikiAPIURL        string
	SearchMaxAttempts int

	// Existence verification
	VerifyTimeout   time.Duration
	VerifyCacheSize int

	// Storage
	DatabasePath    string
	LatestCardsPath string

	// HTTP
	ServerAddr string
	LatestAddr string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables. It automatically
// loads a .env file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		ClaudeModel:     getEnv("CLAUDE_MODEL", ""),
		WikiAPIURL:      getEnv("WIKI_API_URL", "https://en.wikipedia.org/w/api.php"),
		DatabasePath:    getEnv("DATABASE_PATH", "data/cardgen.db"),
		LatestCardsPath: getEnv("LATEST_CARDS_PATH", "data/latest_cards.json"),
		ServerAddr:      getEnv("SERVER_ADDR", ":8000"),
		LatestAddr:      getEnv("LATEST_ADDR", ":8001"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.SearchMaxAttempts, err = getEnvInt("SEARCH_MAX_ATTEMPTS", 6)
	if err != nil {
		return nil, err
	}

	cfg.VerifyCacheSize, err = getEnvInt("VERIFY_CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}

	cfg.VerifyTimeout, err = time.ParseDuration(getEnv("VERIFY_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid VERIFY_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.LatestCardsPath == "" {
		return fmt.Errorf("LATEST_CARDS_PATH is required")
	}
	return nil
}

// ValidateForGeneration checks configuration needed to call the model.
func (c *Config) ValidateForGeneration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required for card generation")
	}
	return nil
}

// ValidateForServe checks all configuration needed for the generation
// API.
func (c *Config) ValidateForServe() error {
	if err := c.ValidateForGeneration(); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	return nil
}

// ValidateForLatest checks configuration needed for the read-only
// latest-cards service.
func (c *Config) ValidateForLatest() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.LatestAddr == "" {
		return fmt.Errorf("LATEST_ADDR is required")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
