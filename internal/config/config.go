// Package config loads application configuration from file, environment, and
// defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      App      `mapstructure:"app"`
	AI       AI       `mapstructure:"ai"`
	Analysis Analysis `mapstructure:"analysis"`
	Cache    Cache    `mapstructure:"cache"`
	Store    Store    `mapstructure:"store"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	DataDir  string `mapstructure:"data_dir"`
}

// AI holds AI/LLM configuration.
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey              string  `mapstructure:"api_key"`
	Model               string  `mapstructure:"model"`
	EmbeddingModel      string  `mapstructure:"embedding_model"`
	EmbeddingDimensions int32   `mapstructure:"embedding_dimensions"`
	Timeout             string  `mapstructure:"timeout"`
	MaxTokens           int32   `mapstructure:"max_tokens"`
	Temperature         float32 `mapstructure:"temperature"`
}

// Analysis holds tunables for the synthesis and gap-analysis pipeline.
type Analysis struct {
	MinSources          int     `mapstructure:"min_sources"`          // Minimum sources for gap analysis
	MaxGaps             int     `mapstructure:"max_gaps"`             // Cap on identified gaps
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"` // Fallback clustering threshold
}

// Cache holds in-memory result cache configuration.
type Cache struct {
	TTL           string  `mapstructure:"ttl"`             // Entry time-to-live
	SweepChance   float64 `mapstructure:"sweep_chance"`    // Probability of a sweep per access
	KeyTextPrefix int     `mapstructure:"key_text_prefix"` // Chars of question text used in keys
}

// Store holds the persistence store configuration.
type Store struct {
	Directory string `mapstructure:"directory"`
}

var globalConfig *Config

// Load loads the configuration from .env, an optional config file, environment
// variables, and defaults, in ascending precedence of env over file.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if present; missing is fine.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".scholarly")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	viper.SetEnvPrefix("SCHOLARLY")
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

	// The Gemini key may also arrive via the SDK's conventional variable.
	if config.AI.Gemini.APIKey == "" {
		config.AI.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the global configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// GeminiTimeout parses the configured Gemini call timeout, defaulting to 30s.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.AI.Gemini.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// CacheTTL parses the configured cache TTL, defaulting to 5 minutes.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.data_dir", ".scholarly-cache")

	viper.SetDefault("ai.gemini.model", "gemini-flash-lite-latest")
	viper.SetDefault("ai.gemini.embedding_model", "gemini-embedding-001")
	viper.SetDefault("ai.gemini.embedding_dimensions", 768)
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.max_tokens", 4096)
	viper.SetDefault("ai.gemini.temperature", 0.3)

	viper.SetDefault("analysis.min_sources", 3)
	viper.SetDefault("analysis.max_gaps", 5)
	viper.SetDefault("analysis.similarity_threshold", 0.3)

	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.sweep_chance", 0.1)
	viper.SetDefault("cache.key_text_prefix", 100)

	viper.SetDefault("store.directory", ".scholarly-cache")
}
