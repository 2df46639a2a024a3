package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/eslsoft/expreal/internal/entity"
)

// Lexicon sources.
const (
	LexiconEmbedded = "embedded"
	LexiconSQLite   = "sqlite"
)

// Config holds all configuration for our application
type Config struct {
	Realizer RealizerConfig `mapstructure:"realizer"`
	Lexicon  LexiconConfig  `mapstructure:"lexicon"`
	Log      LogConfig      `mapstructure:"log"`
}

// RealizerConfig holds the realizer settings. A zero seed seeds from the clock.
type RealizerConfig struct {
	Language  string `mapstructure:"language"`
	Templates string `mapstructure:"templates"`
	Seed      int64  `mapstructure:"seed"`
	MaxDepth  int    `mapstructure:"max_depth"`
}

// LexiconConfig selects where lexicon entries come from.
type LexiconConfig struct {
	Source string `mapstructure:"source"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("realizer.language", "en")
	viper.SetDefault("realizer.templates", "templates.csv")
	viper.SetDefault("realizer.seed", 0)
	viper.SetDefault("realizer.max_depth", 64)

	viper.SetDefault("lexicon.source", LexiconEmbedded)
	viper.SetDefault("lexicon.dsn", "file:expreal.db?cache=shared")

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// Validate rejects unknown languages and lexicon sources.
func (c *Config) Validate() error {
	if entity.ParseLanguage(c.Realizer.Language) == entity.LanguageUnspecified {
		return fmt.Errorf("realizer.language: %w: %q", entity.ErrUnsupportedLanguage, c.Realizer.Language)
	}
	switch c.Lexicon.Source {
	case LexiconEmbedded:
	case LexiconSQLite:
		if strings.TrimSpace(c.Lexicon.DSN) == "" {
			return fmt.Errorf("lexicon.dsn is required for the %s source", LexiconSQLite)
		}
	default:
		return fmt.Errorf("unsupported lexicon source %q", c.Lexicon.Source)
	}
	return nil
}

// Language returns the configured realizer language.
func (c *Config) Language() entity.Language {
	return entity.ParseLanguage(c.Realizer.Language)
}
