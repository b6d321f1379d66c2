package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the library's infrastructure pieces.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// StorageConfig selects the key-value backend the review stores persist into.
type StorageConfig struct {
	// Driver is "memory", "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	// DSN is the sqlite file path or postgres connection string; unused for
	// the memory driver.
	DSN string `mapstructure:"dsn"`
	// FlashcardsKey and ScriptProgressKey override the storage keys the two
	// collections live under.
	FlashcardsKey     string `mapstructure:"flashcards_key"`
	ScriptProgressKey string `mapstructure:"script_progress_key"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("storage.driver", "sqlite")
	viper.SetDefault("storage.dsn", "lexigrad.db")
	viper.SetDefault("storage.flashcards_key", "")
	viper.SetDefault("storage.script_progress_key", "")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}
