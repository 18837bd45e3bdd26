// Package config loads and validates the client configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Store      StoreConfig      `mapstructure:"store"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Defaults   DefaultsConfig   `mapstructure:"defaults"`
}

type DictionaryConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// TimeoutSeconds bounds every remote call so a search cannot stay
	// pending forever.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"min=1"`
	// RetryAttempts is the number of extra attempts after a failed request.
	// The default of zero keeps remote calls single-shot.
	RetryAttempts  uint   `mapstructure:"retry_attempts"`
	CacheDirectory string `mapstructure:"cache_directory"`
}

// Timeout returns the configured request timeout as a duration.
func (c DictionaryConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type StoreConfig struct {
	DatabaseFile string `mapstructure:"database_file" validate:"required"`
}

type SpeechConfig struct {
	// Command is the text-to-speech binary, e.g. say or espeak. Empty
	// disables playback.
	Command    string `mapstructure:"command"`
	LocaleFlag string `mapstructure:"locale_flag"`
	Locale     string `mapstructure:"locale"`
	// AutoSpeakDelayMillis delays the automatic pronunciation after a
	// successful search.
	AutoSpeakDelayMillis int `mapstructure:"auto_speak_delay_ms" validate:"min=0"`
}

// AutoSpeakDelay returns the configured pronunciation delay as a duration.
func (c SpeechConfig) AutoSpeakDelay() time.Duration {
	return time.Duration(c.AutoSpeakDelayMillis) * time.Millisecond
}

type DefaultsConfig struct {
	Language string `mapstructure:"language" validate:"required,langcode"`
	Theme    string `mapstructure:"theme" validate:"oneof=light dark"`
}

// Load reads the configuration from configFile, or from the default search
// paths when it is empty, applies defaults, and validates the result.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vocabmate")
	}

	v.SetDefault("dictionary.base_url", "https://dictionary-api-byy8.onrender.com")
	v.SetDefault("dictionary.timeout_seconds", 10)
	v.SetDefault("dictionary.retry_attempts", 0)
	v.SetDefault("dictionary.cache_directory", filepath.Join("cache", "search"))
	v.SetDefault("store.database_file", filepath.Join("data", "vocabmate.db"))
	v.SetDefault("speech.locale", "en-US")
	v.SetDefault("speech.auto_speak_delay_ms", 500)
	v.SetDefault("defaults.language", "en")
	v.SetDefault("defaults.theme", "light")

	// Service location and speech command may come from the environment only
	if err := v.BindEnv("dictionary.base_url", "VOCABMATE_API_BASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCABMATE_API_BASE_URL environment variable: %w", err)
	}
	if err := v.BindEnv("speech.command", "VOCABMATE_SPEECH_COMMAND"); err != nil {
		return nil, fmt.Errorf("failed to bind VOCABMATE_SPEECH_COMMAND environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration and returns translated, human-readable
// messages for every violation.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator > %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			messages := make([]string, 0, len(validationErrors))
			for _, fieldError := range validationErrors {
				messages = append(messages, fieldError.Translate(trans))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("validate.Struct > %w", err)
	}
	return nil
}
