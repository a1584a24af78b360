package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins        []string      `mapstructure:"ALLOWED_ORIGINS"`
	HTTPServerAddress     string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	APIBaseURL            string        `mapstructure:"API_BASE_URL"`
	PublicBaseURL         string        `mapstructure:"PUBLIC_BASE_URL"`
	TokenSecretKey        string        `mapstructure:"TOKEN_SECRET_KEY"`
	SelectionTokenSecret  string        `mapstructure:"SELECTION_TOKEN_SECRET"`
	RedisServerAddress    string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	PickerTokenTimeout    time.Duration `mapstructure:"PICKER_TOKEN_TIMEOUT"`
	PickerSessionTTL      time.Duration `mapstructure:"PICKER_SESSION_TTL"`
	SelectionDiscardDelay time.Duration `mapstructure:"SELECTION_DISCARD_DELAY"`
	DraftTTL              time.Duration `mapstructure:"DRAFT_TTL"`
	NgrokAuthToken        string        `mapstructure:"NGROK_AUTHTOKEN"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	// Set defaults for non-sensitive config
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("API_BASE_URL", "http://localhost:3001")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	v.SetDefault("PICKER_TOKEN_TIMEOUT", "15s")
	v.SetDefault("PICKER_SESSION_TTL", "15m")
	v.SetDefault("SELECTION_DISCARD_DELAY", "30m")
	v.SetDefault("DRAFT_TTL", "24h")
	v.SetDefault("NGROK_AUTHTOKEN", "")
	v.SetDefault("TOKEN_SECRET_KEY", "")
	v.SetDefault("SELECTION_TOKEN_SECRET", "")
	v.SetDefault("REDIS_SERVER_ADDRESS", "")

	// Prefer environment variables over config file
	v.AutomaticEnv()

	// Load config file
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = v.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if len(config.SelectionTokenSecret) < 16 {
		return fmt.Errorf("SELECTION_TOKEN_SECRET must be at least 16 characters")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}
	if config.PickerTokenTimeout <= 0 {
		return fmt.Errorf("PICKER_TOKEN_TIMEOUT must be positive")
	}
	if config.PickerSessionTTL < config.PickerTokenTimeout {
		return fmt.Errorf("PICKER_SESSION_TTL must not be shorter than PICKER_TOKEN_TIMEOUT")
	}

	return nil
}
