package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = ".botdash"
	envPrefix  = "BOTDASH"
)

// Config is the typed view over viper's merged settings.
type Config struct {
	BaseURL string
	APIKey  string
	Listen  string
	Timeout time.Duration
	Log     LogConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) error {
	viper.SetDefault("base_url", "https://api.meetingbaas.com")
	viper.SetDefault("listen", ":8080")
	viper.SetDefault("timeout", "30s")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("locate home directory: %w", err)
		}

		// Search config in home directory with name ".botdash" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load returns the current settings.
func Load() (Config, error) {
	cfg := Config{
		BaseURL: strings.TrimRight(viper.GetString("base_url"), "/"),
		APIKey:  viper.GetString("api_key"),
		Listen:  viper.GetString("listen"),
		Timeout: viper.GetDuration("timeout"),
		Log: LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
	if cfg.BaseURL == "" {
		return Config{}, errors.New("base_url is not set")
	}
	return cfg, nil
}

// RequireAPIKey is Load for commands that talk to the remote API.
func RequireAPIKey() (Config, error) {
	cfg, err := Load()
	if err != nil {
		return Config{}, err
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("not logged in: run 'botdash login' first")
	}
	return cfg, nil
}

// SaveCredentials updates the config file with the base URL and API key.
func SaveCredentials(baseURL, apiKey string) error {
	viper.Set("base_url", baseURL)
	viper.Set("api_key", apiKey)

	// Ensure the file exists before writing
	if err := viper.WriteConfig(); err != nil {
		// If file doesn't exist, create it
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return viper.SafeWriteConfig()
		}
		// If it exists but failed to write, try writing to default path
		home, herr := os.UserHomeDir()
		if herr != nil {
			return fmt.Errorf("write config: %w", err)
		}
		return viper.WriteConfigAs(filepath.Join(home, configName+".yaml"))
	}
	return nil
}
