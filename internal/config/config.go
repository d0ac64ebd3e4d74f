// Package config loads tgskema CLI settings from a YAML file and TGSKEMA_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the config file base name searched for when no path is given.
const FileName = "tgskema"

// Config holds CLI defaults. Flags override these values.
type Config struct {
	// Language selects issue messages: "en" or "ja".
	Language string `mapstructure:"language"`
	// Indent is the number of spaces used for JSON output; 0 prints compact JSON.
	Indent int `mapstructure:"indent"`
	// CollectAll reports every validation issue instead of the first.
	CollectAll bool `mapstructure:"collect_all"`
	// StrictJSON rejects payloads with duplicate object keys.
	StrictJSON bool `mapstructure:"strict_json"`
	// SchemaFile is an optional YAML schema file with extra model types.
	SchemaFile string `mapstructure:"schema_file"`
	Verbose    bool   `mapstructure:"verbose"`

	// ListenAddr is the address the webhook server binds.
	ListenAddr string `mapstructure:"listen_addr"`
	// WebhookSecret must match the secret token header of each delivery
	// when set.
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{Language: "en", Indent: 2, ListenAddr: ":8080"}
}

// Load reads settings. With an explicit path the file must exist; otherwise
// tgskema.yaml is looked up in the working directory and the user config
// directory, and a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("language", d.Language)
	v.SetDefault("indent", d.Indent)
	v.SetDefault("collect_all", d.CollectAll)
	v.SetDefault("strict_json", d.StrictJSON)
	v.SetDefault("schema_file", d.SchemaFile)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("webhook_secret", d.WebhookSecret)

	v.SetEnvPrefix("TGSKEMA")
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, FileName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Language != "ja" {
		cfg.Language = "en"
	}
	if cfg.Indent < 0 {
		cfg.Indent = 0
	}
	return &cfg, nil
}
