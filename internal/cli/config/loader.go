package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store the logger in the command context.
type loggerKey struct{}

// configKey is used to store the loaded config in the command context.
type configKey struct{}

var configFileUsed string

// findConfigFile finds the config file to use.
// Priority: explicit path > ./askdb.yaml > ./askdb.yml > user config dir.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"askdb.yaml", "askdb.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "askdb", "askdb.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"server_url": DefaultServerURL,
		"theme":      DefaultTheme,
		"output":     DefaultOutput,
		"verbose":    false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables (ASKDB_ prefix)
	// Transform: ASKDB_SERVER_URL -> server_url
	if err := k.Load(env.Provider("ASKDB_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "ASKDB_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")

			// The CLI uses --server for brevity; the config key is server_url.
			if key == "server" {
				return "server_url", posflag.FlagVal(flags, f)
			}
			if key == "store" {
				return "store_path", posflag.FlagVal(flags, f)
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
func LoggerKey() interface{} {
	return loggerKey{}
}

// ConfigKey returns the context key used for storing the config.
func ConfigKey() interface{} {
	return configKey{}
}

// GetConfig retrieves the config from the command context, falling back to
// defaults when none was stored.
func GetConfig(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		ServerURL:    DefaultServerURL,
		OutputFormat: DefaultOutput,
	}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
