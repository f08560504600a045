// Package config loads settings for the command line tool from an optional
// config file and command line flags. Flags that were set explicitly win
// over the file, which wins over the built-in defaults. The environment is
// not consulted.
package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-totp/internal/logging"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

// Configuration keys, as they appear in a config file.
const (
	KeyShowSecret = "show_secret"
	KeyURIParams  = "uri_params"
	KeySkew       = "skew"
	KeyLogLevel   = "log_level"
	KeyNoColor    = "no_color"
)

// flagNames maps configuration keys to their command line flag.
var flagNames = map[string]string{
	KeyShowSecret: "show-secret",
	KeyURIParams:  "uri-params",
	KeySkew:       "skew",
	KeyLogLevel:   "log-level",
	KeyNoColor:    "no-color",
}

// FlagName returns the command line flag bound to key.
func FlagName(key string) string {
	return flagNames[key]
}

// Config holds the resolved settings.
type Config struct {
	// ShowSecret prints the raw secret instead of a masked one.
	ShowSecret bool
	// URIParams honours the algorithm, digits and period URI parameters.
	URIParams bool
	// Skew is the number of periods either side accepted by verify, at most
	// totp.MaxSkew.
	Skew uint
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// NoColor disables coloured output.
	NoColor bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyShowSecret, false)
	v.SetDefault(KeyURIParams, false)
	v.SetDefault(KeySkew, 1)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyNoColor, false)
}

// Load resolves the configuration. path names an optional config file whose
// format viper infers from the extension; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range flagNames {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: failed to bind flag %s: %w", name, err)
			}
		}
	}

	level, err := logging.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}

	skew := v.GetInt(KeySkew)
	if skew < 0 || skew > totp.MaxSkew {
		return nil, fmt.Errorf("config: %s must be between 0 and %d, got %d", KeySkew, totp.MaxSkew, skew)
	}

	return &Config{
		ShowSecret: v.GetBool(KeyShowSecret),
		URIParams:  v.GetBool(KeyURIParams),
		Skew:       uint(skew),
		LogLevel:   level,
		NoColor:    v.GetBool(KeyNoColor),
	}, nil
}
