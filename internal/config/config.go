// Package config loads sysreport settings from defaults, an optional YAML
// file, SYSREPORT_* environment variables and bound flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/sysreport/sysreport/internal/hw"
)

const (
	KeyPublicIPURL     = "public_ip_url"
	KeyPublicIPTimeout = "public_ip_timeout"
	KeyLogoPath        = "logo_path"
	KeyIconLight       = "icon_light"
	KeyIconDark        = "icon_dark"
	KeyTheme           = "theme"
	KeyListen          = "listen"
	KeyNoColor         = "no_color"
)

// Config is the resolved configuration.
type Config struct {
	PublicIPURL     string
	PublicIPTimeout time.Duration
	LogoPath        string
	IconLight       string
	IconDark        string
	Theme           string
	Listen          string
	NoColor         bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyPublicIPURL, hw.DefaultPublicIPURL)
	v.SetDefault(KeyPublicIPTimeout, hw.DefaultPublicIPTimeout)
	v.SetDefault(KeyLogoPath, "logo_pdf.png")
	v.SetDefault(KeyIconLight, "icono_claro.png")
	v.SetDefault(KeyIconDark, "icono_oscuro.png")
	v.SetDefault(KeyTheme, "auto")
	v.SetDefault(KeyListen, "127.0.0.1:8080")
	v.SetDefault(KeyNoColor, false)
}

// Load resolves the configuration. An empty file looks for an optional
// sysreport.yaml in the working directory; a named file must exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("sysreport")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("sysreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		PublicIPURL:     v.GetString(KeyPublicIPURL),
		PublicIPTimeout: v.GetDuration(KeyPublicIPTimeout),
		LogoPath:        v.GetString(KeyLogoPath),
		IconLight:       v.GetString(KeyIconLight),
		IconDark:        v.GetString(KeyIconDark),
		Theme:           v.GetString(KeyTheme),
		Listen:          v.GetString(KeyListen),
		NoColor:         v.GetBool(KeyNoColor),
	}
	if cfg.PublicIPTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %s", KeyPublicIPTimeout, cfg.PublicIPTimeout)
	}
	return cfg, nil
}
