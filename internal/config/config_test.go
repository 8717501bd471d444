package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, &Config{
		PublicIPURL:     "https://api.ipify.org",
		PublicIPTimeout: 3 * time.Second,
		LogoPath:        "logo_pdf.png",
		IconLight:       "icono_claro.png",
		IconDark:        "icono_oscuro.png",
		Theme:           "auto",
		Listen:          "127.0.0.1:8080",
	}, cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sysreport.yaml")
	require.NoError(t, os.WriteFile(file, []byte("public_ip_timeout: 750ms\ntheme: light\nlogo_path: /srv/logo.png\n"), 0o644))
	t.Setenv("SYSREPORT_LISTEN", "127.0.0.1:9999")

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.PublicIPTimeout)
	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "/srv/logo.png", cfg.LogoPath)
	assert.Equal(t, "127.0.0.1:9999", cfg.Listen)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("public_ip_timeout: -1s\n"), 0o644))
	_, err = Load(viper.New(), file)
	assert.Error(t, err)
}
