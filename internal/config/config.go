package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// PathEnv names the config file, overriding the default location.
const PathEnv = "DTMAS_CONFIG"

// Config holds application configuration.
type Config struct {
	Export    ExportConfig
	Log       LogConfig
	Web       WebConfig
	Telemetry TelemetryConfig
	UI        UIConfig
}

// ExportConfig holds where SVG exports go. Empty defers to the export store.
type ExportConfig struct {
	Dir string
}

// LogConfig holds log destination and verbosity.
type LogConfig struct {
	File  string
	Level string
}

// WebConfig holds the web host settings.
type WebConfig struct {
	Addr string
}

// TelemetryConfig holds OTLP export settings.
type TelemetryConfig struct {
	Endpoint    string
	ServiceName string `mapstructure:"service_name"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	Captions bool
}

// DefaultPath returns ~/.config/dtmas/config.toml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "dtmas", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix
// DTMAS_. path wins over DTMAS_CONFIG; a missing file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("export.dir", "")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "dtmas.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("web.addr", ":8765")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "dtmas")
	v.SetDefault("ui.captions", true)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(PathEnv)
	}
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	v.SetEnvPrefix("DTMAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("telemetry.endpoint", "DTMAS_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	_ = v.BindEnv("telemetry.service_name", "DTMAS_TELEMETRY_SERVICE_NAME", "OTEL_SERVICE_NAME")

	if err := v.ReadInConfig(); err != nil && !notFound(err) {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func notFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
