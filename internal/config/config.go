package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/metricboard/internal/core"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. METRICBOARD_SERVER_PORT.
const EnvPrefix = "METRICBOARD"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Pages   PagesConfig   `mapstructure:"pages"`
	Storage StorageConfig `mapstructure:"storage"`
	Session SessionConfig `mapstructure:"session"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	APIKey       string        `mapstructure:"api_key"`
	TemplatesDir string        `mapstructure:"templates_dir"` // empty uses embedded templates
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PagesConfig locates the page template and generated pages inside storage.
type PagesConfig struct {
	TemplatePath string `mapstructure:"template_path"`
	OutputDir    string `mapstructure:"output_dir"`
	Icon         string `mapstructure:"icon"`
	Placeholder  string `mapstructure:"placeholder"`
}

type StorageConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// SessionConfig bounds the in-memory session store.
type SessionConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxSessions int           `mapstructure:"max_sessions"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig selects the logger preset and level.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from file. Keys absent from the file keep their
// Defaults() value.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, Defaults())

	// Support environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.api_key", d.Server.APIKey)
	v.SetDefault("server.templates_dir", d.Server.TemplatesDir)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	v.SetDefault("pages.template_path", d.Pages.TemplatePath)
	v.SetDefault("pages.output_dir", d.Pages.OutputDir)
	v.SetDefault("pages.icon", d.Pages.Icon)
	v.SetDefault("pages.placeholder", d.Pages.Placeholder)

	v.SetDefault("storage.type", d.Storage.Type)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.s3.bucket", d.Storage.S3.Bucket)
	v.SetDefault("storage.s3.endpoint", d.Storage.S3.Endpoint)
	v.SetDefault("storage.s3.region", d.Storage.S3.Region)
	v.SetDefault("storage.s3.access_key", d.Storage.S3.AccessKey)
	v.SetDefault("storage.s3.secret_key", d.Storage.S3.SecretKey)
	v.SetDefault("storage.s3.prefix", d.Storage.S3.Prefix)

	v.SetDefault("session.ttl", d.Session.TTL)
	v.SetDefault("session.max_sessions", d.Session.MaxSessions)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8501,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Pages: PagesConfig{
			TemplatePath: "templates/analysis_template.yaml",
			OutputDir:    "pages/generated",
			Icon:         "📊",
			Placeholder:  "{{category}}",
		},
		Storage: StorageConfig{
			Type: "localfs",
			Path: ".",
		},
		Session: SessionConfig{
			TTL:         30 * time.Minute,
			MaxSessions: 1000,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("server timeouts cannot be negative"))
	}

	// Pages validation
	if c.Pages.Placeholder == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("pages.placeholder required"))
	}
	if c.Pages.TemplatePath == "" || c.Pages.OutputDir == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("pages.template_path and pages.output_dir required"))
	}

	// Storage validation
	switch c.Storage.Type {
	case "localfs":
		if c.Storage.Path == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.path required when type is localfs"))
		}
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("storage.s3.bucket required when type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("storage.type must be localfs or s3, got %q", c.Storage.Type))
	}

	// Session validation
	if c.Session.TTL <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("session.ttl must be positive, got %s", c.Session.TTL))
	}
	if c.Session.MaxSessions < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("session.max_sessions must be at least 1, got %d", c.Session.MaxSessions))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics.path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}
