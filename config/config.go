package config

import (
	"errors"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"

	"github.com/angeloszaimis/task-runner/internal/extractor"
	"github.com/angeloszaimis/task-runner/internal/tasks"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	Environment  string        `mapstructure:"environment"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

type ToolsConfig struct {
	NPX             string `mapstructure:"npx"`
	PrettierVersion string `mapstructure:"prettier_version"`
}

type BootstrapConfig struct {
	Script    string `mapstructure:"script"`
	UserEmail string `mapstructure:"user_email"`
	Python    string `mapstructure:"python"`
	Pip       string `mapstructure:"pip"`
	UV        string `mapstructure:"uv"`
}

// LLMConfig configures the extraction service. An empty APIKey disables it.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type BreakerConfig struct {
	Threshold    int           `mapstructure:"threshold"`
	ResetTimeout time.Duration `mapstructure:"reset_timeout"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Data      DataConfig      `mapstructure:"data"`
	Tools     ToolsConfig     `mapstructure:"tools"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.environment", EnvDev)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "5m")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("data.dir", "/data")
	v.SetDefault("tools.npx", "npx")
	v.SetDefault("tools.prettier_version", "3.4.2")
	v.SetDefault("bootstrap.script", "")
	v.SetDefault("bootstrap.user_email", "user@example.com")
	v.SetDefault("bootstrap.python", "python")
	v.SetDefault("bootstrap.pip", "pip")
	v.SetDefault("bootstrap.uv", "uv")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("breaker.threshold", 3)
	v.SetDefault("breaker.reset_timeout", "30s")
}

// Load reads config.yaml from ./config or the working directory, then applies
// environment overrides such as DATA_DIR or LLM_API_KEY.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server),
		validation.Field(&c.Logging),
		validation.Field(&c.Data),
		validation.Field(&c.Tools),
		validation.Field(&c.Bootstrap),
		validation.Field(&c.LLM),
		validation.Field(&c.Breaker),
	)
}

func (s ServerConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&s.Address,
			validation.Required,
			validation.By(validateHostPort),
		),
		validation.Field(&s.ReadTimeout, validation.Required),
		validation.Field(&s.WriteTimeout, validation.Required),
		validation.Field(&s.IdleTimeout, validation.Required),
	)
}

func (l LoggingConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
	)
}

func (d DataConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Dir, validation.Required),
	)
}

func (t ToolsConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.NPX, validation.Required),
		validation.Field(&t.PrettierVersion, validation.Required),
	)
}

func (b BootstrapConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.UserEmail, validation.Required, is.EmailFormat),
		validation.Field(&b.Python, validation.Required),
		validation.Field(&b.Pip, validation.Required),
		validation.Field(&b.UV, validation.Required),
	)
}

func (l LLMConfig) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.BaseURL, is.URL),
		validation.Field(&l.Model, validation.When(l.APIKey != "", validation.Required)),
	)
}

func (b BreakerConfig) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Threshold, validation.Required, validation.Min(1)),
		validation.Field(&b.ResetTimeout, validation.Required),
	)
}

// TasksConfig derives handler settings. An unset bootstrap script resolves to
// datagen.py next to the data directory.
func (c *Config) TasksConfig() tasks.Config {
	script := c.Bootstrap.Script
	if script == "" {
		script = filepath.Join(filepath.Dir(filepath.Clean(c.Data.Dir)), "datagen.py")
	}

	return tasks.Config{
		Paths: tasks.NewPaths(c.Data.Dir),
		Tools: tasks.Tools{
			NPX:             c.Tools.NPX,
			PrettierVersion: c.Tools.PrettierVersion,
		},
		Bootstrap: tasks.Bootstrap{
			Pip:       c.Bootstrap.Pip,
			UV:        c.Bootstrap.UV,
			Python:    c.Bootstrap.Python,
			Script:    script,
			UserEmail: c.Bootstrap.UserEmail,
		},
	}
}

func (c *Config) ExtractorConfig() extractor.Config {
	return extractor.Config{
		APIKey:  c.LLM.APIKey,
		BaseURL: c.LLM.BaseURL,
		Model:   c.LLM.Model,
	}
}

// ExtractionEnabled reports whether an API key was configured.
func (c *Config) ExtractionEnabled() bool {
	return c.LLM.APIKey != ""
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}
