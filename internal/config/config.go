package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MinIntervalSecs is the spacing implied by the registry's documented
// limit of 5 requests per minute.
const MinIntervalSecs = 12

// Config holds the full application configuration.
type Config struct {
	API    APIConfig    `yaml:"api" mapstructure:"api"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// APIConfig holds registry API settings.
type APIConfig struct {
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	IntervalSecs int    `yaml:"interval_secs" mapstructure:"interval_secs"`
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Interval returns the fixed spacing between two registry calls.
func (c APIConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSecs) * time.Second
}

// InputConfig configures how identifiers are read from input files.
type InputConfig struct {
	Column string `yaml:"column" mapstructure:"column"`
	Sheet  string `yaml:"sheet" mapstructure:"sheet"`
}

// OutputConfig configures where reports are written.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CNPJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://brasilapi.com.br/api/cnpj/v1")
	v.SetDefault("api.timeout_secs", 30)
	v.SetDefault("api.interval_secs", 15)
	v.SetDefault("api.user_agent", "cnpj-cli/1.0")
	v.SetDefault("input.column", "cnpj")
	v.SetDefault("input.sheet", "")
	v.SetDefault("output.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return eris.New("config: api.base_url is required")
	}
	if c.API.TimeoutSecs <= 0 {
		return eris.Errorf("config: api.timeout_secs must be positive, got %d", c.API.TimeoutSecs)
	}
	if c.API.IntervalSecs < MinIntervalSecs {
		return eris.Errorf("config: api.interval_secs must be at least %d, got %d", MinIntervalSecs, c.API.IntervalSecs)
	}
	if strings.TrimSpace(c.Input.Column) == "" {
		return eris.New("config: input.column is required")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
