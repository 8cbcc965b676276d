package log

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config 日志配置，从 LOG_* 环境变量读取
type Config struct {
	// Level debug, info, warn, error
	Level string `envconfig:"LOG_LEVEL" yaml:"level"`

	// Format console 或 json
	Format string `envconfig:"LOG_FORMAT" yaml:"format"`

	// Output stdout, stderr 或 file:/path/to/log
	Output string `envconfig:"LOG_OUTPUT" yaml:"output"`

	AddSource bool `envconfig:"LOG_ADD_SOURCE" yaml:"add_source"`

	// Env 为 development 时强制 debug 级别的控制台输出
	Env string `envconfig:"ENV" yaml:"-"`
}

// NewConfigFromEnv 从环境变量创建配置，无法解析时退回默认值
func NewConfigFromEnv() *Config {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		cfg = &Config{}
	}
	cfg.applyDefaults()

	if cfg.Development() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}
	return cfg
}

// Development 是否开发环境
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

func (c *Config) applyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}
