package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile 可选 YAML 配置文件路径
const EnvConfigFile = "CONFIG_FILE"

// ErrMissingAPIKey 未配置 OpenAI API Key
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	LLM       LLMConfig       `yaml:"llm"`
	Chat      ChatConfig      `yaml:"chat"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Admin     AdminConfig     `yaml:"admin"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port           string        `yaml:"port" envconfig:"PORT"`
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	SiteURL        string        `yaml:"site_url" envconfig:"SITE_URL"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
}

// Addr 监听地址
func (c *ServerConfig) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// AllowAllOrigins 是否允许任意来源
func (c *ServerConfig) AllowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Path string `yaml:"path" envconfig:"DB_PATH"`
}

// LLMConfig 大模型配置
type LLMConfig struct {
	APIKey      string        `yaml:"api_key" envconfig:"OPENAI_API_KEY"`
	Model       string        `yaml:"model" envconfig:"OPENAI_MODEL"`
	BaseURL     string        `yaml:"base_url" envconfig:"OPENAI_BASE_URL"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"OPENAI_TIMEOUT"`
	Temperature float32       `yaml:"temperature" envconfig:"LLM_TEMPERATURE"`
	MaxTokens   int           `yaml:"max_tokens" envconfig:"LLM_MAX_TOKENS"`
}

// ChatConfig 对话配置
type ChatConfig struct {
	MaxHistory         int `yaml:"max_history" envconfig:"MAX_HISTORY"`
	HistoryTokenBudget int `yaml:"history_token_budget" envconfig:"HISTORY_TOKEN_BUDGET"`
	MaxMessageLength   int `yaml:"max_message_length" envconfig:"MAX_MESSAGE_LENGTH"`
	// RateLimit 每个客户端每分钟请求数，0 表示不限制
	RateLimit int `yaml:"rate_limit" envconfig:"CHAT_RATE_LIMIT"`
}

// KnowledgeConfig 知识库配置
type KnowledgeConfig struct {
	// ModulesFile 留空使用内置模块列表
	ModulesFile string `yaml:"modules_file" envconfig:"MODULES_FILE"`
	Watch       bool   `yaml:"watch" envconfig:"WATCH_MODULES"`
}

// AdminConfig 管理接口配置
type AdminConfig struct {
	// Token 留空表示禁用管理接口
	Token string `yaml:"token" envconfig:"ADMIN_TOKEN"`
}

// Enabled 管理接口是否启用
func (c *AdminConfig) Enabled() bool {
	return c.Token != ""
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size" envconfig:"WS_READ_BUFFER_SIZE"`
	WriteBufferSize int `yaml:"write_buffer_size" envconfig:"WS_WRITE_BUFFER_SIZE"`
}

// NewConfig 创建配置（默认值）
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "3001",
			AllowedOrigins: []string{"*"},
			SiteURL:        "https://listerdalestrategy.com/leadership/",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   90 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./data/chat.db",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Timeout:     60 * time.Second,
			Temperature: 0.7,
			MaxTokens:   800,
		},
		Chat: ChatConfig{
			MaxHistory:         20,
			HistoryTokenBudget: 6000,
			MaxMessageLength:   2000,
			RateLimit:          20,
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Load 加载配置：默认值 → YAML 文件 → .env → 环境变量
func Load() (*Config, error) {
	cfg := NewConfig()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// .env 不覆盖已存在的环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	cfg.Server.AllowedOrigins = normalizeOrigins(cfg.Server.AllowedOrigins)

	return cfg, nil
}

// normalizeOrigins 去除来源两侧空白并丢弃空项
func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate 校验服务运行所需配置
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Chat.MaxHistory <= 0 {
		return fmt.Errorf("MAX_HISTORY must be positive, got %d", c.Chat.MaxHistory)
	}
	if c.Database.Path == "" {
		return errors.New("DB_PATH is empty")
	}
	return nil
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewLLMConfig 创建大模型配置
func NewLLMConfig(cfg *Config) *LLMConfig {
	return &cfg.LLM
}

// NewChatConfig 创建对话配置
func NewChatConfig(cfg *Config) *ChatConfig {
	return &cfg.Chat
}

// NewKnowledgeConfig 创建知识库配置
func NewKnowledgeConfig(cfg *Config) *KnowledgeConfig {
	return &cfg.Knowledge
}

// NewAdminConfig 创建管理接口配置
func NewAdminConfig(cfg *Config) *AdminConfig {
	return &cfg.Admin
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}
