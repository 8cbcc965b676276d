package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/listerdale/chatbot/internal/infrastructure/log/handler"
)

// ServiceName 日志中的服务标识
const ServiceName = "listerdale-chatbot"

// 全局 logger 实例
var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	debugMode     bool
	logFile       *os.File
)

// Init 初始化日志系统
func Init(cfg *Config) {
	if cfg == nil {
		cfg = NewConfigFromEnv()
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log output %q unavailable, falling back to stdout: %v\n", cfg.Output, err)
		out = os.Stdout
	}

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = slog.New(newHandler(out, cfg).WithAttrs([]slog.Attr{
		slog.String("service", ServiceName),
	}))
	debugMode = strings.ToLower(cfg.Level) == "debug"
	slog.SetDefault(defaultLogger)
}

// InitWithWriter 使用指定输出初始化（测试与命令行工具使用）
func InitWithWriter(w io.Writer, cfg *Config) {
	if cfg == nil {
		cfg = &Config{Level: "info", Format: "console"}
	}

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = slog.New(newHandler(w, cfg).WithAttrs([]slog.Attr{
		slog.String("service", ServiceName),
	}))
	debugMode = strings.ToLower(cfg.Level) == "debug"
}

func newHandler(out io.Writer, cfg *Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}
	if strings.ToLower(cfg.Format) == "json" {
		return slog.NewJSONHandler(out, opts)
	}
	return handler.NewConsoleHandler(out, opts)
}

// openOutput 解析输出目标
func openOutput(output string) (io.Writer, error) {
	switch {
	case output == "" || output == "stdout":
		return os.Stdout, nil
	case output == "stderr":
		return os.Stderr, nil
	case strings.HasPrefix(output, "file:"):
		path := strings.TrimPrefix(output, "file:")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		if logFile != nil {
			_ = logFile.Close()
		}
		logFile = f
		return f, nil
	default:
		return nil, fmt.Errorf("unknown log output")
	}
}

// Close 关闭日志文件
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// GetLogger 获取默认 logger
func GetLogger() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l == nil {
		// 未初始化，使用默认配置
		Init(nil)
		mu.RLock()
		l = defaultLogger
		mu.RUnlock()
	}
	return l
}

// With 创建带有额外字段的 logger
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// NewModuleLogger 为特定模块创建 logger
func NewModuleLogger(module, component string) *slog.Logger {
	return GetLogger().With(
		slog.String("module", module),
		slog.String("component", component),
	)
}

// IsDebugMode 检查是否为调试模式
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugMode
}

// parseLevel 解析日志级别
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
