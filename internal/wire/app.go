package wire

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	applog "github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *interfaces.HTTPServer
	watcher    *knowledge.Watcher
	logger     *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewApp 创建应用实例，watcher 为 nil 表示不监听知识库文件
func NewApp(
	httpServer *interfaces.HTTPServer,
	watcher *knowledge.Watcher,
) *App {
	return &App{
		HTTPServer: httpServer,
		watcher:    watcher,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Serve 启动知识库监听并在 listener 上提供 HTTP 服务，阻塞直到关闭
func (a *App) Serve(listener net.Listener) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		listener.Close()
		return nil
	}
	a.logger.Info("Starting Listerdale chatbot")
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.logger.Error("Failed to start knowledge watcher", "error", err)
		}
	}
	a.mu.Unlock()

	if err := a.HTTPServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止所有服务
func (a *App) Shutdown() error {
	a.logger.Info("Stopping Listerdale chatbot")

	a.mu.Lock()
	a.closed = true
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.mu.Unlock()

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.logger.Info("Listerdale chatbot stopped")
	return nil
}
