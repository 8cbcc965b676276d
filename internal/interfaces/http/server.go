package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/interfaces/http/handler"
	"github.com/listerdale/chatbot/internal/interfaces/http/middleware"
	"github.com/listerdale/chatbot/internal/interfaces/http/static"
	"github.com/listerdale/chatbot/internal/interfaces/mcp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	_ "github.com/listerdale/chatbot/docs" // Swagger docs
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Chat       *handler.ChatHandler
	System     *handler.SystemHandler
	Widget     *handler.WidgetHandler
	Diagnostic *handler.DiagnosticHandler
	Session    *handler.SessionHandler
	Socket     *handler.ChatSocketHandler
}

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router *gin.Engine
	logger *slog.Logger
	server *http.Server
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.ServerConfig,
	adminCfg *config.AdminConfig,
	limiter *middleware.RateLimiter,
	handlers Handlers,
	mcpServer *mcp.MCPServer,
) *HTTPServer {
	logger := log.NewModuleLogger("http", "server")

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestContext(),
		middleware.AccessLog(logger),
		cors.New(corsConfig(cfg)),
		middleware.EnsureUTF8Body(),
	)

	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.Use(router)

	api := router.Group("/api")
	{
		api.GET("/health", handlers.System.Health)
		api.GET("/modules", handlers.System.Modules)
		api.POST("/chat", limiter.Middleware(), handlers.Chat.Send)

		widget := api.Group("/widget")
		{
			widget.GET("/config", handlers.Widget.Config)
			widget.POST("/render", handlers.Widget.Render)
		}

		diagnostic := api.Group("/diagnostic")
		{
			diagnostic.GET("/tree", handlers.Diagnostic.Tree)
			diagnostic.POST("/evaluate", handlers.Diagnostic.Evaluate)
			diagnostic.POST("/flow", handlers.Diagnostic.Flow)
			diagnostic.GET("/stats", handlers.Diagnostic.Stats)
		}

		sessions := api.Group("/sessions", middleware.AdminAuth(adminCfg.Token))
		{
			sessions.GET("", handlers.Session.List)
			sessions.GET("/:id", handlers.Session.Get)
			sessions.GET("/:id/transcript", handlers.Session.Transcript)
			sessions.DELETE("/:id", handlers.Session.Delete)
		}
	}

	router.GET("/ws/chat", handlers.Socket.Serve)
	static.Register(router)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// MCP SSE 端点，可读取会话记录，与管理接口共用 Token
	if mcpServer != nil {
		router.Any("/mcp/sse", middleware.AdminAuth(adminCfg.Token), gin.WrapH(mcpServer.GetHandler()))
	}

	return &HTTPServer{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// corsConfig 按 ALLOWED_ORIGINS 生成跨域配置
func corsConfig(cfg *config.ServerConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAllOrigins() {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

// Handler 返回路由，供测试使用
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

// Serve 在已占用的 listener 上提供服务，阻塞直到关闭。
// 先于 Serve 的 Shutdown 会让 Serve 立即返回 http.ErrServerClosed
func (s *HTTPServer) Serve(listener net.Listener) error {
	s.logger.Info("HTTP server starting",
		"addr", listener.Addr().String(),
	)
	return s.server.Serve(listener)
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
