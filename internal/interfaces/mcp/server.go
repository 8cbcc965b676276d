package mcp

import (
	"log/slog"
	"net/http"

	appChat "github.com/listerdale/chatbot/internal/application/chat"
	appDiagnostic "github.com/listerdale/chatbot/internal/application/diagnostic"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version MCP 服务版本
const Version = "1.0.0"

// MCPServer MCP 服务器
type MCPServer struct {
	server     *mcp.Server
	handler    http.Handler
	store      *knowledge.Store
	chat       *appChat.Service
	diagnostic *appDiagnostic.Service
	logger     *slog.Logger
}

// NewServer 创建 MCP 服务器
func NewServer(
	store *knowledge.Store,
	chat *appChat.Service,
	diagnostic *appDiagnostic.Service,
) *MCPServer {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "listerdale-chatbot",
			Version: Version,
		},
		nil,
	)

	s := &MCPServer{
		server:     server,
		store:      store,
		chat:       chat,
		diagnostic: diagnostic,
		logger:     log.NewModuleLogger("mcp", "server"),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_modules",
		Description: "List the leadership modules in the knowledge base. Parameters: section (string, optional) - only return modules in this section. Returns: modules with title, url and section, and the total count.",
	}, s.listModulesTool)

	mcp.AddTool(server, &mcp.Tool{
		Name: "run_diagnostic",
		Description: `Run the three-question leadership diagnostic.
Parameters:
- answers (array of int, required): zero-based option index chosen at each question, starting from the first question

Returns: the result title, summary, reading path and reality check. Fails when the answers do not lead to a result.`,
	}, s.runDiagnosticTool)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_transcript",
		Description: "Read the stored conversation of a chat session. Parameters: session_id (string, required) - session ID. Returns: session metadata and the messages in order.",
	}, s.getTranscriptTool)

	s.handler = mcp.NewSSEHandler(
		func(r *http.Request) *mcp.Server {
			return server
		},
		nil,
	)
	return s
}

// GetHandler 获取 HTTP Handler（用于集成到 HTTP 服务器）
func (s *MCPServer) GetHandler() http.Handler {
	return s.handler
}
