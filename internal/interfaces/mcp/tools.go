package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainDiagnostic "github.com/listerdale/chatbot/internal/domain/diagnostic"
	"github.com/listerdale/chatbot/internal/domain/knowledge"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListModulesInput 模块列表工具输入
type ListModulesInput struct {
	Section string `json:"section,omitempty" jsonschema:"只返回该章节的模块"`
}

// ListModulesOutput 模块列表工具输出
type ListModulesOutput struct {
	Modules []knowledge.Module `json:"modules" jsonschema:"模块列表"`
	Total   int                `json:"total" jsonschema:"模块数量"`
}

// RunDiagnosticInput 诊断工具输入
type RunDiagnosticInput struct {
	Answers []int `json:"answers" jsonschema:"每个问题选择的选项序号，从 0 开始"`
}

// RunDiagnosticOutput 诊断工具输出
type RunDiagnosticOutput struct {
	ResultID string                         `json:"result_id" jsonschema:"结论 ID"`
	Title    string                         `json:"title" jsonschema:"结论标题"`
	Summary  string                         `json:"summary" jsonschema:"结论概述"`
	Path     []domainDiagnostic.ReadingStep `json:"path" jsonschema:"阅读路径"`
	Reality  string                         `json:"reality" jsonschema:"现实提醒"`
}

// TranscriptInput 会话记录工具输入
type TranscriptInput struct {
	SessionID string `json:"session_id" jsonschema:"会话 ID"`
}

// TranscriptMessage 会话记录中的一条消息
type TranscriptMessage struct {
	Role      string `json:"role" jsonschema:"角色：user/assistant"`
	Content   string `json:"content" jsonschema:"内容"`
	CreatedAt string `json:"created_at" jsonschema:"时间（RFC3339）"`
}

// TranscriptOutput 会话记录工具输出
type TranscriptOutput struct {
	SessionID    string              `json:"session_id" jsonschema:"会话 ID"`
	CreatedAt    string              `json:"created_at" jsonschema:"创建时间（RFC3339）"`
	MessageCount int                 `json:"message_count" jsonschema:"消息数量"`
	Messages     []TranscriptMessage `json:"messages" jsonschema:"消息列表"`
}

// listModulesTool 列出知识库模块
func (s *MCPServer) listModulesTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ListModulesInput,
) (*mcp.CallToolResult, ListModulesOutput, error) {
	modules := s.store.Modules()
	if input.Section != "" {
		filtered := modules[:0]
		for _, m := range modules {
			if strings.EqualFold(m.Section, input.Section) {
				filtered = append(filtered, m)
			}
		}
		modules = filtered
	}
	return nil, ListModulesOutput{Modules: modules, Total: len(modules)}, nil
}

// runDiagnosticTool 按答案运行诊断
func (s *MCPServer) runDiagnosticTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input RunDiagnosticInput,
) (*mcp.CallToolResult, RunDiagnosticOutput, error) {
	result, err := s.diagnostic.Evaluate(input.Answers, "")
	if err != nil {
		return nil, RunDiagnosticOutput{}, fmt.Errorf("diagnostic failed: %w", err)
	}
	return nil, RunDiagnosticOutput{
		ResultID: result.ID,
		Title:    result.Title,
		Summary:  result.Summary,
		Path:     result.Path,
		Reality:  result.Reality,
	}, nil
}

// getTranscriptTool 读取会话记录
func (s *MCPServer) getTranscriptTool(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input TranscriptInput,
) (*mcp.CallToolResult, TranscriptOutput, error) {
	if input.SessionID == "" {
		return nil, TranscriptOutput{}, fmt.Errorf("session_id is required")
	}

	transcript, err := s.chat.Transcript(input.SessionID)
	if err != nil {
		return nil, TranscriptOutput{}, err
	}

	out := TranscriptOutput{
		SessionID:    transcript.Session.ID,
		CreatedAt:    transcript.Session.CreatedAt.Format(time.RFC3339),
		MessageCount: transcript.Session.MessageCount,
		Messages:     make([]TranscriptMessage, 0, len(transcript.Messages)),
	}
	for _, m := range transcript.Messages {
		out.Messages = append(out.Messages, TranscriptMessage{
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	s.logger.Debug("Transcript read over MCP", "session_id", input.SessionID, "messages", len(out.Messages))
	return nil, out, nil
}
