package chat

import "context"

// CompletionRequest 一次补全请求
type CompletionRequest struct {
	SystemPrompt string
	History      []*Message
	Temperature  float32
	MaxTokens    int
}

// Completion 补全结果
type Completion struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Completer 大模型补全接口
// 实现需将上游 401 映射为 ErrCompletionUnauthorized，429 映射为 ErrCompletionRateLimited，
// 其余失败包装 ErrCompletionFailed
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
	Model() string
}
