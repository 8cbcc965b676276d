package llm

import (
	"github.com/google/wire"
	"github.com/listerdale/chatbot/internal/domain/chat"
)

// ProviderSet LLM 基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
	wire.Bind(new(chat.Completer), new(*Client)),
)
