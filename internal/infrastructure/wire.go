package infrastructure

import (
	"github.com/google/wire"
	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/llm"
	"github.com/listerdale/chatbot/internal/infrastructure/storage"
	"github.com/listerdale/chatbot/internal/infrastructure/tokenizer"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	storage.ProviderSet,
	knowledge.ProviderSet,
	llm.ProviderSet,
	tokenizer.ProvideCounter,
)
