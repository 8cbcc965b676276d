package application

import (
	"github.com/google/wire"
	"github.com/listerdale/chatbot/internal/application/chat"
	"github.com/listerdale/chatbot/internal/application/diagnostic"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	chat.ProviderSet,
	diagnostic.ProviderSet,
)
