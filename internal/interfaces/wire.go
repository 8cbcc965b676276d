package interfaces

import (
	"github.com/google/wire"
	"github.com/listerdale/chatbot/internal/interfaces/http"
	"github.com/listerdale/chatbot/internal/interfaces/mcp"
)

// ProviderSet Interfaces 层总 ProviderSet
var ProviderSet = wire.NewSet(
	http.ProviderSet,
	mcp.ProviderSet,
)
