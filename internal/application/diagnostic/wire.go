package diagnostic

import "github.com/google/wire"

// ProviderSet 诊断应用服务 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
