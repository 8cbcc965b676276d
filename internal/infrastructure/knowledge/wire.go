package knowledge

import "github.com/google/wire"

// ProviderSet 知识库 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideStore,
	ProvideWatcher,
)
