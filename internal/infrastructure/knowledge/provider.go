package knowledge

import (
	"fmt"

	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
)

// ProvideStore 按配置加载模块：指定文件优先，否则使用内置列表
func ProvideStore(cfg *config.KnowledgeConfig) (*Store, error) {
	logger := log.NewModuleLogger("knowledge", "store")

	if cfg.ModulesFile == "" {
		modules, err := LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded modules: %w", err)
		}
		logger.Info("Loaded embedded modules", "modules", len(modules))
		return NewStore(modules), nil
	}

	modules, err := LoadFile(cfg.ModulesFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded modules file", "path", cfg.ModulesFile, "modules", len(modules))
	return NewStore(modules), nil
}

// ProvideWatcher 启用热重载时创建监听器，否则返回 nil
func ProvideWatcher(cfg *config.KnowledgeConfig, store *Store) (*Watcher, error) {
	if !cfg.Watch || cfg.ModulesFile == "" {
		return nil, nil
	}
	return NewWatcher(cfg.ModulesFile, store, DefaultDebounceDelay)
}
