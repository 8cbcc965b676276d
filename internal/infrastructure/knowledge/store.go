package knowledge

import (
	"sync/atomic"

	"github.com/listerdale/chatbot/internal/domain/knowledge"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
)

// snapshot 一次加载的模块集合与对应的系统提示词
type snapshot struct {
	modules []knowledge.Module
	prompt  string
}

// Store 当前生效的知识库，整体原子替换
type Store struct {
	current atomic.Pointer[snapshot]
}

// NewStore 使用给定模块创建 Store
func NewStore(modules []knowledge.Module) *Store {
	s := &Store{}
	s.Replace(modules)
	return s
}

// Replace 替换模块集合并重建系统提示词
func (s *Store) Replace(modules []knowledge.Module) {
	copied := append([]knowledge.Module(nil), modules...)
	s.current.Store(&snapshot{
		modules: copied,
		prompt:  knowledge.BuildSystemPrompt(copied),
	})
	metrics.KnowledgeModules.Set(float64(len(copied)))
}

// Modules 返回模块列表副本
func (s *Store) Modules() []knowledge.Module {
	return append([]knowledge.Module(nil), s.current.Load().modules...)
}

// Count 模块数量
func (s *Store) Count() int {
	return len(s.current.Load().modules)
}

// SystemPrompt 当前系统提示词
func (s *Store) SystemPrompt() string {
	return s.current.Load().prompt
}
