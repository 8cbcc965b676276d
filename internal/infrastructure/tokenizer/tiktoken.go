// Package tokenizer 基于 tiktoken 估算消息 Token 数
package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// 在包初始化时设置离线加载器
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// 每条消息的固定开销（role 与分隔符）
const messageOverhead = 4

// Counter 使用 tiktoken 计算 Token 数量
type Counter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.Mutex
}

var (
	counterInstance *Counter
	counterOnce     sync.Once
	counterErr      error
)

// GetCounter 获取 Counter 单例
func GetCounter() (*Counter, error) {
	counterOnce.Do(func() {
		// 使用 cl100k_base 编码（GPT-4 系列兼容）
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			counterErr = err
			return
		}
		counterInstance = &Counter{encoding: enc}
	})

	if counterErr != nil {
		return nil, counterErr
	}
	return counterInstance, nil
}

// ProvideCounter wire 使用的构造函数
func ProvideCounter() (*Counter, error) {
	return GetCounter()
}

// CountTokens 计算单条消息的 Token 数量（含消息开销）
func (c *Counter) CountTokens(text string) int {
	if text == "" {
		return messageOverhead
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.encoding.Encode(text, nil, nil)) + messageOverhead
}
