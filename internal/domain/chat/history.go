package chat

// TokenCounter Token 估算接口
type TokenCounter interface {
	CountTokens(text string) int
}

// Window 将历史限制在最近 maxMessages 条以内，并在 tokenBudget > 0 时
// 从最旧的消息开始丢弃直到总 Token 不超过预算。最新一条消息始终保留。
func Window(history []*Message, maxMessages, tokenBudget int, counter TokenCounter) []*Message {
	if maxMessages > 0 && len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}
	if tokenBudget <= 0 || counter == nil || len(history) <= 1 {
		return history
	}

	costs := make([]int, len(history))
	total := 0
	for i, m := range history {
		costs[i] = counter.CountTokens(m.Content)
		total += costs[i]
	}

	start := 0
	for total > tokenBudget && start < len(history)-1 {
		total -= costs[start]
		start++
	}
	return history[start:]
}
