package chat

// SessionRepository 会话仓储接口
type SessionRepository interface {
	// Create 创建会话
	Create(session *Session) error

	// FindByID 根据 ID 查找会话，不存在时返回 nil, nil
	FindByID(id string) (*Session, error)

	// List 分页列出会话（按更新时间倒序），返回总数
	List(limit, offset int) ([]*Session, int, error)

	// Delete 删除会话及其消息
	Delete(id string) error
}

// MessageRepository 消息仓储接口
type MessageRepository interface {
	// Append 追加消息，同时推进会话的 updated_at 与 message_count
	Append(msg *Message) error

	// FindRecent 返回会话最近的 limit 条消息，按时间正序
	FindRecent(sessionID string, limit int) ([]*Message, error)

	// FindBySession 返回会话全部消息，按时间正序
	FindBySession(sessionID string) ([]*Message, error)
}
