package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/listerdale/chatbot/internal/domain/chat"
)

// messageRepository 消息 SQLite 仓储实现
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository 创建消息仓储
func NewMessageRepository(db *sql.DB) chat.MessageRepository {
	return &messageRepository{db: db}
}

var _ chat.MessageRepository = (*messageRepository)(nil)

// Append 追加消息并推进会话统计
func (r *messageRepository) Append(msg *chat.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("append %q: %w", msg.Role, chat.ErrInvalidRole)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO chat_messages (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)`,
		msg.SessionID, string(msg.Role), msg.Content, msg.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	updated, err := tx.Exec(`
		UPDATE chat_sessions
		SET updated_at = ?, message_count = message_count + 1
		WHERE id = ?`,
		msg.CreatedAt.UnixMilli(), msg.SessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n, _ := updated.RowsAffected(); n == 0 {
		return fmt.Errorf("append to %s: %w", msg.SessionID, chat.ErrSessionNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit message: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		msg.ID = id
	}
	return nil
}

// FindRecent 返回最近 limit 条消息（按时间正序）
func (r *messageRepository) FindRecent(sessionID string, limit int) ([]*chat.Message, error) {
	query := `
		SELECT id, session_id, role, content, created_at FROM (
			SELECT id, session_id, role, content, created_at
			FROM chat_messages
			WHERE session_id = ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id ASC`

	return r.query(query, sessionID, limit)
}

// FindBySession 返回会话全部消息
func (r *messageRepository) FindBySession(sessionID string) ([]*chat.Message, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = ?
		ORDER BY id ASC`

	return r.query(query, sessionID)
}

func (r *messageRepository) query(query string, args ...any) ([]*chat.Message, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*chat.Message
	for rows.Next() {
		var msg chat.Message
		var role string
		var createdAt int64
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = chat.Role(role)
		msg.CreatedAt = time.UnixMilli(createdAt)
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}
