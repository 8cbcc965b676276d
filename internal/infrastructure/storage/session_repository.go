package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/listerdale/chatbot/internal/domain/chat"
)

// sessionRepository 会话 SQLite 仓储实现
type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository 创建会话仓储
func NewSessionRepository(db *sql.DB) chat.SessionRepository {
	return &sessionRepository{db: db}
}

var _ chat.SessionRepository = (*sessionRepository)(nil)

// Create 创建会话
func (r *sessionRepository) Create(session *chat.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = session.CreatedAt
	}

	query := `
		INSERT INTO chat_sessions (id, created_at, updated_at, message_count)
		VALUES (?, ?, ?, ?)`

	if _, err := r.db.Exec(query,
		session.ID,
		session.CreatedAt.UnixMilli(),
		session.UpdatedAt.UnixMilli(),
		session.MessageCount,
	); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID 根据 ID 查找会话
func (r *sessionRepository) FindByID(id string) (*chat.Session, error) {
	query := `
		SELECT id, created_at, updated_at, message_count
		FROM chat_sessions
		WHERE id = ?`

	session, err := scanSession(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

// List 分页列出会话
func (r *sessionRepository) List(limit, offset int) ([]*chat.Session, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM chat_sessions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	query := `
		SELECT id, created_at, updated_at, message_count
		FROM chat_sessions
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*chat.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, total, nil
}

// Delete 删除会话，消息随外键级联删除
func (r *sessionRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM chat_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*chat.Session, error) {
	var session chat.Session
	var createdAt, updatedAt int64
	if err := row.Scan(&session.ID, &createdAt, &updatedAt, &session.MessageCount); err != nil {
		return nil, err
	}
	session.CreatedAt = time.UnixMilli(createdAt)
	session.UpdatedAt = time.UnixMilli(updatedAt)
	return &session, nil
}
