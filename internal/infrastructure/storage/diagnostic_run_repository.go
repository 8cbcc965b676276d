package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/listerdale/chatbot/internal/domain/diagnostic"
)

// diagnosticRunRepository 诊断记录 SQLite 仓储实现
type diagnosticRunRepository struct {
	db *sql.DB
}

// NewDiagnosticRunRepository 创建诊断记录仓储
func NewDiagnosticRunRepository(db *sql.DB) diagnostic.RunRepository {
	return &diagnosticRunRepository{db: db}
}

var _ diagnostic.RunRepository = (*diagnosticRunRepository)(nil)

// Save 保存诊断记录
func (r *diagnosticRunRepository) Save(run *diagnostic.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	answers, err := json.Marshal(run.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	var sessionID sql.NullString
	if run.SessionID != "" {
		sessionID = sql.NullString{String: run.SessionID, Valid: true}
	}

	if _, err := r.db.Exec(`
		INSERT INTO diagnostic_runs (id, session_id, result_id, answers, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, sessionID, run.ResultID, string(answers), run.CreatedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("failed to save diagnostic run: %w", err)
	}
	return nil
}

// CountByResult 按结论统计
func (r *diagnosticRunRepository) CountByResult() ([]diagnostic.ResultCount, error) {
	rows, err := r.db.Query(`
		SELECT result_id, COUNT(*) AS n
		FROM diagnostic_runs
		GROUP BY result_id
		ORDER BY n DESC, result_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count diagnostic runs: %w", err)
	}
	defer rows.Close()

	var counts []diagnostic.ResultCount
	for rows.Next() {
		var c diagnostic.ResultCount
		if err := rows.Scan(&c.ResultID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Count 记录总数
func (r *diagnosticRunRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM diagnostic_runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count diagnostic runs: %w", err)
	}
	return n, nil
}
