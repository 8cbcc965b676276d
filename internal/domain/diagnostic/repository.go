package diagnostic

import "time"

// Run 一次完成的诊断记录
type Run struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId,omitempty"`
	ResultID  string    `json:"resultId"`
	Answers   []int     `json:"answers"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResultCount 单个结论的命中次数
type ResultCount struct {
	ResultID string `json:"resultId"`
	Count    int    `json:"count"`
}

// RunRepository 诊断记录仓储接口
type RunRepository interface {
	// Save 保存诊断记录
	Save(run *Run) error
	// CountByResult 按结论统计次数，次数降序
	CountByResult() ([]ResultCount, error)
	// Count 记录总数
	Count() (int, error)
}
