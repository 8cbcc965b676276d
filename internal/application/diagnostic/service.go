package diagnostic

import (
	"fmt"
	"log/slog"

	domainDiagnostic "github.com/listerdale/chatbot/internal/domain/diagnostic"
	"github.com/listerdale/chatbot/internal/infrastructure/log"
	"github.com/listerdale/chatbot/internal/infrastructure/metrics"
)

// FlowView 一次流程动作后的界面
type FlowView struct {
	State    domainDiagnostic.State `json:"state"`
	HTML     string                 `json:"html"`
	FrameURL string                 `json:"frameUrl,omitempty"`
	ResultID string                 `json:"resultId,omitempty"`
}

// Stats 诊断统计
type Stats struct {
	Total    int                            `json:"total"`
	ByResult []domainDiagnostic.ResultCount `json:"byResult"`
}

// Service 诊断服务
type Service struct {
	tree   *domainDiagnostic.Tree
	runs   domainDiagnostic.RunRepository
	logger *slog.Logger
}

// NewService 创建诊断服务，决策树结构不合法时返回错误
func NewService(runs domainDiagnostic.RunRepository) (*Service, error) {
	tree := domainDiagnostic.DefaultTree()
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("invalid decision tree: %w", err)
	}
	return &Service{
		tree:   tree,
		runs:   runs,
		logger: log.NewModuleLogger("diagnostic", "service"),
	}, nil
}

// Tree 返回决策树
func (s *Service) Tree() *domainDiagnostic.Tree {
	return s.tree
}

// Evaluate 按答案求结论并记录
func (s *Service) Evaluate(answers []int, sessionID string) (*domainDiagnostic.Result, error) {
	result, err := s.tree.Evaluate(answers)
	if err != nil {
		return nil, err
	}
	s.record(result.ID, answers, sessionID)
	return result, nil
}

// Apply 在客户端状态上执行动作并渲染
func (s *Service) Apply(state domainDiagnostic.State, action domainDiagnostic.Action, sessionID string) (*FlowView, error) {
	flow, err := domainDiagnostic.Restore(s.tree, state)
	if err != nil {
		return nil, err
	}

	hadResult := flow.Result != nil
	if err := flow.Apply(action); err != nil {
		return nil, err
	}
	if !hadResult && flow.Result != nil {
		s.record(flow.Result.ID, flow.Choices(), sessionID)
	}

	html, err := domainDiagnostic.RenderFlow(flow)
	if err != nil {
		return nil, err
	}

	view := &FlowView{
		State:    flow.State(),
		HTML:     html,
		FrameURL: flow.FrameURL(),
	}
	if flow.Result != nil {
		view.ResultID = flow.Result.ID
	}
	return view, nil
}

// Stats 统计诊断结论分布
func (s *Service) Stats() (*Stats, error) {
	total, err := s.runs.Count()
	if err != nil {
		return nil, err
	}
	byResult, err := s.runs.CountByResult()
	if err != nil {
		return nil, err
	}
	if byResult == nil {
		byResult = []domainDiagnostic.ResultCount{}
	}
	return &Stats{Total: total, ByResult: byResult}, nil
}

// record 保存诊断记录，失败只记日志
func (s *Service) record(resultID string, answers []int, sessionID string) {
	metrics.DiagnosticResults.WithLabelValues(resultID).Inc()

	run := &domainDiagnostic.Run{
		SessionID: sessionID,
		ResultID:  resultID,
		Answers:   append([]int(nil), answers...),
	}
	if err := s.runs.Save(run); err != nil {
		s.logger.Warn("Failed to record diagnostic run", "result", resultID, "error", err)
		return
	}
	s.logger.Info("Diagnostic completed", "result", resultID, "run_id", run.ID)
}
