package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appDiagnostic "github.com/listerdale/chatbot/internal/application/diagnostic"
	domainDiagnostic "github.com/listerdale/chatbot/internal/domain/diagnostic"
	"github.com/listerdale/chatbot/internal/interfaces/http/response"
)

// EvaluateRequest 诊断求值请求
type EvaluateRequest struct {
	Answers   []int  `json:"answers" binding:"required"`
	SessionID string `json:"sessionId,omitempty"`
}

// FlowRequest 诊断流程动作请求
type FlowRequest struct {
	State     domainDiagnostic.State  `json:"state"`
	Action    domainDiagnostic.Action `json:"action"`
	SessionID string                  `json:"sessionId,omitempty"`
}

// DiagnosticHandler 诊断处理器
type DiagnosticHandler struct {
	service *appDiagnostic.Service
}

// NewDiagnosticHandler 创建诊断处理器
func NewDiagnosticHandler(service *appDiagnostic.Service) *DiagnosticHandler {
	return &DiagnosticHandler{service: service}
}

// Tree 返回完整决策树
// @Summary 决策树
// @Tags 诊断
// @Produce json
// @Success 200 {object} response.Response
// @Router /diagnostic/tree [get]
func (h *DiagnosticHandler) Tree(c *gin.Context) {
	response.Success(c, h.service.Tree())
}

// Evaluate 按答案序号求结论
// @Summary 诊断求值
// @Tags 诊断
// @Accept json
// @Produce json
// @Param body body EvaluateRequest true "答案"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /diagnostic/evaluate [post]
func (h *DiagnosticHandler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "answers are required")
		return
	}

	result, err := h.service.Evaluate(req.Answers, req.SessionID)
	if err != nil {
		response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid answers", err.Error())
		return
	}
	response.Success(c, result)
}

// Flow 在客户端状态上执行一次流程动作并返回新的界面
// @Summary 诊断流程
// @Tags 诊断
// @Accept json
// @Produce json
// @Param body body FlowRequest true "状态与动作"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Router /diagnostic/flow [post]
func (h *DiagnosticHandler) Flow(c *gin.Context) {
	var req FlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid flow request")
		return
	}

	view, err := h.service.Apply(req.State, req.Action, req.SessionID)
	if err != nil {
		if isFlowError(err) {
			response.ErrorWithDetail(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid flow action", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "render failed")
		return
	}
	response.Success(c, view)
}

// Stats 诊断结论分布
// @Summary 诊断统计
// @Tags 诊断
// @Produce json
// @Success 200 {object} response.Response
// @Router /diagnostic/stats [get]
func (h *DiagnosticHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "failed to load stats")
		return
	}
	response.Success(c, stats)
}

func isFlowError(err error) bool {
	for _, target := range []error{
		domainDiagnostic.ErrUnknownNode,
		domainDiagnostic.ErrInvalidOption,
		domainDiagnostic.ErrNoResult,
		domainDiagnostic.ErrInvalidStep,
		domainDiagnostic.ErrUnknownAction,
		domainDiagnostic.ErrUnknownMode,
		domainDiagnostic.ErrIncomplete,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
