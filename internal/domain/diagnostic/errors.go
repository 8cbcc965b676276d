package diagnostic

import "errors"

var (
	// ErrUnknownNode 节点在决策树中不存在
	ErrUnknownNode = errors.New("unknown decision tree node")
	// ErrInvalidOption 选项序号越界
	ErrInvalidOption = errors.New("invalid option index")
	// ErrNoResult 当前流程尚未得到结论
	ErrNoResult = errors.New("diagnostic has no result yet")
	// ErrInvalidStep 阅读路径步骤越界
	ErrInvalidStep = errors.New("invalid reading step")
	// ErrUnknownAction 不支持的流程动作
	ErrUnknownAction = errors.New("unknown flow action")
	// ErrIncomplete 答案不足以到达结论
	ErrIncomplete = errors.New("answers do not reach a result")
	// ErrUnknownMode 不支持的界面阶段
	ErrUnknownMode = errors.New("unknown flow mode")
)
