package diagnostic

import "fmt"

// State 客户端保存的流程状态，服务端据此重放
type State struct {
	Answers     []int `json:"answers"`
	Mode        Mode  `json:"mode"`
	ReadingStep int   `json:"readingStep"`
}

// ActionType 流程动作类型
type ActionType string

const (
	ActionStart        ActionType = "start"
	ActionSelect       ActionType = "select"
	ActionBack         ActionType = "back"
	ActionRestart      ActionType = "restart"
	ActionOpenReading  ActionType = "open_reading"
	ActionNext         ActionType = "next"
	ActionPrev         ActionType = "prev"
	ActionBackToResult ActionType = "back_to_result"
)

// Action 作用于流程的一次操作
type Action struct {
	Type  ActionType `json:"type"`
	Index int        `json:"index,omitempty"`
}

// State 导出当前流程状态
func (f *Flow) State() State {
	st := State{Answers: f.Choices(), Mode: f.Mode, ReadingStep: f.ReadingStep}
	if st.Mode != ModeReading {
		st.ReadingStep = -1
	}
	return st
}

// Restore 由客户端状态重建流程，模式只接受答案能够支撑的阶段
func Restore(tree *Tree, st State) (*Flow, error) {
	f, err := Replay(tree, st.Answers)
	if err != nil {
		return nil, err
	}
	switch st.Mode {
	case "", ModeQuestions:
		if f.Mode != ModeQuestions {
			// 已得出结论时按结论页展示
			return f, nil
		}
	case ModeResult:
		if f.Result == nil {
			return nil, ErrNoResult
		}
	case ModeReading:
		if err := f.OpenReading(st.ReadingStep); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, st.Mode)
	}
	return f, nil
}

// Apply 执行一次流程动作
func (f *Flow) Apply(a Action) error {
	switch a.Type {
	case ActionStart, ActionRestart:
		f.Restart()
		return nil
	case ActionSelect:
		return f.Select(a.Index)
	case ActionBack:
		f.Back()
		return nil
	case ActionOpenReading:
		return f.OpenReading(a.Index)
	case ActionNext:
		return f.Next()
	case ActionPrev:
		return f.Prev()
	case ActionBackToResult:
		return f.BackToResult()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}
