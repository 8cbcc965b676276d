package diagnostic

import "fmt"

// Mode 诊断界面所处阶段
type Mode string

const (
	ModeQuestions Mode = "questions"
	ModeResult    Mode = "result"
	ModeReading   Mode = "reading"
)

// Answer 一次已作出的选择
type Answer struct {
	Node   string `json:"node"`
	Option int    `json:"option"`
}

// Dot 进度指示点
type Dot struct {
	Active bool `json:"active"`
	Done   bool `json:"done"`
}

// Flow 诊断流程状态机
type Flow struct {
	tree *Tree

	Current     string
	Answers     []Answer
	Result      *Result
	ReadingStep int
	Mode        Mode
}

// NewFlow 创建从根节点开始的流程
func NewFlow(tree *Tree) *Flow {
	f := &Flow{tree: tree}
	f.Restart()
	return f
}

// Replay 按选项序号重放流程，结论之后不允许再有答案
func Replay(tree *Tree, choices []int) (*Flow, error) {
	f := NewFlow(tree)
	for i, c := range choices {
		if f.Mode != ModeQuestions {
			return nil, fmt.Errorf("%w: answer %d given after result", ErrInvalidOption, i)
		}
		if err := f.Select(c); err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
	}
	return f, nil
}

// Tree 返回流程所用的决策树
func (f *Flow) Tree() *Tree {
	return f.tree
}

// Restart 回到第一个问题并清空答案
func (f *Flow) Restart() {
	f.Current = f.tree.Root
	f.Answers = nil
	f.Result = nil
	f.ReadingStep = -1
	f.Mode = ModeQuestions
}

// Question 返回当前问题
func (f *Flow) Question() (*Question, error) {
	return f.tree.Question(f.Current)
}

// Select 选择当前问题的第 i 个选项
func (f *Flow) Select(i int) error {
	if f.Mode != ModeQuestions {
		return fmt.Errorf("%w: no open question", ErrInvalidOption)
	}
	q, err := f.Question()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(q.Options) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidOption, i, len(q.Options))
	}

	next := q.Options[i].Next
	if IsResultID(next) {
		r, err := f.tree.Result(next)
		if err != nil {
			return err
		}
		f.Answers = append(f.Answers, Answer{Node: f.Current, Option: i})
		f.Result = r
		f.ReadingStep = -1
		f.Mode = ModeResult
		return nil
	}

	if _, err := f.tree.Question(next); err != nil {
		return err
	}
	f.Answers = append(f.Answers, Answer{Node: f.Current, Option: i})
	f.Current = next
	return nil
}

// Back 撤销最后一个答案，没有答案时返回 false
func (f *Flow) Back() bool {
	if len(f.Answers) == 0 {
		return false
	}
	prev := f.Answers[len(f.Answers)-1]
	f.Answers = f.Answers[:len(f.Answers)-1]
	f.Current = prev.Node
	f.Result = nil
	f.ReadingStep = -1
	f.Mode = ModeQuestions
	return true
}

// OpenReading 打开阅读路径的第 i 步
func (f *Flow) OpenReading(i int) error {
	if f.Result == nil {
		return ErrNoResult
	}
	if i < 0 || i >= len(f.Result.Path) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidStep, i, len(f.Result.Path))
	}
	f.ReadingStep = i
	f.Mode = ModeReading
	return nil
}

// Next 阅读下一步
func (f *Flow) Next() error {
	if f.Mode != ModeReading {
		return fmt.Errorf("%w: not reading", ErrInvalidStep)
	}
	return f.OpenReading(f.ReadingStep + 1)
}

// Prev 阅读上一步
func (f *Flow) Prev() error {
	if f.Mode != ModeReading {
		return fmt.Errorf("%w: not reading", ErrInvalidStep)
	}
	return f.OpenReading(f.ReadingStep - 1)
}

// BackToResult 从阅读界面返回结论概览
func (f *Flow) BackToResult() error {
	if f.Result == nil {
		return ErrNoResult
	}
	f.ReadingStep = -1
	f.Mode = ModeResult
	return nil
}

// Choices 返回已选择的选项序号
func (f *Flow) Choices() []int {
	out := make([]int, len(f.Answers))
	for i, a := range f.Answers {
		out[i] = a.Option
	}
	return out
}

// StepLabel 问题阶段的步骤文案
func (f *Flow) StepLabel() string {
	return fmt.Sprintf("Question %d of %d", len(f.Answers)+1, f.tree.MaxDepth)
}

// Progress 进度指示：提问阶段固定 MaxDepth 个点，之后每个阅读步骤一个点
func (f *Flow) Progress() []Dot {
	if f.Mode == ModeQuestions {
		step := len(f.Answers) + 1
		dots := make([]Dot, f.tree.MaxDepth)
		for i := range dots {
			dots[i].Active = i < step
		}
		return dots
	}
	if f.Result == nil {
		return nil
	}
	dots := make([]Dot, len(f.Result.Path))
	if f.Mode == ModeReading {
		for i := range dots {
			dots[i].Done = i < f.ReadingStep
			dots[i].Active = i == f.ReadingStep
		}
	}
	return dots
}

// CurrentStep 当前阅读步骤，不在阅读阶段时返回 nil
func (f *Flow) CurrentStep() *ReadingStep {
	if f.Mode != ModeReading || f.Result == nil {
		return nil
	}
	return &f.Result.Path[f.ReadingStep]
}

// FrameURL 阅读阶段内嵌页面地址
func (f *Flow) FrameURL() string {
	if step := f.CurrentStep(); step != nil {
		return step.URL
	}
	return ""
}
