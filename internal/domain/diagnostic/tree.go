// Package diagnostic 实现领导力诊断决策树及其引导阅读流程
package diagnostic

import (
	"fmt"
	"strings"
)

// ResultPrefix 结论节点 ID 前缀
const ResultPrefix = "r_"

// IsResultID 判断节点 ID 是否指向结论
func IsResultID(id string) bool {
	return strings.HasPrefix(id, ResultPrefix)
}

// Option 问题的一个选项
type Option struct {
	Label string `json:"label"`
	Next  string `json:"next"`
}

// Question 问题节点
type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []Option `json:"options"`
}

// ReadingStep 阅读路径中的一步
type ReadingStep struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Why  string `json:"why"`
}

// Result 结论节点
type Result struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Summary string        `json:"summary"`
	Path    []ReadingStep `json:"path"`
	Reality string        `json:"reality"`
}

// Tree 决策树
type Tree struct {
	Root      string               `json:"root"`
	MaxDepth  int                  `json:"maxDepth"`
	Questions map[string]*Question `json:"questions"`
	Results   map[string]*Result   `json:"results"`
}

// Question 按 ID 查找问题节点
func (t *Tree) Question(id string) (*Question, error) {
	q, ok := t.Questions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return q, nil
}

// Result 按 ID 查找结论节点
func (t *Tree) Result(id string) (*Result, error) {
	r, ok := t.Results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	return r, nil
}

// Validate 校验决策树结构：所有跳转可解析、问题都有选项、深度不超过 MaxDepth、结论都有阅读路径
func (t *Tree) Validate() error {
	if _, err := t.Question(t.Root); err != nil {
		return fmt.Errorf("root: %w", err)
	}
	for id, r := range t.Results {
		if !IsResultID(id) {
			return fmt.Errorf("result %s: id must start with %q", id, ResultPrefix)
		}
		if len(r.Path) == 0 {
			return fmt.Errorf("result %s: empty reading path", id)
		}
	}
	return t.validateNode(t.Root, 1, map[string]bool{})
}

func (t *Tree) validateNode(id string, depth int, visiting map[string]bool) error {
	if depth > t.MaxDepth {
		return fmt.Errorf("question %s: depth %d exceeds %d", id, depth, t.MaxDepth)
	}
	if visiting[id] {
		return fmt.Errorf("question %s: cycle detected", id)
	}
	q, err := t.Question(id)
	if err != nil {
		return err
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %s: no options", id)
	}

	visiting[id] = true
	defer delete(visiting, id)

	for i, opt := range q.Options {
		if IsResultID(opt.Next) {
			if _, err := t.Result(opt.Next); err != nil {
				return fmt.Errorf("question %s option %d: %w", id, i, err)
			}
			continue
		}
		if err := t.validateNode(opt.Next, depth+1, visiting); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate 按选项序号从根节点走到结论
func (t *Tree) Evaluate(answers []int) (*Result, error) {
	flow, err := Replay(t, answers)
	if err != nil {
		return nil, err
	}
	if flow.Result == nil {
		return nil, ErrIncomplete
	}
	return flow.Result, nil
}
