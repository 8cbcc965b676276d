package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleModules() []Module {
	return []Module{
		{Title: "How to Give Feedback", URL: "modules/give-feedback.html", Section: "People", Content: "Feedback\nframework"},
		{Title: "Prioritisation & Trade-offs", URL: "modules/prioritisation.html", Section: "Workload", Description: "Eisenhower matrix"},
		{Title: "Accountability", URL: "modules/accountability.html", Section: "People", Content: strings.Repeat("x", 200)},
	}
}

func TestGroupBySection_KeepsFirstAppearanceOrder(t *testing.T) {
	sections := GroupBySection(sampleModules())

	assert.Len(t, sections, 2)
	assert.Equal(t, "People", sections[0].Name)
	assert.Len(t, sections[0].Modules, 2)
	assert.Equal(t, "Workload", sections[1].Name)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt(sampleModules())

	assert.True(t, strings.HasPrefix(prompt, "You are the Listerdale Leadership Guide"))
	assert.Contains(t, prompt, "from the 3 leadership modules")
	assert.Contains(t, prompt, "\n## People\n- **How to Give Feedback** (modules/give-feedback.html)\n  Feedback framework...\n")
	// 正文为空时使用描述
	assert.Contains(t, prompt, "- **Prioritisation & Trade-offs** (modules/prioritisation.html)\n  Eisenhower matrix...\n")
	// 摘要截断为 150 个字符
	assert.Contains(t, prompt, "  "+strings.Repeat("x", 150)+"...\n")
	assert.NotContains(t, prompt, strings.Repeat("x", 151))
	assert.True(t, strings.HasSuffix(prompt, "Start With Why"))

	// 章节顺序
	assert.Less(t, strings.Index(prompt, "## People"), strings.Index(prompt, "## Workload"))
}

func TestBuildSystemPrompt_Empty(t *testing.T) {
	prompt := BuildSystemPrompt(nil)

	assert.Contains(t, prompt, "from the 0 leadership modules")
	assert.Contains(t, prompt, "AVAILABLE MODULES BY SECTION:\n\nQUICK DIAGNOSTIC PATHS:")
}
