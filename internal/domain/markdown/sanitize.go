package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// policy 只放行渲染器会生成的标签和属性
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements("p", "br", "strong", "em", "li")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")
	p.AllowStyles("color", "text-decoration", "font-weight").OnElements("a")
	p.AllowStyles("margin", "margin-left", "list-style").OnElements("li")
	return p
}

// Sanitize 清理渲染结果中的危险链接与属性
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// RenderSafe 渲染并清理
func RenderSafe(text string) string {
	return Sanitize(Render(text))
}
