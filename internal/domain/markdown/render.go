// Package markdown 渲染助手回复中使用的 Markdown 子集
//
// 支持：链接、粗体、斜体、段落、换行、无序列表。
// 替换按固定顺序进行，输出是可以直接插入气泡的 HTML 片段。
package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	linkStyle = "color:#0088cc;text-decoration:underline;font-weight:500;"
	itemStyle = "margin:2px 0;margin-left:16px;list-style:disc;"
)

var (
	escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicPattern = regexp.MustCompile(`\*([^*]+)\*`)

	linkTemplate = `<a href="${2}" target="_blank" rel="noopener noreferrer" style="` + linkStyle + `">${1}</a>`
)

// Render 将文本渲染为 HTML
func Render(text string) string {
	html := escaper.Replace(text)

	html = linkPattern.ReplaceAllString(html, linkTemplate)
	html = boldPattern.ReplaceAllString(html, "<strong>${1}</strong>")
	html = italicPattern.ReplaceAllString(html, "<em>${1}</em>")

	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br>")

	html = replaceBullets(html)

	return "<p>" + html + "</p>"
}

// replaceBullets 将 "- item" / "• item" 转换为列表项
// 列表项出现在文本开头或 <br> 之后，延续到下一个列表项、段落结束或文本结束。
// RE2 不支持前瞻断言，这里手写扫描。
func replaceBullets(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	i := 0
	for i < len(s) {
		if end, item, ok := matchBullet(s, i); ok {
			b.WriteString(`<li style="` + itemStyle + `">`)
			b.WriteString(item)
			b.WriteString("</li>")
			i = end
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// matchBullet 尝试在位置 i 匹配一个列表项，返回匹配结束位置与条目内容
func matchBullet(s string, i int) (int, string, bool) {
	var starts []int
	if i == 0 {
		starts = append(starts, 0)
	}
	if strings.HasPrefix(s[i:], "<br>") {
		starts = append(starts, i+len("<br>"))
	}

	for _, j := range starts {
		if end, item, ok := matchBulletBody(s, j); ok {
			return end, item, true
		}
	}
	return 0, "", false
}

// matchBulletBody 匹配 标记 + 空白 + 条目内容
func matchBulletBody(s string, j int) (int, string, bool) {
	r, size := utf8.DecodeRuneInString(s[j:])
	if r != '-' && r != '•' {
		return 0, "", false
	}

	// 空白至少一个，贪婪匹配，失败时逐个回退
	var ends []int
	for p := j + size; p < len(s); {
		r, size := utf8.DecodeRuneInString(s[p:])
		if !isSpace(r) {
			break
		}
		p += size
		ends = append(ends, p)
	}

	for n := len(ends) - 1; n >= 0; n-- {
		c := ends[n]
		if end, ok := lazyItem(s, c); ok {
			return end, s[c:end], true
		}
	}
	return 0, "", false
}

// lazyItem 从 c 开始至少取一个字符，直到遇到条目边界
func lazyItem(s string, c int) (int, bool) {
	for p := c; p < len(s); {
		r, size := utf8.DecodeRuneInString(s[p:])
		if isLineTerminator(r) {
			return 0, false
		}
		p += size
		if itemBoundary(s, p) {
			return p, true
		}
	}
	return 0, false
}

func itemBoundary(s string, p int) bool {
	if p == len(s) {
		return true
	}
	rest := s[p:]
	return strings.HasPrefix(rest, "<br>-") ||
		strings.HasPrefix(rest, "<br>•") ||
		strings.HasPrefix(rest, "</p>")
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

// isSpace 与浏览器正则中的 \s 保持一致
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
