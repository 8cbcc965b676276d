package widget

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/listerdale/chatbot/internal/domain/markdown"
)

var widgetTemplate = template.Must(template.New("widget").Funcs(template.FuncMap{
	"icon":     icon,
	"markdown": func(s string) template.HTML { return template.HTML(markdown.RenderSafe(s)) },
}).Parse(
	`{{- if not .Open -}}
<button class="lsc-btn" data-action="open" aria-label="Ask a leadership question">{{icon "chat"}}<span class="lsc-btn-text">Ask a leadership question</span></button>
{{- else -}}
<div class="lsc-window">
<div class="lsc-header"><div class="lsc-header-left"><div class="lsc-header-icon">{{icon "sparkles"}}</div><div><div class="lsc-header-title">Leadership Guide</div><div class="lsc-header-sub">Powered by Listerdale Strategy</div></div></div>
<div class="lsc-header-actions"><button data-action="new" title="New conversation">{{icon "reset"}}</button><button data-action="close" title="Close">{{icon "close"}}</button></div></div>
<div class="lsc-messages" id="lsc-messages">
{{- if .Empty}}
<div class="lsc-empty"><div style="text-align:center"><div class="lsc-empty-icon" style="margin:0 auto">{{icon "sparkles"}}</div><h4 style="margin-top:12px">Welcome to the Leadership Guide</h4><p>Ask me anything about leadership, or describe a challenge you&#39;re facing.</p></div>
<div class="lsc-suggestions"><div class="lsc-suggestions-label">Common questions</div>
{{- range $.Suggestions}}
<button class="lsc-suggest-btn" data-action="send" data-text="{{.}}"><span>{{.}}</span>{{icon "arrow"}}</button>
{{- end}}
</div></div>
{{- else}}
{{- range .Messages}}
{{- if .IsUser}}
<div class="lsc-msg lsc-msg-user"><div class="lsc-msg-bubble">{{.Content}}</div></div>
{{- else}}
<div class="lsc-msg lsc-msg-ai"><div class="lsc-msg-avatar">{{icon "sparkles"}}</div><div class="lsc-msg-bubble">{{markdown .Content}}</div></div>
{{- end}}
{{- end}}
{{- if .Loading}}
<div class="lsc-msg lsc-msg-ai"><div class="lsc-msg-avatar">{{icon "sparkles"}}</div><div class="lsc-msg-bubble"><div class="lsc-typing"><div class="lsc-typing-dot"></div><div class="lsc-typing-dot"></div><div class="lsc-typing-dot"></div></div></div></div>
{{- end}}
{{- end}}
</div>
<div class="lsc-input-area"><form class="lsc-input-form" data-action="submit"><textarea id="lsc-input" placeholder="Ask about leadership..." rows="1"></textarea><button type="submit" class="lsc-send-btn" id="lsc-send"{{if .Loading}} disabled{{end}}>{{icon "send"}}</button></form>
<div class="lsc-footer">AI-powered guidance based on Listerdale leadership frameworks</div></div>
</div>
{{- end}}`))

// view 模板数据
type view struct {
	State
	Suggestions []string
}

// Render 将组件状态渲染为容器内的 HTML
func Render(state State) (string, error) {
	if len(state.Messages) > MaxMessages {
		return "", fmt.Errorf("too many messages: %d > %d", len(state.Messages), MaxMessages)
	}

	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, view{State: state, Suggestions: Suggestions}); err != nil {
		return "", fmt.Errorf("failed to render widget: %w", err)
	}
	return buf.String(), nil
}
