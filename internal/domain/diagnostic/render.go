package diagnostic

import (
	"bytes"
	"fmt"
	"html/template"
)

var flowTemplate = template.Must(template.New("flow").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(
	`<div class="diag-progress">
{{- range .Progress}}<div class="diag-progress-dot{{if .Active}} active{{end}}{{if .Done}} done{{end}}"></div>{{end -}}
</div>
<div class="diag-body">
{{- if eq .Mode "questions"}}
<div class="diag-question-area">
<div class="diag-step-label">{{.StepLabel}}</div>
<h2 class="diag-question">{{.Q.Text}}</h2>
<div class="diag-options">
{{- range $i, $opt := .Q.Options}}
<button class="diag-option" data-action="select" data-index="{{$i}}">{{$opt.Label}}</button>
{{- end}}
</div>
{{- if .Answers}}
<button class="diag-back" data-action="back">← Back</button>
{{- end}}
</div>
{{- else if eq .Mode "result"}}
<div class="diag-result">
<div class="diag-result-header"><div class="diag-result-icon">🎯</div><h2 class="diag-result-title">{{.Result.Title}}</h2></div>
<p class="diag-result-summary">{{.Result.Summary}}</p>
<div class="diag-result-path">
<div class="diag-result-path-label">Your reading path — click any step to read it here</div>
{{- range $i, $step := .Result.Path}}
<div class="diag-result-step" data-action="open_reading" data-index="{{$i}}"><div class="diag-result-step-num">{{inc $i}}</div><div class="diag-result-step-content"><div class="diag-result-step-name">{{$step.Name}}</div><div class="diag-result-step-why">{{$step.Why}}</div></div><div class="diag-result-step-arrow">→</div></div>
{{- end}}
</div>
<div class="diag-result-reality"><strong>Reality check:</strong> {{.Result.Reality}}</div>
<div class="diag-result-actions"><button class="diag-btn-start-reading" data-action="open_reading" data-index="0">Start reading path</button><button class="diag-restart-alt" data-action="restart">Start over</button></div>
</div>
{{- else}}
<div class="diag-reading">
<div class="diag-reading-nav">
<button class="diag-reading-back-btn" data-action="back_to_result">← Back to results</button>
<div class="diag-reading-steps">
{{- range $i, $step := .Result.Path}}
<button class="diag-reading-step-pill{{if eq $i $.ReadingStep}} active{{end}}{{if lt $i $.ReadingStep}} done{{end}}" data-action="open_reading" data-index="{{$i}}"><span class="pill-num">{{inc $i}}</span><span class="pill-name">{{$step.Name}}</span></button>
{{- end}}
</div>
<div class="diag-reading-arrows">
{{- if gt .ReadingStep 0}}<button class="diag-reading-prev" data-action="prev">← Previous</button>{{end}}
{{- with .NextStep}}<button class="diag-reading-next" data-action="next">Next: {{.Name}} →</button>
{{- else}}<button class="diag-reading-done" data-action="close">✓ Done — close diagnostic</button>{{end -}}
</div>
</div>
<div class="diag-reading-frame-wrapper"><div class="diag-reading-loader">Loading module...</div><iframe class="diag-reading-frame" frameborder="0" src="{{.FrameURL}}"></iframe></div>
</div>
{{- end}}
</div>`))

// flowView 模板数据
type flowView struct {
	*Flow
	Q        *Question
	NextStep *ReadingStep
}

// RenderFlow 将流程渲染为诊断弹窗内容
func RenderFlow(f *Flow) (string, error) {
	v := flowView{Flow: f}
	switch f.Mode {
	case ModeQuestions:
		q, err := f.Question()
		if err != nil {
			return "", err
		}
		v.Q = q
	case ModeResult:
		if f.Result == nil {
			return "", ErrNoResult
		}
	case ModeReading:
		if f.CurrentStep() == nil {
			return "", ErrInvalidStep
		}
		if next := f.ReadingStep + 1; next < len(f.Result.Path) {
			v.NextStep = &f.Result.Path[next]
		}
	}

	var buf bytes.Buffer
	if err := flowTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render diagnostic: %w", err)
	}
	return buf.String(), nil
}
