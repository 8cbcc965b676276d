package widget

import "html/template"

const svgOpen = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">`

// icons 组件使用的 SVG 图标
var icons = map[string]template.HTML{
	"chat":     svgOpen + `<path d="m3 21 1.9-5.7a8.5 8.5 0 1 1 3.8 3.8z"/></svg>`,
	"sparkles": svgOpen + `<path d="m12 3-1.912 5.813a2 2 0 0 1-1.275 1.275L3 12l5.813 1.912a2 2 0 0 1 1.275 1.275L12 21l1.912-5.813a2 2 0 0 1 1.275-1.275L21 12l-5.813-1.912a2 2 0 0 1-1.275-1.275L12 3Z"/><path d="M5 3v4"/><path d="M19 17v4"/><path d="M3 5h4"/><path d="M17 19h4"/></svg>`,
	"close":    svgOpen + `<path d="M18 6 6 18"/><path d="m6 6 12 12"/></svg>`,
	"send":     svgOpen + `<path d="m22 2-7 20-4-9-9-4Z"/><path d="M22 2 11 13"/></svg>`,
	"arrow":    svgOpen + `<path d="M5 12h14"/><path d="m12 5 7 7-7 7"/></svg>`,
	"reset":    svgOpen + `<path d="M3 12a9 9 0 1 0 9-9 9.75 9.75 0 0 0-6.74 2.74L3 8"/><path d="M3 3v5h5"/></svg>`,
}

func icon(name string) template.HTML {
	return icons[name]
}
