package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// printMarkdown 在终端渲染 Markdown，渲染器不可用时原样输出
func printMarkdown(w io.Writer, md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		if out, rerr := renderer.Render(md); rerr == nil {
			_, err = io.WriteString(w, out)
			return err
		}
	}
	_, err = fmt.Fprintln(w, md)
	return err
}
