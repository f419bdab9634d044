package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/journal/pkg/entry"
)

// RenderQuestion renders the reflection prompt as a markdown block quote.
func RenderQuestion(question string, width int, style string) (string, error) {
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 10)),
	)
	if err != nil {
		return "", err
	}
	md := "### Question of the day\n\n> " + strings.TrimSpace(entry.Sanitize(question)) + "\n"
	return renderer.Render(md)
}

// Question prints the prompt. Rendering problems fall back to plain text.
func (pp *PrettyPrint) Question(question string, style string) {
	out, err := RenderQuestion(question, pp.width(), style)
	if err != nil {
		out = entry.Sanitize(question) + "\n"
	}
	_, _ = fmt.Fprint(pp.out(), out)
}
