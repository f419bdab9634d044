package entry

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const blockSelector = "p, div, br, li, h1, h2, h3, h4, h5, h6, blockquote, tr, pre"

// PlainText reduces rich-text HTML content to terminal-safe text. Block
// elements become line breaks and runs of blank lines collapse to one.
func PlainText(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return Sanitize(strings.TrimSpace(content))
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Sanitize(strings.TrimSpace(content))
	}
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})

	lines := strings.Split(doc.Text(), "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, l)
		blank = false
	}
	return Sanitize(strings.TrimSpace(strings.Join(out, "\n")))
}

// Excerpt is the single-line summary used by previews, cut to width cells.
func Excerpt(content string, width int) string {
	text := strings.Join(strings.Fields(PlainText(content)), " ")
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

// Sanitize strips terminal escape sequences and control characters from
// user supplied text. Newlines and tabs survive.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// IsBlank reports whether rich-text content has no visible text.
func IsBlank(content string) bool {
	return strings.TrimSpace(PlainText(content)) == ""
}
