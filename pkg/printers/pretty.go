package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/journal/pkg/entry"
)

type PrettyPrint struct {
	ShowID bool
	// Width wraps content; zero means 80 columns.
	Width int
	Out   io.Writer
}

var (
	spacing = strings.Repeat(" ", len("3fa85f64  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Entries prints one block per entry: date, title, tags, a one line excerpt
// and the attachments.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	w := pp.out()
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	d := color.New(color.Faint)
	b := color.New(color.Bold)
	tc := color.New(color.FgCyan)
	mc := color.New(color.FgMagenta, color.Faint)

	pad := ""
	if pp.ShowID {
		pad = spacing
	}
	for _, e := range entries {
		if e == nil {
			continue
		}
		if pp.ShowID {
			id := shortID(e.ID)
			_, _ = y.Fprint(w, id)
			_, _ = y.Fprint(w, strings.Repeat(" ", len(spacing)-len(id)))
		}
		_, _ = d.Fprintf(w, "%s  ", e.EntryDate.Display())
		_, _ = b.Fprintln(w, displayTitle(e))
		if len(e.Tags) > 0 {
			_, _ = tc.Fprintf(w, "%s%s\n", pad, hashTags(e.Tags))
		}
		if ex := entry.Excerpt(e.Content, pp.width()-len(pad)); ex != "" {
			_, _ = fmt.Fprintf(w, "%s%s\n", pad, ex)
		}
		for _, m := range e.Media {
			_, _ = mc.Fprintf(w, "%s%s %s\n", pad, mediaGlyph(m.Type), entry.Sanitize(m.String()))
		}
	}
	_, _ = fmt.Fprintln(w, "")
}

// Entry prints a single entry in full.
func (pp *PrettyPrint) Entry(e *entry.Entry) {
	w := pp.out()
	b := color.New(color.Bold, color.Underline)
	d := color.New(color.Faint)
	tc := color.New(color.FgCyan)
	mc := color.New(color.FgMagenta)

	_, _ = b.Fprintln(w, displayTitle(e))
	_, _ = d.Fprintf(w, "%s", e.EntryDate.Display())
	if pp.ShowID {
		_, _ = d.Fprintf(w, "  ·  %s", e.ID)
	}
	_, _ = fmt.Fprintln(w, "")
	if len(e.Tags) > 0 {
		_, _ = tc.Fprintln(w, hashTags(e.Tags))
	}
	_, _ = fmt.Fprintln(w, "")

	body := wordwrap.String(entry.PlainText(e.Content), pp.width()-2)
	_, _ = fmt.Fprintln(w, indent.String(body, 2))

	if len(e.Media) > 0 {
		_, _ = fmt.Fprintln(w, "")
		for _, m := range e.Media {
			_, _ = mc.Fprintf(w, "%s %s", mediaGlyph(m.Type), entry.Sanitize(m.String()))
			if m.URL != "" {
				_, _ = d.Fprintf(w, "  %s", entry.Sanitize(m.URL))
			}
			_, _ = fmt.Fprintln(w, "")
		}
	}
	if !e.CreatedAt.IsZero() {
		_, _ = fmt.Fprintln(w, "")
		_, _ = d.Fprintf(w, "created %s", e.CreatedAt.Display())
		if !e.UpdatedAt.IsZero() && !e.UpdatedAt.Equal(e.CreatedAt.Time) {
			_, _ = d.Fprintf(w, "  ·  updated %s", e.UpdatedAt.Display())
		}
		_, _ = fmt.Fprintln(w, "")
	}
}

func displayTitle(e *entry.Entry) string {
	if t := strings.TrimSpace(entry.Sanitize(e.Title)); t != "" {
		return t
	}
	return "Untitled"
}

func hashTags(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, "#"+entry.Sanitize(t))
	}
	return strings.Join(parts, " ")
}

func mediaGlyph(t entry.MediaType) string {
	switch t {
	case entry.Image:
		return "▣"
	case entry.Video:
		return "▶"
	case entry.Audio:
		return "♪"
	}
	return "·"
}
