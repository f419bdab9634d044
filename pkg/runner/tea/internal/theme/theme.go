package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/journal/pkg/store"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Name store.Theme
	// Glamour is the glamour standard style matching the palette.
	Glamour string

	Header   lipgloss.Style
	Footer   FooterTheme
	Panel    PanelTheme
	Report   ReportTheme
	Timeline TimelineTheme
	Toast    ToastTheme
	Calendar CalendarTheme
	List     ListTheme
	Button   ButtonTheme
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Status              lipgloss.Style
	Mode                lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
	CommandSelectedDesc lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Meta  lipgloss.Style
	Tag   lipgloss.Style
	Field lipgloss.Style
	Focus lipgloss.Style
}

// ReportTheme styles the report overlay.
type ReportTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Text   lipgloss.Style
}

// TimelineTheme styles the axis, its markers and the hover preview.
type TimelineTheme struct {
	Axis         lipgloss.Style
	Marker       lipgloss.Style
	MarkerActive lipgloss.Style
	Label        lipgloss.Style
	Bounds       lipgloss.Style
	Preview      lipgloss.Style
	PreviewTitle lipgloss.Style
	PreviewMeta  lipgloss.Style
}

type ToastTheme struct {
	Info  lipgloss.Style
	Error lipgloss.Style
}

type CalendarTheme struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	// Heat shades days by entry count, lightest first.
	Heat []lipgloss.Style
}

type ListTheme struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Dim      lipgloss.Style
}

type ButtonTheme struct {
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
}

type palette struct {
	fg, dim, faint, accent, accent2, ok, bad, sel string
	glamour                                       string
	// heat endpoints are hex so they can be blended.
	heatLow, heatHigh string
}

// heatLevels is how many shades the calendar uses.
const heatLevels = 4

var (
	dark = palette{
		fg: "252", dim: "245", faint: "240", accent: "212", accent2: "39",
		ok: "42", bad: "203", sel: "236", glamour: "dark",
		heatLow: "#3a6073", heatHigh: "#7ee8fa",
	}
	light = palette{
		fg: "235", dim: "241", faint: "250", accent: "125", accent2: "25",
		ok: "28", bad: "160", sel: "254", glamour: "light",
		heatLow: "#9ecae1", heatHigh: "#08519c",
	}
)

// Default returns the dark theme.
func Default() Theme {
	return Dark()
}

func Dark() Theme {
	return build(store.Dark, dark)
}

func Light() Theme {
	return build(store.Light, light)
}

// For maps a stored preference onto its theme.
func For(t store.Theme) Theme {
	if t == store.Light {
		return Light()
	}
	return Dark()
}

func build(name store.Theme, p palette) Theme {
	c := lipgloss.Color
	commandName := lipgloss.NewStyle().
		Foreground(c(p.accent)).
		Bold(true)
	commandDesc := lipgloss.NewStyle().Foreground(c(p.dim))
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(p.faint)).
		Padding(1, 2)

	return Theme{
		Name:    name,
		Glamour: p.glamour,
		Header:  lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
		Footer: FooterTheme{
			Help:                lipgloss.NewStyle().Foreground(c(p.dim)),
			Status:              lipgloss.NewStyle().Foreground(c(p.dim)),
			Mode:                lipgloss.NewStyle().Foreground(c(p.accent2)).Bold(true),
			CommandName:         commandName,
			CommandDescription:  commandDesc,
			CommandSelectedName: commandName.Reverse(true),
			CommandSelectedDesc: commandDesc.Reverse(true),
		},
		Panel: PanelTheme{
			Frame: frame,
			Title: lipgloss.NewStyle().Foreground(c(p.fg)).Bold(true),
			Body:  lipgloss.NewStyle().Foreground(c(p.fg)),
			Meta:  lipgloss.NewStyle().Foreground(c(p.dim)),
			Tag:   lipgloss.NewStyle().Foreground(c(p.accent2)),
			Field: lipgloss.NewStyle().Foreground(c(p.dim)),
			Focus: lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
		},
		Report: ReportTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(c(p.faint)).Padding(1, 2),
			Header: lipgloss.NewStyle().Foreground(c(p.fg)).Bold(true),
			Text:   lipgloss.NewStyle().Foreground(c(p.fg)),
		},
		Timeline: TimelineTheme{
			Axis:         lipgloss.NewStyle().Foreground(c(p.faint)),
			Marker:       lipgloss.NewStyle().Foreground(c(p.accent2)),
			MarkerActive: lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
			Label:        lipgloss.NewStyle().Foreground(c(p.dim)),
			Bounds:       lipgloss.NewStyle().Foreground(c(p.faint)),
			Preview: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(c(p.accent)).
				Padding(0, 1),
			PreviewTitle: lipgloss.NewStyle().Foreground(c(p.fg)).Bold(true),
			PreviewMeta:  lipgloss.NewStyle().Foreground(c(p.dim)),
		},
		Toast: ToastTheme{
			Info:  lipgloss.NewStyle().Foreground(c(p.ok)).Bold(true),
			Error: lipgloss.NewStyle().Foreground(c(p.bad)).Bold(true),
		},
		Calendar: CalendarTheme{
			Header:   lipgloss.NewStyle().Foreground(c(p.dim)),
			Empty:    lipgloss.NewStyle().Foreground(c(p.faint)),
			Entry:    lipgloss.NewStyle().Foreground(c(p.accent2)).Bold(true),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Reverse(true),
			Heat:     heatScale(p.heatLow, p.heatHigh, heatLevels),
		},
		List: ListTheme{
			Title:    lipgloss.NewStyle().Foreground(c(p.fg)).Bold(true),
			Selected: lipgloss.NewStyle().Foreground(c(p.accent)).Background(c(p.sel)),
			Normal:   lipgloss.NewStyle().Foreground(c(p.fg)),
			Dim:      lipgloss.NewStyle().Foreground(c(p.dim)),
		},
		Button: ButtonTheme{
			Enabled:  lipgloss.NewStyle().Foreground(c(p.accent)).Bold(true),
			Disabled: lipgloss.NewStyle().Foreground(c(p.faint)).Italic(true),
		},
	}
}

// HeatScale blends from low to high in Lab space, returning n hex colours.
// Unparseable endpoints yield nil.
func HeatScale(low, high string, n int) []string {
	a, err := colorful.Hex(low)
	if err != nil {
		return nil
	}
	b, err := colorful.Hex(high)
	if err != nil || n <= 0 {
		return nil
	}
	if n == 1 {
		return []string{b.Hex()}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = a.BlendLab(b, float64(i)/float64(n-1)).Clamped().Hex()
	}
	out[0], out[n-1] = a.Hex(), b.Hex()
	return out
}

func heatScale(low, high string, n int) []lipgloss.Style {
	hexes := HeatScale(low, high, n)
	styles := make([]lipgloss.Style, len(hexes))
	for i, h := range hexes {
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(h)).Bold(i == len(hexes)-1)
	}
	return styles
}
