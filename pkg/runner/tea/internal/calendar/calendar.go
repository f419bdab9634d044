// Package calendar renders a month grid marking the days that have entries.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/runner/tea/internal/theme"
)

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	Entries    int
	IsToday    bool
	IsSelected bool
}

// Days summarises entries falling in month, marking today and selected.
func Days(month time.Time, entries []*entry.Entry, today, selected time.Time) []Day {
	n := daysIn(month)
	days := make([]Day, n)
	for i := range days {
		days[i].Day = i + 1
	}
	for _, e := range entries {
		d := e.EntryDate.Local()
		if d.Year() == month.Year() && d.Month() == month.Month() {
			days[d.Day()-1].Entries++
		}
	}
	if today.Year() == month.Year() && today.Month() == month.Month() {
		days[today.Day()-1].IsToday = true
	}
	if !selected.IsZero() && selected.Year() == month.Year() && selected.Month() == month.Month() {
		days[selected.Day()-1].IsSelected = true
	}
	return days
}

// Render produces a titled, multi-line calendar for month.
func Render(month time.Time, days []Day, th theme.CalendarTheme) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := daysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	title := first.Format("January 2006")
	lines := []string{
		th.Header.Render(lipgloss.PlaceHorizontal(20, lipgloss.Center, title)),
		th.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	startOffset := int(first.Weekday())
	rows := (startOffset + daysInMonth + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, th.Empty.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, th))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, th theme.CalendarTheme) string {
	text := fmt.Sprintf("%2d", day)

	style := th.Empty
	switch {
	case info.Entries > 0 && len(th.Heat) > 0:
		style = th.Heat[min(info.Entries, len(th.Heat))-1]
	case info.Entries > 0:
		style = th.Entry
	}
	if info.IsToday {
		style = style.Inherit(th.Today)
	}
	if info.IsSelected {
		style = style.Inherit(th.Selected)
	}
	return style.Render(text)
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}
