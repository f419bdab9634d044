package teaui

import (
	"tableflip.dev/journal/pkg/runner/tea/internal/help"
)

var keyHelp = []help.Section{
	{Title: "Timeline", Bindings: []help.Binding{
		{Keys: []string{"←", "→", "h", "l"}, Action: "move between markers and preview them"},
		{Keys: []string{"mouse"}, Action: "preview the entry under the pointer"},
		{Keys: []string{"click", "enter"}, Action: "open the entry"},
		{Keys: []string{"j", "k"}, Action: "move through the entry list"},
		{Keys: []string{"g", "G"}, Action: "first / last entry in the list"},
		{Keys: []string{"esc"}, Action: "hide the preview"},
	}},
	{Title: "Entries", Bindings: []help.Binding{
		{Keys: []string{"n"}, Action: "write a new entry"},
		{Keys: []string{"e"}, Action: "edit the open or selected entry"},
		{Keys: []string{"d"}, Action: "delete the open or selected entry"},
		{Keys: []string{"ctrl+s"}, Action: "save the form; a failed save keeps it open"},
		{Keys: []string{"tab", "shift+tab"}, Action: "next / previous form field"},
		{Keys: []string{"esc"}, Action: "close; a new entry is kept as a draft"},
	}},
	{Title: "Other", Bindings: []help.Binding{
		{Keys: []string{"/"}, Action: "filter by tags, tab accepts a suggestion"},
		{Keys: []string{":"}, Action: "command palette"},
		{Keys: []string{"a"}, Action: "question of the day"},
		{Keys: []string{"t"}, Action: "toggle dark and light theme"},
		{Keys: []string{"r"}, Action: "reload"},
		{Keys: []string{"?"}, Action: "this help"},
		{Keys: []string{"q", "ctrl+c"}, Action: "quit"},
	}},
}

// helpSections is keyHelp plus the palette commands, so both stay in step.
func helpSections() []help.Section {
	cmds := help.Section{Title: "Commands"}
	for _, c := range paletteCommands {
		cmds.Bindings = append(cmds.Bindings, help.Binding{Keys: []string{":" + c.Name}, Action: c.Description})
	}
	return append(append([]help.Section{}, keyHelp...), cmds)
}
