// Package snake walks the user through an entry on the terminal with
// promptui, for when flags were not given.
package snake

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/journal/pkg/entry"
	"tableflip.dev/journal/pkg/tags"
)

const (
	doneItem   = "Done"
	newTagItem = "New tag..."
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// ErrNotTerminal is returned when prompting would block on a pipe.
var ErrNotTerminal = errors.New("snake: stdin is not a terminal, pass the values as flags")

// Answers is what the wizard collected.
type Answers struct {
	Title     string
	Content   string
	EntryDate string
	Tags      []string
}

// Wizard prompts for the fields of an entry. Zero In and Out use the
// terminal.
type Wizard struct {
	In        io.ReadCloser
	Out       io.WriteCloser
	Whitelist []string
}

// interactive is false when the wizard would read a non-terminal stdin.
func (w *Wizard) interactive() bool {
	if w.In != nil {
		return true
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Entry prompts for every field, offering seed values as defaults.
func (w *Wizard) Entry(seed Answers) (Answers, error) {
	if !w.interactive() {
		return seed, ErrNotTerminal
	}
	var err error
	a := seed

	if a.Title, err = w.ask("Title", seed.Title, nil); err != nil {
		return a, err
	}
	if seed.EntryDate == "" {
		seed.EntryDate = entry.Now()
	}
	if a.EntryDate, err = w.ask("Date", seed.EntryDate, ValidateDate); err != nil {
		return a, err
	}
	if a.Content, err = w.ask("Content", seed.Content, ValidateContent); err != nil {
		return a, err
	}
	if a.Tags, err = w.Tags(seed.Tags); err != nil {
		return a, err
	}
	return a, nil
}

// Tags lets the user pick from the whitelist, or type new tags, until Done.
func (w *Wizard) Tags(seed []string) ([]string, error) {
	in := tags.New(w.Whitelist)
	for _, t := range seed {
		if err := in.Add(t); err != nil {
			return in.Value(), err
		}
	}

	for len(in.Value()) < tags.MaxTags {
		items := append([]string{doneItem, newTagItem}, in.Suggest("")...)
		prompt := promptui.Select{
			HideHelp: true,
			Label:    fmt.Sprintf("Tags [%s]", strings.Join(in.Value(), ", ")),
			Items:    items,
			Size:     10,
			Searcher: func(input string, index int) bool {
				if index < 2 {
					return true
				}
				for _, s := range in.Suggest(input) {
					if s == items[index] {
						return true
					}
				}
				return false
			},
			Stdin:  w.In,
			Stdout: w.Out,
		}
		_, choice, err := prompt.Run()
		if err != nil {
			return in.Value(), err
		}
		switch choice {
		case doneItem:
			return in.Value(), nil
		case newTagItem:
			typed, err := w.ask("Tag", "", nil)
			if err != nil {
				return in.Value(), err
			}
			if err := in.AddAll(typed); err != nil && !errors.Is(err, tags.ErrEmpty) {
				return in.Value(), err
			}
		default:
			_ = in.Add(choice)
		}
	}
	return in.Value(), nil
}

// Confirm asks a yes/no question, defaulting to no.
func (w *Wizard) Confirm(label string) (bool, error) {
	if !w.interactive() {
		return false, ErrNotTerminal
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     w.In,
		Stdout:    w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

func (w *Wizard) ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Templates: templates,
		Validate:  validate,
		Stdin:     w.In,
		Stdout:    w.Out,
	}
	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// ValidateDate accepts the formats entry.ParseTime understands.
func ValidateDate(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	_, err := entry.ParseTime(input)
	return err
}

// ValidateContent rejects content with no visible text.
func ValidateContent(input string) error {
	if entry.IsBlank(input) {
		return errors.New("content is empty")
	}
	return nil
}
