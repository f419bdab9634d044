// Package tags models a tag input: a whitelist of known tags offered as
// suggestions and an ordered, de-duplicated set of selected tags.
package tags

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

// MaxTags is how many tags one entry may carry.
const MaxTags = 10

var (
	ErrTooMany = errors.New("tags: too many tags")
	ErrEmpty   = errors.New("tags: empty tag")
)

// EventType says whether a tag was added or removed.
type EventType int

const (
	Added EventType = iota
	Removed
)

// Event is emitted whenever the selection changes.
type Event struct {
	Type EventType
	Tag  string
}

// Input is the tag-input widget state.
type Input struct {
	whitelist []string
	selected  []string
	max       int
	listeners []func(Event)
}

func New(whitelist []string) *Input {
	in := &Input{max: MaxTags}
	in.SetWhitelist(whitelist)
	return in
}

// OnChange registers fn for add/remove events.
func (in *Input) OnChange(fn func(Event)) {
	in.listeners = append(in.listeners, fn)
}

// SetWhitelist replaces the suggestions, e.g. after the tag list was reloaded.
func (in *Input) SetWhitelist(whitelist []string) {
	in.whitelist = in.whitelist[:0]
	seen := make(map[string]struct{}, len(whitelist))
	for _, w := range whitelist {
		w = strings.TrimSpace(w)
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup || w == "" {
			continue
		}
		seen[key] = struct{}{}
		in.whitelist = append(in.whitelist, w)
	}
}

func (in *Input) Whitelist() []string {
	return append([]string(nil), in.whitelist...)
}

// Value is the selection in the order tags were added.
func (in *Input) Value() []string {
	return append([]string(nil), in.selected...)
}

func (in *Input) index(tag string) int {
	for i, s := range in.selected {
		if strings.EqualFold(s, tag) {
			return i
		}
	}
	return -1
}

// Add selects tag. A tag already selected under any casing is ignored and
// keeps its first spelling.
func (in *Input) Add(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmpty
	}
	if in.index(tag) >= 0 {
		return nil
	}
	if len(in.selected) >= in.max {
		return ErrTooMany
	}
	in.selected = append(in.selected, tag)
	in.emit(Event{Type: Added, Tag: tag})
	return nil
}

// AddAll adds comma separated tags, stopping at the first error.
func (in *Input) AddAll(raw string) error {
	for _, t := range Split(raw) {
		if err := in.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Remove drops tag from the selection.
func (in *Input) Remove(tag string) bool {
	i := in.index(tag)
	if i < 0 {
		return false
	}
	removed := in.selected[i]
	in.selected = append(in.selected[:i], in.selected[i+1:]...)
	in.emit(Event{Type: Removed, Tag: removed})
	return true
}

// Clear removes every selected tag.
func (in *Input) Clear() {
	for len(in.selected) > 0 {
		in.Remove(in.selected[len(in.selected)-1])
	}
}

// Suggest fuzzy matches text against the whitelist, best match first, and
// leaves out tags that are already selected. Empty text lists the whole
// whitelist.
func (in *Input) Suggest(text string) []string {
	text = strings.TrimSpace(text)
	var out []string
	if text == "" {
		for _, w := range in.whitelist {
			if in.index(w) < 0 {
				out = append(out, w)
			}
		}
		return out
	}
	for _, m := range fuzzy.Find(text, in.whitelist) {
		if in.index(m.Str) < 0 {
			out = append(out, m.Str)
		}
	}
	return out
}

func (in *Input) emit(e Event) {
	for _, fn := range in.listeners {
		fn(e)
	}
}

// Split parses a comma separated tag list, trimming blanks.
func Split(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
