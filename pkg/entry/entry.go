package entry

import (
	"fmt"
	"strings"
)

// MediaType is the coarse kind of an attachment.
type MediaType string

const (
	Image MediaType = "image"
	Video MediaType = "video"
	Audio MediaType = "audio"
)

// MediaItem is a file attached to an entry. URL is built by the server.
type MediaItem struct {
	Type     MediaType `json:"type"`
	URL      string    `json:"url,omitempty"`
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
}

// String renders the item the way the list view shows it: `name (1.25MB)`.
func (m MediaItem) String() string {
	return fmt.Sprintf("%s (%s)", m.Filename, FormatSize(m.Size))
}

// Entry is a single journal record as served by the journal backend.
type Entry struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	EntryDate Timestamp   `json:"entry_date"`
	CreatedAt Timestamp   `json:"created_at"`
	UpdatedAt Timestamp   `json:"updated_at,omitempty"`
	Tags      []string    `json:"tags"`
	Media     []MediaItem `json:"media"`
}

// Tag is a known tag and the number of entries carrying it.
type Tag struct {
	Tag   string `json:"tag"`
	Count int    `json:"count,omitempty"`
}

// TagNames flattens tags into the whitelist form used by tag inputs.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if name := strings.TrimSpace(t.Tag); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s  %s", e.EntryDate.Display(), Sanitize(e.Title))
}

// FormatSize renders bytes as megabytes with two decimals.
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2fMB", float64(bytes)/1024/1024)
}
