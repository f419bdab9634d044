package entry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// LayoutInput is the HTML datetime-local layout the backend accepts for entry_date.
	LayoutInput   = "2006-01-02T15:04"
	LayoutDate    = "2006-01-02"
	layoutDisplay = "Jan 2, 2006 3:04 PM"
)

// zone-less layouts are read in local time, the way a browser Date would read them.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	LayoutInput,
	LayoutDate,
}

// ParseTime accepts RFC 3339, Python isoformat, datetime-local and plain dates.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("entry: unrecognised timestamp %q", v)
}

// IsDateOnly reports whether v carries no time of day.
func IsDateOnly(v string) bool {
	_, err := time.ParseInLocation(LayoutDate, strings.TrimSpace(v), time.Local)
	return err == nil
}

type Timestamp struct {
	time.Time
}

func (t Timestamp) SameDay(then time.Time) bool {
	if t.Local().Day() == then.Local().Day() &&
		t.Local().Month() == then.Local().Month() &&
		t.Local().Year() == then.Local().Year() {
		return true
	}
	return false
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", t.Format(time.RFC3339Nano))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

// Display is the human form used in lists and previews.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(layoutDisplay)
}

// Input renders the value for a datetime-local form field.
func (t Timestamp) Input() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(LayoutInput)
}

// Now formats the current local time for a datetime-local field.
func Now() string {
	return time.Now().Format(LayoutInput)
}
