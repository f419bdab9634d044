package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Theme is the colour scheme of the interactive program.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Toggle flips between dark and light.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return "", errors.Errorf("unknown theme %q (want dark or light)", s)
}

// Filter is the last tag/date filter the user applied.
type Filter struct {
	Tags  []string `json:"tags,omitempty"`
	Start string   `json:"start,omitempty"`
	End   string   `json:"end,omitempty"`
}

// Draft is an unsent new entry, kept so a cancelled form can be resumed.
type Draft struct {
	Title     string   `json:"title,omitempty"`
	Content   string   `json:"content,omitempty"`
	EntryDate string   `json:"entry_date,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

func (d Draft) IsZero() bool {
	return d.Title == "" && strings.TrimSpace(d.Content) == "" && len(d.Tags) == 0
}

// Keys used on disk. A `/` separates directory from file name.
const (
	keyTheme  = "prefs/theme"
	keyFilter = "prefs/filter"
	keyDraft  = "drafts/new"
)

// Preferences is the local key/value state that survives between runs.
type Preferences interface {
	Theme() Theme
	SetTheme(Theme) error
	Filter() Filter
	SetFilter(Filter) error
	Draft() (Draft, bool)
	SaveDraft(Draft) error
	ClearDraft() error
	BasePath() string
}

type Option func(*DiskStore)

// WithLogger routes watcher diagnostics to l instead of discarding them.
func WithLogger(l *zap.Logger) Option {
	return func(p *DiskStore) { p.log = l }
}

// Load opens the preference store under cfg.BasePath().
func Load(cfg Config, opts ...Option) (*DiskStore, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	p := &DiskStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
	}), basePath: basePath, log: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// DiskStore keeps preferences as small files under a base directory.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
	log      *zap.Logger
}

// read bypasses the diskv cache; another process may have written the key.
func (p *DiskStore) read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, os.ErrNotExist
	}
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *DiskStore) BasePath() string {
	return p.basePath
}

func (p *DiskStore) readJSON(key string, target any) bool {
	val, err := p.read(key)
	if err != nil {
		return false
	}
	return json.Unmarshal(val, target) == nil
}

func (p *DiskStore) writeJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return errors.Wrapf(p.d.Write(key, b), "store: write %s", key)
}

// Theme defaults to dark when nothing, or garbage, was stored.
func (p *DiskStore) Theme() Theme {
	b, err := p.read(keyTheme)
	if err != nil {
		return Dark
	}
	t, err := ParseTheme(string(b))
	if err != nil {
		return Dark
	}
	return t
}

func (p *DiskStore) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return errors.Wrap(p.d.WriteString(keyTheme, string(t)), "store: write theme")
}

func (p *DiskStore) Filter() Filter {
	var f Filter
	p.readJSON(keyFilter, &f)
	return f
}

func (p *DiskStore) SetFilter(f Filter) error {
	return p.writeJSON(keyFilter, f)
}

func (p *DiskStore) Draft() (Draft, bool) {
	var d Draft
	if !p.readJSON(keyDraft, &d) || d.IsZero() {
		return Draft{}, false
	}
	return d, true
}

func (p *DiskStore) SaveDraft(d Draft) error {
	if d.IsZero() {
		return p.ClearDraft()
	}
	return p.writeJSON(keyDraft, d)
}

func (p *DiskStore) ClearDraft() error {
	if !p.d.Has(keyDraft) {
		return nil
	}
	return errors.Wrap(p.d.Erase(keyDraft), "store: clear draft")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s/%s", strings.Join(pathKey.Path, "/"), pathKey.FileName)
}
