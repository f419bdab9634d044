// Package media checks attachments before they are uploaded to the journal
// backend. The rules mirror the backend's so a bad file never leaves the
// machine.
package media

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/journal/pkg/entry"
)

// MaxSize is the largest file accepted for upload.
const MaxSize = 10 * 1024 * 1024

var allowed = map[string]entry.MediaType{
	"image/jpeg":      entry.Image,
	"image/png":       entry.Image,
	"image/gif":       entry.Image,
	"video/mp4":       entry.Video,
	"video/quicktime": entry.Video,
	"audio/mpeg":      entry.Audio,
	"audio/wav":       entry.Audio,
}

// some platforms register these extensions under aliases.
var aliases = map[string]string{
	"audio/x-wav":    "audio/wav",
	"audio/wave":     "audio/wav",
	"audio/vnd.wave": "audio/wav",
	"audio/mp3":      "audio/mpeg",
	"image/pjpeg":    "image/jpeg",
}

// File is a candidate attachment.
type File struct {
	Path string
	Name string
	MIME string
	Size int64
}

// Kind reports the media type for the file's MIME type.
func (f File) Kind() (entry.MediaType, bool) {
	t, ok := allowed[f.MIME]
	return t, ok
}

// Preview is the one-line summary shown while a file is staged.
func (f File) Preview() string {
	return fmt.Sprintf("%s (%s)", f.Name, entry.FormatSize(f.Size))
}

// Stat inspects the file at path, detecting its MIME type from the
// extension and falling back to content sniffing.
func Stat(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("media: %s is a directory", path)
	}
	f := File{
		Path: path,
		Name: filepath.Base(path),
		Size: info.Size(),
		MIME: detect(path),
	}
	return f, nil
}

func detect(path string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		return normalize(t)
	}
	fh, err := os.Open(path)
	if err != nil {
		return "application/octet-stream"
	}
	defer fh.Close()
	head := make([]byte, 512)
	n, _ := io.ReadFull(fh, head)
	return normalize(http.DetectContentType(head[:n]))
}

func normalize(t string) string {
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		t = mt
	}
	if a, ok := aliases[t]; ok {
		return a
	}
	return t
}

// ValidationError lists every file that broke a rule.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks every file. It is all-or-nothing: one bad file rejects the
// whole set and no file is returned.
func Validate(files []File) ([]File, error) {
	var problems []string
	for _, f := range files {
		if _, ok := f.Kind(); !ok {
			problems = append(problems, fmt.Sprintf("File type not allowed: %s", f.Name))
			continue
		}
		if f.Size > MaxSize {
			problems = append(problems, fmt.Sprintf("File too large (max 10MB): %s", f.Name))
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return files, nil
}

// Load stats and validates a set of paths.
func Load(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f, err := Stat(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return Validate(files)
}
