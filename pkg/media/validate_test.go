package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/journal/pkg/entry"
)

func TestValidateRejectsWholeSet(t *testing.T) {
	files := []File{
		{Name: "ok.png", MIME: "image/png", Size: 1024},
		{Name: "archive.zip", MIME: "application/zip", Size: 1024},
	}
	got, err := Validate(files)
	if err == nil {
		t.Fatalf("expected zip to be rejected")
	}
	if got != nil {
		t.Fatalf("expected no files to survive a failed validation, got %d", len(got))
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Problems) != 1 {
		t.Fatalf("expected one problem, got %v", err)
	}
	if !strings.Contains(verr.Problems[0], "archive.zip") {
		t.Fatalf("expected problem to name the file, got %q", verr.Problems[0])
	}
}

func TestValidateSize(t *testing.T) {
	_, err := Validate([]File{{Name: "big.mp4", MIME: "video/mp4", Size: MaxSize + 1}})
	if err == nil || !strings.Contains(err.Error(), "max 10MB") {
		t.Fatalf("expected size error, got %v", err)
	}
	got, err := Validate([]File{{Name: "edge.mp4", MIME: "video/mp4", Size: MaxSize}})
	if err != nil || len(got) != 1 {
		t.Fatalf("expected exactly 10MB to pass, got %v", err)
	}
}

func TestKinds(t *testing.T) {
	cases := map[string]entry.MediaType{
		"image/gif":       entry.Image,
		"video/quicktime": entry.Video,
		"audio/wav":       entry.Audio,
	}
	for m, want := range cases {
		got, ok := File{MIME: m}.Kind()
		if !ok || got != want {
			t.Fatalf("%s: expected %s, got %s (%v)", m, want, got, ok)
		}
	}
}

func TestLoadDetectsType(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "pixel.png")
	if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	files, err := Load([]string{png})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if files[0].MIME != "image/png" || files[0].Name != "pixel.png" {
		t.Fatalf("unexpected file %+v", files[0])
	}
	if files[0].Preview() != "pixel.png (0.00MB)" {
		t.Fatalf("unexpected preview %q", files[0].Preview())
	}

	zip := filepath.Join(dir, "bundle.zip")
	if err := os.WriteFile(zip, []byte("PK\x03\x04"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load([]string{png, zip}); err == nil {
		t.Fatalf("expected zip to fail validation")
	}
}
