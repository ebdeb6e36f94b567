package content_test

import (
	"errors"
	"path/filepath"
	"testing"

	"launchpad/internal/content"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want content.Mode
	}{
		{"development", content.ModeDevelopment},
		{" Development ", content.ModeDevelopment},
		{"production", content.ModePackaged},
		{"dev", content.ModePackaged},
		{"", content.ModePackaged},
	}
	for _, c := range cases {
		if got := content.ParseMode(c.in); got != c.want {
			t.Errorf("ParseMode(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSelect_Development(t *testing.T) {
	src := content.Selector{Mode: content.ModeDevelopment, InstallDir: "/opt/app"}.Select()
	if src.Kind != content.KindURL || src.Location != "http://localhost:5173" {
		t.Fatalf("got %v", src)
	}
}

func TestSelect_DevelopmentOverride(t *testing.T) {
	src := content.Selector{Mode: content.ModeDevelopment, DevURL: "http://localhost:3000"}.Select()
	if src.Location != "http://localhost:3000" {
		t.Fatalf("got %v", src)
	}
}

func TestSelect_Packaged(t *testing.T) {
	dir := t.TempDir()
	src := content.Selector{Mode: content.ModePackaged, InstallDir: dir, DevURL: "http://ignored"}.Select()

	want := filepath.Join(dir, "dist", "index.html")
	if src.Kind != content.KindFile || src.Location != want {
		t.Fatalf("got %v, want file:%s", src, want)
	}
}

type recordingLoader struct {
	url, file string
}

func (r *recordingLoader) LoadURL(u string) error  { r.url = u; return nil }
func (r *recordingLoader) LoadFile(p string) error { r.file = p; return nil }

func TestSourceLoad_Dispatch(t *testing.T) {
	var l recordingLoader
	if err := (content.Source{Kind: content.KindURL, Location: "http://x"}).Load(&l); err != nil {
		t.Fatal(err)
	}
	if err := (content.Source{Kind: content.KindFile, Location: "/a/b"}).Load(&l); err != nil {
		t.Fatal(err)
	}
	if l.url != "http://x" || l.file != "/a/b" {
		t.Fatalf("loader saw url=%q file=%q", l.url, l.file)
	}

	err := content.Source{Location: "?"}.Load(&l)
	if !errors.Is(err, content.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestInstallDir(t *testing.T) {
	dir, err := content.InstallDir()
	if err != nil {
		t.Fatalf("install dir: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Fatalf("install dir not absolute: %s", dir)
	}
}
