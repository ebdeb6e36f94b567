// Package content decides what the main window displays and serves it.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DevServerURL is the address of the locally running frontend dev server.
const DevServerURL = "http://localhost:5173"

// Packaged document location relative to the install directory.
var PackagedDocument = []string{"dist", "index.html"}

// ErrUnknownKind is returned when a Source has no usable kind.
var ErrUnknownKind = errors.New("unknown content source kind")

// Mode distinguishes development from packaged runs.
type Mode int

const (
	ModePackaged Mode = iota
	ModeDevelopment
)

func (m Mode) String() string {
	if m == ModeDevelopment {
		return "development"
	}
	return "packaged"
}

// ParseMode maps an environment value to a Mode. Only "development"
// (case-insensitive) selects development mode.
func ParseMode(v string) Mode {
	if strings.EqualFold(strings.TrimSpace(v), "development") {
		return ModeDevelopment
	}
	return ModePackaged
}

// Kind says how a Source is loaded.
type Kind int

const (
	KindURL Kind = iota + 1
	KindFile
)

// Source is the resolved main window content.
type Source struct {
	Kind     Kind
	Location string
}

func (s Source) String() string {
	switch s.Kind {
	case KindURL:
		return "url:" + s.Location
	case KindFile:
		return "file:" + s.Location
	default:
		return "unknown:" + s.Location
	}
}

// Loader is anything that can be pointed at a URL or a local document.
type Loader interface {
	LoadURL(url string) error
	LoadFile(path string) error
}

// Load points w at the source.
func (s Source) Load(w Loader) error {
	switch s.Kind {
	case KindURL:
		return w.LoadURL(s.Location)
	case KindFile:
		return w.LoadFile(s.Location)
	default:
		return fmt.Errorf("load %q: %w", s.Location, ErrUnknownKind)
	}
}

// Selector picks the content source from an already-resolved mode.
type Selector struct {
	Mode       Mode
	DevURL     string // defaults to DevServerURL
	InstallDir string
}

// Select returns the source for the configured mode. It is a pure branch:
// nothing is checked for existence or reachability.
func (s Selector) Select() Source {
	if s.Mode == ModeDevelopment {
		u := s.DevURL
		if u == "" {
			u = DevServerURL
		}
		return Source{Kind: KindURL, Location: u}
	}
	parts := append([]string{s.InstallDir}, PackagedDocument...)
	return Source{Kind: KindFile, Location: filepath.Join(parts...)}
}

// InstallDir returns the directory holding the running executable.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
