//go:build linux

package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"

	"launchpad/internal/lifecycle"
)

// splashSurface is an undecorated GTK window with a centered label. Wails
// runs the GTK main loop on Linux, so all widget work is queued onto it with
// glib.IdleAdd and win/label are only touched from there.
type splashSurface struct {
	opts lifecycle.WindowOptions

	mu     sync.Mutex
	text   string
	shown  bool
	closed bool

	win   *gtk.Window
	label *gtk.Label
}

func newSplashSurface(opts lifecycle.WindowOptions) *splashSurface {
	return &splashSurface{opts: opts}
}

func (s *splashSurface) show() {
	s.mu.Lock()
	if s.shown || s.closed {
		s.mu.Unlock()
		return
	}
	s.shown = true
	s.mu.Unlock()

	glib.IdleAdd(func() bool {
		if err := s.build(); err != nil {
			Log.Error("create splash window failed", "error", err)
		}
		return false
	})
}

func (s *splashSurface) build() error {
	win, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	label, err := gtk.LabelNew(s.currentText())
	if err != nil {
		win.Destroy()
		return fmt.Errorf("label: %w", err)
	}
	label.SetJustify(gtk.JUSTIFY_CENTER)
	label.SetLineWrap(true)

	win.SetTitle(s.opts.Title)
	win.SetDefaultSize(s.opts.Width, s.opts.Height)
	win.SetPosition(gtk.WIN_POS_CENTER)
	win.SetDecorated(s.opts.Frame)
	win.SetKeepAbove(s.opts.AlwaysOnTop)
	win.SetSkipTaskbarHint(true)
	win.SetTypeHint(gdk.WINDOW_TYPE_HINT_SPLASHSCREEN)
	if s.opts.Transparent {
		if screen, err := win.GetScreen(); err == nil {
			if visual, err := screen.GetRGBAVisual(); err == nil && visual != nil {
				win.SetVisual(visual)
				win.SetAppPaintable(true)
			}
		}
	}
	win.Add(label)
	win.ShowAll()

	s.win, s.label = win, label
	return nil
}

func (s *splashSurface) currentText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *splashSurface) setText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()

	glib.IdleAdd(func() bool {
		if s.label != nil {
			s.label.SetText(text)
		}
		return false
	})
}

func (s *splashSurface) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	glib.IdleAdd(func() bool {
		if s.win != nil {
			s.win.Destroy()
			s.win, s.label = nil, nil
		}
		return false
	})
}

// showErrorBox reports a fatal startup error. It runs before any GTK loop.
func showErrorBox(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}
