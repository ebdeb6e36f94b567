package main

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"launchpad/internal/lifecycle"
	"launchpad/internal/splash"
)

// surface is the platform window a native splash draws into.
type surface interface {
	show()
	setText(text string)
	close()
}

// nativeSplash is a splash window drawn with the platform toolkit instead of
// a webview. Wails owns exactly one webview, and it belongs to the main window.
type nativeSplash struct {
	host    *wailsHost
	surface surface

	mu        sync.Mutex
	destroyed bool
}

func newNativeSplash(host *wailsHost, opts lifecycle.WindowOptions) *nativeSplash {
	s := &nativeSplash{host: host, surface: host.newSurface(opts)}
	s.surface.setText(opts.Title)
	if opts.Show {
		s.surface.show()
	}
	return s
}

// LoadURL accepts only the inline data URLs the splash page is built from.
func (s *nativeSplash) LoadURL(u string) error {
	page, err := splash.ParseDataURL(u)
	if err != nil {
		return fmt.Errorf("splash: %w", err)
	}
	s.surface.setText(pageText(page))
	return nil
}

func (s *nativeSplash) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("splash: %w", err)
	}
	page, err := splash.Parse(string(data))
	if err != nil {
		return fmt.Errorf("splash: %w", err)
	}
	s.surface.setText(pageText(page))
	return nil
}

// OnReadyToShow is never signalled: native splashes draw synchronously.
func (s *nativeSplash) OnReadyToShow(fn func()) {}

func (s *nativeSplash) Show() {
	s.surface.show()
}

func (s *nativeSplash) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.mu.Unlock()

	s.surface.close()
	s.host.splashClosed(s)
}

func pageText(p splash.Page) string {
	return strings.TrimSpace(p.Title + "\n\n" + p.Body)
}
