//go:build !windows && !linux

package main

import (
	"fmt"
	"os"

	"launchpad/internal/lifecycle"
)

// splashSurface is a console stand-in on platforms without a native splash.
type splashSurface struct{ title string }

func newSplashSurface(opts lifecycle.WindowOptions) *splashSurface {
	return &splashSurface{title: opts.Title}
}

func (s *splashSurface) show()            { Log.Info("splash shown", "title", s.title) }
func (s *splashSurface) setText(t string) { fmt.Println(t) }
func (s *splashSurface) close()           { Log.Info("splash closed", "title", s.title) }

func showErrorBox(title, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", title, message)
}
