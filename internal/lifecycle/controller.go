// Package lifecycle sequences the splash and main windows in response to host
// lifecycle signals.
package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"launchpad/internal/content"
	"launchpad/internal/splash"
)

// ErrWindowsOpen is returned by Ready when the controller still owns windows.
var ErrWindowsOpen = errors.New("windows already open")

// Config is resolved once at startup and never re-read.
type Config struct {
	Title                       string
	Source                      content.Source
	Splash                      splash.Page
	MainWidth                   int
	MainHeight                  int
	Web                         WebPreferences
	QuitOnAllClosed             bool
	DisableHardwareAcceleration bool
}

// Controller owns the splash and main window handles.
type Controller struct {
	host Host
	cfg  Config
	log  *slog.Logger

	mu       sync.Mutex
	splash   Window
	main     Window
	revealed bool
}

// New returns a controller driving host. A nil logger discards output.
func New(host Host, cfg Config, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.MainWidth <= 0 {
		cfg.MainWidth = 800
	}
	if cfg.MainHeight <= 0 {
		cfg.MainHeight = 600
	}
	return &Controller{host: host, cfg: cfg, log: log.With("component", "lifecycle")}
}

// Prepare applies process-wide host settings. Call it before the host's event
// loop starts.
func (c *Controller) Prepare() {
	if c.cfg.DisableHardwareAcceleration {
		c.host.DisableHardwareAcceleration()
		c.log.Debug("hardware acceleration disabled")
	}
}

// Ready handles the application-ready signal.
func (c *Controller) Ready() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.splash != nil || c.main != nil {
		return ErrWindowsOpen
	}
	return c.createWindows()
}

// Activate handles reactivation. Windows are rebuilt only when the host has
// none open.
func (c *Controller) Activate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n := c.host.WindowCount(); n > 0 {
		c.log.Debug("activate ignored", "openWindows", n)
		return nil
	}
	c.splash, c.main, c.revealed = nil, nil, false
	c.log.Info("reactivated with no windows, recreating")
	return c.createWindows()
}

// AllWindowsClosed handles the host reporting that every window is gone.
func (c *Controller) AllWindowsClosed() {
	c.mu.Lock()
	c.splash, c.main, c.revealed = nil, nil, false
	quit := c.cfg.QuitOnAllClosed
	c.mu.Unlock()

	if !quit {
		c.log.Info("all windows closed, staying alive")
		return
	}
	c.log.Info("all windows closed, quitting")
	c.host.Quit()
}

// Revealed reports whether the current main window has been shown.
func (c *Controller) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

// createWindows runs the splash, hidden main, load sequence. c.mu is held.
func (c *Controller) createWindows() error {
	sp, err := c.host.CreateWindow(WindowOptions{
		Role:        RoleSplash,
		Title:       c.cfg.Title,
		Width:       splash.Width,
		Height:      splash.Height,
		Transparent: true,
		AlwaysOnTop: true,
		Show:        true,
	})
	if err != nil {
		return fmt.Errorf("create splash window: %w", err)
	}
	c.splash = sp
	if err := sp.LoadURL(c.cfg.Splash.DataURL()); err != nil {
		return fmt.Errorf("load splash: %w", err)
	}

	mw, err := c.host.CreateWindow(WindowOptions{
		Role:   RoleMain,
		Title:  c.cfg.Title,
		Width:  c.cfg.MainWidth,
		Height: c.cfg.MainHeight,
		Frame:  true,
		Web:    c.cfg.Web,
	})
	if err != nil {
		// Drop the splash so Activate can rebuild both windows.
		c.splash.Destroy()
		c.splash = nil
		return fmt.Errorf("create main window: %w", err)
	}
	c.main = mw
	c.revealed = false
	mw.OnReadyToShow(func() { c.mainReady(mw) })

	c.log.Info("loading main content", "source", c.cfg.Source.String())
	if err := c.cfg.Source.Load(mw); err != nil {
		return fmt.Errorf("load main content: %w", err)
	}
	return nil
}

// mainReady swaps splash for main. Only the first signal from the current
// main window has any effect.
func (c *Controller) mainReady(w Window) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w != c.main || c.revealed {
		c.log.Debug("duplicate or stale ready-to-show ignored")
		return
	}
	c.revealed = true

	if c.splash != nil {
		c.splash.Destroy()
		c.splash = nil
	}
	w.Show()
	c.log.Info("main window shown")
}
