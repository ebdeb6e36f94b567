package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/ra1phdd/systray-on-wails"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"launchpad/internal/config"
	"launchpad/internal/content"
)

//go:embed build/appicon.png
var appIconPNG []byte

// DesktopApp is the Wails application binding struct.
// Methods on this struct are exposed to the frontend via window.go.main.DesktopApp
// when node integration is enabled.
type DesktopApp struct {
	ctx  context.Context
	host *wailsHost
	cfg  *config.Config
	src  content.Source
}

// NewDesktopApp creates a new DesktopApp instance.
func NewDesktopApp(host *wailsHost, cfg *config.Config, src content.Source) *DesktopApp {
	return &DesktopApp{host: host, cfg: cfg, src: src}
}

// startup is called when the Wails app starts, before windows are created.
func (a *DesktopApp) startup(ctx context.Context) {
	a.ctx = ctx
	Log.Debug("Wails OnStartup", "mode", a.cfg.ContentMode().String(), "source", a.src.String())

	if a.src.Kind == content.KindURL {
		go warnIfDevServerDown(ctx, a.cfg.Title, a.src)
	}
}

// shutdown is called when the Wails app is closing.
func (a *DesktopApp) shutdown(ctx context.Context) {
	Log.Info("shutdown")
	systray.Quit()
}

// initSystray sets up the system tray icon and menu.
// "Open" is a reactivation signal; double-click on Windows does the same.
func (a *DesktopApp) initSystray() {
	systray.Register(func() {
		systray.SetIcon(trayIcon())
		systray.SetTooltip(fmt.Sprintf("%s v%s", a.cfg.Title, AppVersion))

		mShow := systray.AddMenuItem("Open", "Open the main window")
		mQuit := systray.AddMenuItem("Quit", "Quit "+a.cfg.Title)

		subclassSystray(a.host.activate)

		go func() {
			for {
				select {
				case <-mShow.ClickedCh:
					a.host.activate()
				case <-mQuit.ClickedCh:
					a.host.Quit()
					return
				}
			}
		}()
	}, nil)
}

// Quit terminates the application.
func (a *DesktopApp) Quit() {
	a.host.Quit()
}

// SetLogLevel changes the log level from the frontend.
func (a *DesktopApp) SetLogLevel(level string) {
	SetLogLevel(level)
	Log.Info("log level changed", "level", GetLogLevel())
}

// GetLogLevel returns the current log level.
func (a *DesktopApp) GetLogLevel() string {
	return GetLogLevel()
}

// GetAppInfo returns application info for the frontend.
func (a *DesktopApp) GetAppInfo() map[string]interface{} {
	return map[string]interface{}{
		"title":    a.cfg.Title,
		"version":  AppVersion,
		"channel":  AppChannel(),
		"mode":     a.cfg.ContentMode().String(),
		"source":   a.src.String(),
		"logLevel": GetLogLevel(),
	}
}

// emitContentReady tells the frontend its content was swapped in.
func (a *DesktopApp) emitContentReady() {
	if a.ctx != nil {
		wailsRuntime.EventsEmit(a.ctx, EventContentReady, a.src.String())
	}
}
