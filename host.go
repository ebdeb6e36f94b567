package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"launchpad/internal/content"
	"launchpad/internal/lifecycle"
)

// errMainWindowOpen is returned when a second main window is requested while
// the Wails window is still in use.
var errMainWindowOpen = errors.New("main window already open")

// shell is the part of the Wails runtime the host drives.
type shell struct {
	hide       func(ctx context.Context)
	show       func(ctx context.Context)
	unminimise func(ctx context.Context)
	center     func(ctx context.Context)
	reload     func(ctx context.Context)
	quit       func(ctx context.Context)
	setTitle   func(ctx context.Context, title string)
	setSize    func(ctx context.Context, width, height int)
	setOnTop   func(ctx context.Context, onTop bool)
	emit       func(ctx context.Context, name string, data ...interface{})
}

func wailsShell() shell {
	return shell{
		hide:       wailsRuntime.WindowHide,
		show:       wailsRuntime.WindowShow,
		unminimise: wailsRuntime.WindowUnminimise,
		center:     wailsRuntime.WindowCenter,
		reload:     wailsRuntime.WindowReloadApp,
		quit:       wailsRuntime.Quit,
		setTitle:   wailsRuntime.WindowSetTitle,
		setSize:    wailsRuntime.WindowSetSize,
		setOnTop:   wailsRuntime.WindowSetAlwaysOnTop,
		emit:       wailsRuntime.EventsEmit,
	}
}

// wailsHost implements lifecycle.Host on top of a single Wails webview plus
// native splash windows.
type wailsHost struct {
	content     *content.Handler
	browserPath string
	shell       shell
	newSurface  func(lifecycle.WindowOptions) surface

	mu          sync.Mutex
	ctx         context.Context
	ctrl        *lifecycle.Controller
	app         *DesktopApp
	gpuDisabled bool
	main        *mainWindow
	splash      *nativeSplash
	pageLoaded  bool // the webview has loaded a page at least once
	closing     bool // inside OnBeforeClose
	quitting    bool
}

func newWailsHost(browserPath string) *wailsHost {
	return &wailsHost{
		content:     content.NewHandler(Log),
		browserPath: browserPath,
		shell:       wailsShell(),
		newSurface: func(opts lifecycle.WindowOptions) surface {
			return newSplashSurface(opts)
		},
	}
}

// attach wires the controller whose signals this host delivers.
func (h *wailsHost) attach(ctrl *lifecycle.Controller, app *DesktopApp) {
	h.ctrl = ctrl
	h.app = app
}

func (h *wailsHost) currentCtx() context.Context {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ctx
}

func (h *wailsHost) CreateWindow(opts lifecycle.WindowOptions) (lifecycle.Window, error) {
	switch opts.Role {
	case lifecycle.RoleSplash:
		s := newNativeSplash(h, opts)
		h.mu.Lock()
		h.splash = s
		h.mu.Unlock()
		return s, nil

	case lifecycle.RoleMain:
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.main != nil {
			return nil, errMainWindowOpen
		}
		w := &mainWindow{host: h, opts: opts}
		h.main = w
		Log.Debug("main window created",
			"nodeIntegration", opts.Web.NodeIntegration,
			"contextIsolation", opts.Web.ContextIsolation)
		if h.ctx != nil {
			// Re-creation after close: reset the existing Wails window.
			h.shell.hide(h.ctx)
			h.shell.setTitle(h.ctx, opts.Title)
			h.shell.setSize(h.ctx, opts.Width, opts.Height)
			h.shell.center(h.ctx)
		}
		return w, nil

	default:
		return nil, fmt.Errorf("create window: unknown role %v", opts.Role)
	}
}

func (h *wailsHost) WindowCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	if h.main != nil {
		n++
	}
	if h.splash != nil {
		n++
	}
	return n
}

func (h *wailsHost) DisableHardwareAcceleration() {
	h.mu.Lock()
	h.gpuDisabled = true
	h.mu.Unlock()
}

func (h *wailsHost) Quit() {
	h.mu.Lock()
	h.quitting = true
	ctx, closing := h.ctx, h.closing
	h.mu.Unlock()

	// Inside OnBeforeClose the pending close itself ends the app.
	if ctx != nil && !closing {
		h.shell.quit(ctx)
	}
}

func (h *wailsHost) splashClosed(s *nativeSplash) {
	h.mu.Lock()
	if h.splash == s {
		h.splash = nil
	}
	h.mu.Unlock()
}

// load points the asset handler at src and reloads if a page is already up.
func (h *wailsHost) load(w *mainWindow, src content.Source) error {
	if err := h.content.Load(src); err != nil {
		return err
	}
	w.setGeneration(h.content.State().Generation)

	h.mu.Lock()
	ctx, reload := h.ctx, h.pageLoaded && h.main == w
	h.mu.Unlock()
	if ctx != nil && reload {
		h.shell.reload(ctx)
	}
	return nil
}

// options builds the Wails application options from the host state.
func (h *wailsHost) options(title string, width, height int, bind bool) *options.App {
	h.mu.Lock()
	gpuDisabled := h.gpuDisabled
	h.mu.Unlock()

	gpuPolicy := linux.WebviewGpuPolicyOnDemand
	if gpuDisabled {
		gpuPolicy = linux.WebviewGpuPolicyNever
	}

	opts := &options.App{
		Title:             title,
		Width:             width,
		Height:            height,
		StartHidden:       true,
		HideWindowOnClose: false,
		AssetServer: &assetserver.Options{
			Handler: h.content,
		},
		OnStartup:     h.onStartup,
		OnDomReady:    h.onDomReady,
		OnBeforeClose: h.onBeforeClose,
		OnShutdown:    h.onShutdown,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               "launchpad-9b3f0c6e-single-instance",
			OnSecondInstanceLaunch: h.onSecondInstanceLaunch,
		},
		Windows: &windows.Options{
			WebviewGpuIsDisabled: gpuDisabled,
			WebviewBrowserPath:   h.browserPath,
		},
		Linux: &linux.Options{
			ProgramName:      title,
			WebviewGpuPolicy: gpuPolicy,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   title,
				Message: "v" + AppVersion,
			},
		},
	}
	if bind && h.app != nil {
		opts.Bind = []interface{}{h.app}
	}
	return opts
}

// run blocks in the Wails event loop until the app exits.
func (h *wailsHost) run(opts *options.App) error {
	return wails.Run(opts)
}

// onStartup is the application-ready signal.
func (h *wailsHost) onStartup(ctx context.Context) {
	h.mu.Lock()
	h.ctx = ctx
	h.mu.Unlock()

	if h.app != nil {
		h.app.startup(ctx)
	}
	if err := h.ctrl.Ready(); err != nil {
		Log.Error("window creation failed", "error", err)
	}
}

// onDomReady fires on every page load, including reloads. It becomes the main
// window's ready-to-show signal only once the current source's root document
// was actually served.
func (h *wailsHost) onDomReady(ctx context.Context) {
	h.mu.Lock()
	h.pageLoaded = true
	w := h.main
	h.mu.Unlock()

	st := h.content.State()
	src := h.content.Source().String()
	switch {
	case st.Stale():
		Log.Debug("page predates current source, reloading", "source", src)
		h.shell.reload(ctx)
		return
	case !st.Ready():
		Log.Warn("main content not available, splash stays up", "source", src)
		return
	case w == nil || w.generation() != st.Generation:
		Log.Debug("dom ready without a loading main window", "source", src)
		return
	}

	Log.Debug("dom ready", "source", src)
	if h.app != nil {
		h.app.emitContentReady()
	}
	w.fireReady()
}

// onBeforeClose runs when the user closes the main window. It returns true to
// keep the process alive.
func (h *wailsHost) onBeforeClose(ctx context.Context) bool {
	h.mu.Lock()
	if h.quitting {
		h.mu.Unlock()
		return false
	}
	h.main = nil
	h.closing = true
	h.mu.Unlock()

	if h.WindowCount() == 0 {
		h.ctrl.AllWindowsClosed()
	}

	h.mu.Lock()
	h.closing = false
	quitting := h.quitting
	h.mu.Unlock()

	if quitting {
		return false
	}
	h.shell.hide(ctx)
	return true
}

func (h *wailsHost) onShutdown(ctx context.Context) {
	h.mu.Lock()
	s := h.splash
	h.mu.Unlock()
	if s != nil {
		s.Destroy()
	}
	if h.app != nil {
		h.app.shutdown(ctx)
	}
}

// onSecondInstanceLaunch treats a relaunch as reactivation.
func (h *wailsHost) onSecondInstanceLaunch(data options.SecondInstanceData) {
	Log.Info("second instance launched", "args", data.Args, "dir", data.WorkingDirectory)
	h.activate()
}

// activate delivers the reactivation signal. When windows are still open it
// brings the main window forward instead.
func (h *wailsHost) activate() {
	if err := h.ctrl.Activate(); err != nil {
		Log.Error("reactivation failed", "error", err)
		return
	}
	h.mu.Lock()
	ctx, w := h.ctx, h.main
	h.mu.Unlock()
	if ctx != nil && w != nil && w.isVisible() {
		h.shell.unminimise(ctx)
		h.shell.show(ctx)
	}
}

// mainWindow is a handle on the Wails window. Each creation returns a new
// handle so readiness callbacks from an earlier instance are dropped.
type mainWindow struct {
	host *wailsHost
	opts lifecycle.WindowOptions

	mu      sync.Mutex
	ready   []func()
	visible bool
	gen     uint64 // content generation this window loaded
}

func (w *mainWindow) LoadURL(u string) error {
	return w.host.load(w, content.Source{Kind: content.KindURL, Location: u})
}

func (w *mainWindow) LoadFile(path string) error {
	return w.host.load(w, content.Source{Kind: content.KindFile, Location: path})
}

func (w *mainWindow) OnReadyToShow(fn func()) {
	w.mu.Lock()
	w.ready = append(w.ready, fn)
	w.mu.Unlock()
}

func (w *mainWindow) fireReady() {
	w.mu.Lock()
	fns := append([]func(){}, w.ready...)
	w.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (w *mainWindow) setGeneration(gen uint64) {
	w.mu.Lock()
	w.gen = gen
	w.mu.Unlock()
}

func (w *mainWindow) generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen
}

func (w *mainWindow) Show() {
	w.mu.Lock()
	w.visible = true
	w.mu.Unlock()

	h := w.host
	ctx := h.currentCtx()
	if ctx == nil {
		return
	}
	if w.opts.AlwaysOnTop {
		h.shell.setOnTop(ctx, true)
	}
	h.shell.show(ctx)
	h.shell.emit(ctx, EventWindowShown)
}

func (w *mainWindow) isVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Destroy hides the Wails window; Wails cannot drop its only window.
func (w *mainWindow) Destroy() {
	h := w.host
	h.mu.Lock()
	if h.main == w {
		h.main = nil
	}
	ctx := h.ctx
	h.mu.Unlock()

	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	if ctx != nil {
		h.shell.hide(ctx)
	}
}
