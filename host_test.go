package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"launchpad/internal/content"
	"launchpad/internal/lifecycle"
	"launchpad/internal/splash"
)

type fakeSurface struct {
	mu     sync.Mutex
	shown  int
	closed int
	text   string
}

func (s *fakeSurface) show() {
	s.mu.Lock()
	s.shown++
	s.mu.Unlock()
}

func (s *fakeSurface) setText(t string) {
	s.mu.Lock()
	s.text = t
	s.mu.Unlock()
}

func (s *fakeSurface) close() {
	s.mu.Lock()
	s.closed++
	s.mu.Unlock()
}

func (s *fakeSurface) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// shellCalls records every Wails runtime call the host makes.
type shellCalls struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *shellCalls) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[name]++
}

func (c *shellCalls) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

func (c *shellCalls) shell() shell {
	rec := func(name string) func(context.Context) {
		return func(context.Context) { c.add(name) }
	}
	return shell{
		hide:       rec("hide"),
		show:       rec("show"),
		unminimise: rec("unminimise"),
		center:     rec("center"),
		reload:     rec("reload"),
		quit:       rec("quit"),
		setTitle:   func(context.Context, string) { c.add("setTitle") },
		setSize:    func(context.Context, int, int) { c.add("setSize") },
		setOnTop:   func(context.Context, bool) { c.add("setOnTop") },
		emit: func(_ context.Context, name string, _ ...interface{}) {
			c.add("emit:" + name)
		},
	}
}

type testHost struct {
	*wailsHost
	ctrl     *lifecycle.Controller
	calls    *shellCalls
	surfaces []*fakeSurface
}

func newTestHost(t *testing.T, src content.Source, quitOnClose bool) *testHost {
	t.Helper()
	th := &testHost{calls: &shellCalls{}}
	th.wailsHost = &wailsHost{
		content: content.NewHandler(nil),
		shell:   th.calls.shell(),
	}
	th.newSurface = func(lifecycle.WindowOptions) surface {
		s := &fakeSurface{}
		th.surfaces = append(th.surfaces, s)
		return s
	}
	th.ctrl = lifecycle.New(th.wailsHost, lifecycle.Config{
		Title:           "Launchpad",
		Source:          src,
		Splash:          splash.Default("Launchpad"),
		QuitOnAllClosed: quitOnClose,
	}, nil)
	th.attach(th.ctrl, nil)
	return th
}

// requestPage fetches the root document the way the webview does.
func (th *testHost) requestPage() int {
	rec := httptest.NewRecorder()
	th.content.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec.Code
}

// pageLoad fetches the root document and then delivers DomReady.
func (th *testHost) pageLoad() int {
	code := th.requestPage()
	th.onDomReady(context.Background())
	return code
}

func packagedSource(t *testing.T) content.Source {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "dist"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dist", "index.html"), []byte("<h1>main</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return content.Selector{Mode: content.ModePackaged, InstallDir: dir}.Select()
}

func startRevealed(t *testing.T, quitOnClose bool) *testHost {
	t.Helper()
	th := newTestHost(t, packagedSource(t), quitOnClose)
	th.onStartup(context.Background())
	if code := th.pageLoad(); code != http.StatusOK {
		t.Fatalf("GET / = %d", code)
	}
	if !th.ctrl.Revealed() {
		t.Fatal("main window not revealed")
	}
	return th
}

func TestHost_RevealsMainOnceContentServed(t *testing.T) {
	th := newTestHost(t, packagedSource(t), true)
	th.onStartup(context.Background())

	if len(th.surfaces) != 1 || th.surfaces[0].shown != 1 {
		t.Fatalf("splash surfaces = %d", len(th.surfaces))
	}
	if n := th.WindowCount(); n != 2 {
		t.Fatalf("window count before ready = %d", n)
	}
	if th.calls.count("show") != 0 {
		t.Fatal("main shown before its content was served")
	}

	th.pageLoad()

	if th.calls.count("show") != 1 || th.calls.count("emit:"+EventWindowShown) != 1 {
		t.Fatalf("show = %d, emit = %d", th.calls.count("show"), th.calls.count("emit:"+EventWindowShown))
	}
	if th.surfaces[0].closeCount() != 1 {
		t.Fatal("splash not closed")
	}
	if n := th.WindowCount(); n != 1 {
		t.Fatalf("window count after ready = %d", n)
	}

	// A later reload of the same page changes nothing.
	th.pageLoad()
	if th.calls.count("show") != 1 || th.surfaces[0].closeCount() != 1 {
		t.Fatal("second DomReady revealed again")
	}
}

func TestHost_KeepsSplashWhenContentFails(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	downURL := down.URL
	down.Close()

	cases := []struct {
		name string
		src  content.Source
		code int
	}{
		{"dev server down", content.Source{Kind: content.KindURL, Location: downURL}, http.StatusBadGateway},
		{"document missing", content.Selector{Mode: content.ModePackaged, InstallDir: t.TempDir()}.Select(), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			th := newTestHost(t, tc.src, true)
			th.onStartup(context.Background())

			if code := th.pageLoad(); code != tc.code {
				t.Fatalf("GET / = %d, want %d", code, tc.code)
			}
			if th.ctrl.Revealed() || th.calls.count("show") != 0 {
				t.Fatal("error page revealed the main window")
			}
			if th.surfaces[0].closeCount() != 0 {
				t.Fatal("splash closed")
			}
			if th.calls.count("reload") != 0 {
				t.Fatal("failed page reloaded in a loop")
			}
		})
	}
}

func TestHost_PageFromBeforeLoadIsReloaded(t *testing.T) {
	th := newTestHost(t, packagedSource(t), true)

	// The webview asks for "/" before the startup signal arrives.
	if code := th.requestPage(); code != http.StatusServiceUnavailable {
		t.Fatalf("GET / before load = %d", code)
	}
	th.onStartup(context.Background())
	th.onDomReady(context.Background())

	if th.calls.count("reload") != 1 {
		t.Fatalf("reload = %d", th.calls.count("reload"))
	}
	if th.ctrl.Revealed() {
		t.Fatal("placeholder page revealed the main window")
	}

	th.pageLoad()
	if !th.ctrl.Revealed() || th.calls.count("show") != 1 {
		t.Fatal("main not revealed after reload")
	}
}

func TestHost_DomReadyBeforeStartupReloadsOnLoad(t *testing.T) {
	th := newTestHost(t, packagedSource(t), true)
	th.pageLoad()
	if th.ctrl.Revealed() {
		t.Fatal("revealed before startup")
	}

	th.onStartup(context.Background())
	if th.calls.count("reload") != 1 {
		t.Fatalf("reload = %d", th.calls.count("reload"))
	}
	th.pageLoad()
	if !th.ctrl.Revealed() {
		t.Fatal("main not revealed")
	}
}

func TestHost_CloseWithQuitPolicy(t *testing.T) {
	th := startRevealed(t, true)
	hides := th.calls.count("hide")

	if keep := th.onBeforeClose(context.Background()); keep {
		t.Fatal("close was held back although the app quits")
	}
	if th.calls.count("quit") != 0 {
		t.Fatal("runtime quit called inside a pending close")
	}
	if th.calls.count("hide") != hides {
		t.Fatal("window hidden instead of closed")
	}
	if th.WindowCount() != 0 {
		t.Fatalf("window count = %d", th.WindowCount())
	}
}

func TestHost_CloseKeepsAliveAndRecreates(t *testing.T) {
	th := startRevealed(t, false)
	hides := th.calls.count("hide")

	if keep := th.onBeforeClose(context.Background()); !keep {
		t.Fatal("close went through although the app stays alive")
	}
	if th.calls.count("hide") != hides+1 {
		t.Fatal("window not hidden")
	}
	if th.calls.count("quit") != 0 || th.WindowCount() != 0 {
		t.Fatalf("quit = %d, windows = %d", th.calls.count("quit"), th.WindowCount())
	}

	th.activate()

	if len(th.surfaces) != 2 || th.WindowCount() != 2 {
		t.Fatalf("surfaces = %d, windows = %d", len(th.surfaces), th.WindowCount())
	}
	if th.calls.count("reload") != 1 {
		t.Fatalf("reload = %d", th.calls.count("reload"))
	}
	if th.ctrl.Revealed() {
		t.Fatal("recreated main revealed before its page loaded")
	}

	// DomReady from the page fetched before recreation only reloads.
	th.onDomReady(context.Background())
	if th.ctrl.Revealed() || th.calls.count("reload") != 2 {
		t.Fatalf("stale page: revealed = %v, reload = %d", th.ctrl.Revealed(), th.calls.count("reload"))
	}

	th.pageLoad()
	if !th.ctrl.Revealed() || th.calls.count("show") != 2 {
		t.Fatal("recreated main not revealed")
	}
	if th.surfaces[1].closeCount() != 1 {
		t.Fatal("second splash not closed")
	}
}

func TestHost_TrayQuit(t *testing.T) {
	th := startRevealed(t, false)

	th.Quit()
	if th.calls.count("quit") != 1 {
		t.Fatalf("quit = %d", th.calls.count("quit"))
	}
	if keep := th.onBeforeClose(context.Background()); keep {
		t.Fatal("close held back after quit")
	}
}

func TestHost_ActivateWithOpenWindowBringsItForward(t *testing.T) {
	th := startRevealed(t, true)

	th.activate()

	if len(th.surfaces) != 1 {
		t.Fatal("windows recreated while main is open")
	}
	if th.calls.count("unminimise") != 1 || th.calls.count("show") != 2 {
		t.Fatalf("unminimise = %d, show = %d", th.calls.count("unminimise"), th.calls.count("show"))
	}
}

func TestHost_SecondMainWindowRejected(t *testing.T) {
	th := startRevealed(t, true)
	if _, err := th.CreateWindow(lifecycle.WindowOptions{Role: lifecycle.RoleMain}); err != errMainWindowOpen {
		t.Fatalf("err = %v", err)
	}
}
