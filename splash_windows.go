//go:build windows

package main

import (
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"launchpad/internal/lifecycle"
)

// Win32 API references for the splash window
var (
	spUser32   = windows.NewLazySystemDLL("user32.dll")
	spKernel32 = windows.NewLazySystemDLL("kernel32.dll")
	spGdi32    = windows.NewLazySystemDLL("gdi32.dll")

	spRegisterClassExW           = spUser32.NewProc("RegisterClassExW")
	spCreateWindowExW            = spUser32.NewProc("CreateWindowExW")
	spDefWindowProcW             = spUser32.NewProc("DefWindowProcW")
	spShowWindow                 = spUser32.NewProc("ShowWindow")
	spUpdateWindow               = spUser32.NewProc("UpdateWindow")
	spGetMessageW                = spUser32.NewProc("GetMessageW")
	spTranslateMessage           = spUser32.NewProc("TranslateMessage")
	spDispatchMessageW           = spUser32.NewProc("DispatchMessageW")
	spPostMessageW               = spUser32.NewProc("PostMessageW")
	spSetWindowTextW             = spUser32.NewProc("SetWindowTextW")
	spGetSystemMetrics           = spUser32.NewProc("GetSystemMetrics")
	spMessageBoxW                = spUser32.NewProc("MessageBoxW")
	spSendMessageW               = spUser32.NewProc("SendMessageW")
	spPostQuitMessage            = spUser32.NewProc("PostQuitMessage")
	spSetLayeredWindowAttributes = spUser32.NewProc("SetLayeredWindowAttributes")
	spGetModuleHandleW           = spKernel32.NewProc("GetModuleHandleW")
	spGetStockObject             = spGdi32.NewProc("GetStockObject")
)

// Win32 constants
const (
	spWsPopup       = 0x80000000
	spWsCaption     = 0x00C00000
	spWsSysmenu     = 0x00080000
	spWsVisible     = 0x10000000
	spWsChild       = 0x40000000
	spWsExTopmost   = 0x00000008
	spWsExToolwin   = 0x00000080
	spWsExLayered   = 0x00080000
	spSsCenter      = 0x00000001
	spSmCxscreen    = 0
	spSmCyscreen    = 1
	spSwShow        = 5
	spWmDestroy     = 0x0002
	spWmClose       = 0x0010
	spWmSetfont     = 0x0030
	spWmUser        = 0x0400
	spMbOK          = 0x00000000
	spMbIconError   = 0x00000010
	spDefGuiFont    = 17
	spColorWindow   = 5
	spLwaAlpha      = 0x00000002
	spSplashOpacity = 230

	spWmUpdateText = spWmUser + 100
)

type spWndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     uintptr
	hIcon         uintptr
	hCursor       uintptr
	hbrBackground uintptr
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       uintptr
}

type spPoint struct{ x, y int32 }
type spMsg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      spPoint
}

// Live splash surfaces by top-level hwnd.
var (
	spSurfacesMu sync.Mutex
	spSurfaces   = map[uintptr]*splashSurface{}
	spWndProc    = windows.NewCallback(spSplashWndProc)
)

func spSplashWndProc(hwnd, umsg, wParam, lParam uintptr) uintptr {
	switch umsg {
	case spWmDestroy:
		spSurfacesMu.Lock()
		delete(spSurfaces, hwnd)
		spSurfacesMu.Unlock()
		spPostQuitMessage.Call(0)
		return 0
	case spWmUpdateText:
		spSurfacesMu.Lock()
		s := spSurfaces[hwnd]
		spSurfacesMu.Unlock()
		if s != nil {
			s.applyText()
		}
		return 0
	}
	ret, _, _ := spDefWindowProcW.Call(hwnd, umsg, wParam, lParam)
	return ret
}

// splashSurface is a borderless Win32 popup with a centered static label.
type splashSurface struct {
	opts  lifecycle.WindowOptions
	ready chan struct{}

	mu     sync.Mutex
	text   string
	hwnd   uintptr
	label  uintptr
	shown  bool
	closed bool
}

func newSplashSurface(opts lifecycle.WindowOptions) *splashSurface {
	return &splashSurface{opts: opts, ready: make(chan struct{})}
}

func (s *splashSurface) show() {
	s.mu.Lock()
	if s.shown || s.closed {
		s.mu.Unlock()
		return
	}
	s.shown = true
	s.mu.Unlock()

	go s.run()
	<-s.ready
}

// run creates the window and pumps its messages on a locked OS thread.
func (s *splashSurface) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hInst, _, _ := spGetModuleHandleW.Call(0)
	className, _ := windows.UTF16PtrFromString("LaunchpadSplash")

	wc := spWndClassEx{
		lpfnWndProc:   spWndProc,
		hInstance:     hInst,
		hbrBackground: spColorWindow + 1,
		lpszClassName: className,
	}
	wc.cbSize = uint32(unsafe.Sizeof(wc))
	// Fails harmlessly when the class survives from an earlier splash.
	spRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))

	w, h := s.opts.Width, s.opts.Height
	sw, _, _ := spGetSystemMetrics.Call(spSmCxscreen)
	sh, _, _ := spGetSystemMetrics.Call(spSmCyscreen)
	x := (int(sw) - w) / 2
	y := (int(sh) - h) / 2

	var style, exStyle uintptr = spWsPopup, spWsExToolwin
	if s.opts.Frame {
		style = spWsCaption | spWsSysmenu
	}
	if s.opts.AlwaysOnTop {
		exStyle |= spWsExTopmost
	}
	if s.opts.Transparent {
		exStyle |= spWsExLayered
	}

	title, _ := windows.UTF16PtrFromString(s.opts.Title)
	hwnd, _, _ := spCreateWindowExW.Call(
		exStyle,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		style,
		uintptr(x), uintptr(y), uintptr(w), uintptr(h),
		0, 0, hInst, 0,
	)
	if hwnd == 0 {
		Log.Error("create splash window failed")
		close(s.ready)
		return
	}
	if s.opts.Transparent {
		spSetLayeredWindowAttributes.Call(hwnd, 0, spSplashOpacity, spLwaAlpha)
	}

	staticClass, _ := windows.UTF16PtrFromString("STATIC")
	label, _, _ := spCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(staticClass)),
		0,
		spWsChild|spWsVisible|spSsCenter,
		10, uintptr(h/3), uintptr(w-20), uintptr(h/2),
		hwnd, 0, hInst, 0,
	)
	hFont, _, _ := spGetStockObject.Call(spDefGuiFont)
	spSendMessageW.Call(label, spWmSetfont, hFont, 1)

	s.mu.Lock()
	s.hwnd = hwnd
	s.label = label
	closed := s.closed
	s.mu.Unlock()

	spSurfacesMu.Lock()
	spSurfaces[hwnd] = s
	spSurfacesMu.Unlock()

	s.applyText()
	spShowWindow.Call(hwnd, spSwShow)
	spUpdateWindow.Call(hwnd)
	close(s.ready)

	if closed {
		spPostMessageW.Call(hwnd, spWmClose, 0, 0)
	}

	// Message pump
	var m spMsg
	for {
		ret, _, _ := spGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		spTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		spDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (s *splashSurface) applyText() {
	s.mu.Lock()
	label, text := s.label, s.text
	s.mu.Unlock()
	if label == 0 {
		return
	}
	ptr, _ := windows.UTF16PtrFromString(text)
	spSetWindowTextW.Call(label, uintptr(unsafe.Pointer(ptr)))
}

func (s *splashSurface) setText(text string) {
	s.mu.Lock()
	s.text = text
	hwnd := s.hwnd
	s.mu.Unlock()
	if hwnd != 0 {
		spPostMessageW.Call(hwnd, spWmUpdateText, 0, 0)
	}
}

func (s *splashSurface) close() {
	s.mu.Lock()
	s.closed = true
	hwnd := s.hwnd
	s.hwnd = 0
	s.mu.Unlock()
	if hwnd != 0 {
		spPostMessageW.Call(hwnd, spWmClose, 0, 0)
	}
}

// showErrorBox shows a blocking native error dialog.
func showErrorBox(title, message string) {
	text, _ := windows.UTF16PtrFromString(message)
	caption, _ := windows.UTF16PtrFromString(title)
	spMessageBoxW.Call(0, uintptr(unsafe.Pointer(text)), uintptr(unsafe.Pointer(caption)), spMbOK|spMbIconError)
}
