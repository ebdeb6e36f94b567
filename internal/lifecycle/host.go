package lifecycle

// Role tells a host which of the two windows it is building. Hosts that back
// only one webview use it to route the splash elsewhere.
type Role int

const (
	RoleSplash Role = iota + 1
	RoleMain
)

func (r Role) String() string {
	switch r {
	case RoleSplash:
		return "splash"
	case RoleMain:
		return "main"
	default:
		return "unknown"
	}
}

// WebPreferences controls what the loaded content may reach.
type WebPreferences struct {
	NodeIntegration  bool
	ContextIsolation bool
}

// WindowOptions is the creation-time configuration of a window.
type WindowOptions struct {
	Role        Role
	Title       string
	Width       int
	Height      int
	Frame       bool
	Transparent bool
	AlwaysOnTop bool
	Show        bool
	Web         WebPreferences
}

// Window is a host-managed window handle.
type Window interface {
	LoadURL(url string) error
	LoadFile(path string) error
	// OnReadyToShow registers fn for the window's readiness signal. Hosts
	// may deliver the signal more than once.
	OnReadyToShow(fn func())
	Show()
	Destroy()
}

// Host is the windowing backend. Implementations must not invoke callbacks
// synchronously from inside any Host or Window method.
type Host interface {
	CreateWindow(opts WindowOptions) (Window, error)
	WindowCount() int
	DisableHardwareAcceleration()
	Quit()
}
