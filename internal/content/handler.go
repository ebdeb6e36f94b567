package content

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"path/filepath"
	"sync"
)

// Handler serves whatever Source it was last pointed at. The webview's asset
// server routes every request through it, so swapping the source and
// reloading the page switches content.
type Handler struct {
	log *slog.Logger

	mu     sync.RWMutex
	src    Source
	target http.Handler
	state  State
}

// State tracks which load generation the root document was last fetched for.
// Every Load starts a new generation; 0 means nothing is loaded.
type State struct {
	Generation uint64
	Requested  uint64 // generation of the last root document response
	Served     uint64 // generation of the last 2xx root document
}

// Ready reports whether the current source's root document was served
// successfully.
func (s State) Ready() bool {
	return s.Generation != 0 && s.Served == s.Generation
}

// Stale reports whether the page on screen was fetched before the current
// source was loaded.
func (s State) Stale() bool {
	return s.Generation != 0 && s.Requested != s.Generation
}

// NewHandler returns a Handler with no source. Until Load is called it
// answers 503. A nil logger discards output.
func NewHandler(log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{log: log.With("component", "content")}
}

// Load swaps the served content to src and starts a new generation.
func (h *Handler) Load(src Source) error {
	var target http.Handler
	switch src.Kind {
	case KindURL:
		u, err := url.Parse(src.Location)
		if err != nil {
			return fmt.Errorf("parse content url %q: %w", src.Location, err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("content url %q: missing scheme or host", src.Location)
		}
		target = h.devProxy(u)
	case KindFile:
		target = documentServer(src.Location)
	default:
		return fmt.Errorf("load %q: %w", src.Location, ErrUnknownKind)
	}

	h.mu.Lock()
	h.src = src
	h.target = target
	h.state.Generation++
	h.mu.Unlock()
	return nil
}

// Source returns the source currently being served.
func (h *Handler) Source() Source {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.src
}

// State returns a snapshot of the load state.
func (h *Handler) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	target, gen := h.target, h.state.Generation
	h.mu.RUnlock()

	if !isRootDocument(r) {
		if target == nil {
			http.Error(w, "content not loaded", http.StatusServiceUnavailable)
			return
		}
		target.ServeHTTP(w, r)
		return
	}

	rec := &statusRecorder{ResponseWriter: w}
	if target == nil {
		http.Error(rec, "content not loaded", http.StatusServiceUnavailable)
	} else {
		target.ServeHTTP(rec, r)
	}
	h.recordRoot(gen, rec.code())
}

// recordRoot notes a root document response for generation gen. Responses
// for a superseded generation are dropped.
func (h *Handler) recordRoot(gen uint64, code int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.state.Generation {
		return
	}
	h.state.Requested = gen
	if code >= 200 && code < 300 {
		h.state.Served = gen
	} else {
		h.log.Warn("root document failed", "status", code, "source", h.src.String())
	}
}

func isRootDocument(r *http.Request) bool {
	return r.Method == http.MethodGet && path.Clean("/"+r.URL.Path) == "/"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

func (h *Handler) devProxy(u *url.URL) http.Handler {
	proxy := httputil.NewSingleHostReverseProxy(u)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		// Dev servers check Host for HMR websocket origin.
		r.Host = u.Host
	}
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		h.log.Error("dev server proxy", "url", u.String(), "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusBadGateway)
	}
	return proxy
}

// documentServer serves the document's directory, with "/" mapped to the
// document itself.
func documentServer(doc string) http.Handler {
	files := http.FileServer(http.Dir(filepath.Dir(doc)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path.Clean("/"+r.URL.Path) == "/" {
			http.ServeFile(w, r, doc)
			return
		}
		files.ServeHTTP(w, r)
	})
}
