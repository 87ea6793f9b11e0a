package httpapi

import (
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/spf13/afero"

	"github.com/nativewd/webdriverd/internal/actions"
	"github.com/nativewd/webdriverd/internal/alert"
	"github.com/nativewd/webdriverd/internal/artifact"
	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/hostwindow"
	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// Deps is every handler's dependency set: the session registry, the window
// manager standing in for the host's native WebViews, the per-window alert
// coordinator, the on-disk artifact store, and one action dispatcher per
// live session.
type Deps struct {
	Log       logrus.FieldLogger
	Sessions  *webdriver.SessionRegistry
	Windows   *hostwindow.Manager
	Alerts    *alert.Coordinator
	Artifacts *artifact.Store

	mu          sync.Mutex
	dispatchers map[string]*actions.Dispatcher
}

// NewDeps wires a fresh, empty dependency set. Screenshots and print output
// are persisted under ./artifacts on the real filesystem; call SetArtifacts
// to point it elsewhere.
func NewDeps(log logrus.FieldLogger) *Deps {
	windows := hostwindow.NewManager(log)
	return &Deps{
		Log:         log,
		Sessions:    webdriver.NewSessionRegistry(windows),
		Windows:     windows,
		Alerts:      alert.NewCoordinator(),
		Artifacts:   artifact.NewStore(afero.NewOsFs(), "./artifacts"),
		dispatchers: make(map[string]*actions.Dispatcher),
	}
}

// SetArtifacts replaces the artifact store, e.g. to point it at a
// configured directory or an in-memory filesystem in tests.
func (d *Deps) SetArtifacts(store *artifact.Store) {
	d.Artifacts = store
}

// ensureWindow opens the host's first window on demand: this standalone
// server has no application chrome that opens one on startup the way an
// embedding host would, so session creation takes on that responsibility
// the first time it's needed.
func (d *Deps) ensureWindow() {
	if d.Windows.Len() == 0 {
		d.Windows.Open()
	}
}

// executorFor builds a platform executor bound to session's current window,
// current timeouts, and current frame stack. A fresh Executor value is
// constructed per call (timeouts/frames can have changed since the last
// one), but it shares the window's persistent bridge and async registry so
// in-page element variables survive across requests. Which concrete backend
// it builds is selected by platformExecutor.
func (d *Deps) executorFor(snap webdriver.Snapshot, elements *webdriver.ElementStore) (executor.Executor, error) {
	w, ok := d.Windows.Get(snap.CurrentWindow)
	if !ok {
		return nil, wderr.NoSuchWindowErr()
	}
	base, err := executor.NewBaseExecutor(d.Log, w.Bridge, w.Label, snap.Timeouts, snap.FrameStack, elements, w.Async)
	if err != nil {
		return nil, err
	}
	return d.platformExecutor(base, w), nil
}

// platformExecutor picks the backend matching the GOOS this binary was
// built for — the Go-native equivalent of the embedding application
// selecting its platform's WebView driver at compile time. android and ios
// are legitimate GOOS values for Go's mobile build targets, so the same
// switch that picks WebKitGTK/WKWebView/WebView2 on desktop also covers the
// two mobile bridge backends. Anything else (e.g. GOOS=js for a wasm host)
// falls back to the native-hook-free script-only backend.
func (d *Deps) platformExecutor(base executor.BaseExecutor, w *hostwindow.Window) executor.Executor {
	switch runtime.GOOS {
	case "darwin":
		return &executor.MacOSExecutor{BaseExecutor: base, NativeHooks: w.NativeControl}
	case "windows":
		return &executor.WindowsExecutor{BaseExecutor: base, NativeHooks: w.NativeControl}
	case "linux":
		return &executor.LinuxExecutor{BaseExecutor: base}
	case "android":
		return &executor.AndroidExecutor{BaseExecutor: base, Mobile: hostwindow.NewSimulatedMobileBridge(w, d.Alerts.ForWindow(w.Label))}
	case "ios":
		return &executor.IOSExecutor{BaseExecutor: base, Mobile: hostwindow.NewSimulatedMobileBridge(w, d.Alerts.ForWindow(w.Label))}
	default:
		return &executor.ScriptOnlyExecutor{BaseExecutor: base}
	}
}

// isMobileGOOS reports whether goos is one of Go's mobile build targets,
// used to compute the setWindowRect capability (true on desktop, false on
// mobile).
func isMobileGOOS(goos string) bool {
	return goos == "android" || goos == "ios"
}

// dispatcherFor returns session's action dispatcher, creating it on first
// use and rebinding it to the session's current executor so a dispatcher
// created against one window still works after the session switches
// windows.
func (d *Deps) dispatcherFor(sessionID string, exec executor.Executor) *actions.Dispatcher {
	d.mu.Lock()
	defer d.mu.Unlock()

	disp, ok := d.dispatchers[sessionID]
	if !ok {
		disp = actions.NewDispatcher(exec)
		d.dispatchers[sessionID] = disp
		return disp
	}
	disp.Exec = exec
	return disp
}

// dropSession discards a session's leftover dispatcher state on delete.
func (d *Deps) dropSession(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.dispatchers, sessionID)
}
