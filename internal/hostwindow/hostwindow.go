// Package hostwindow stands in for the native host's window/WebView
// registry. In a real embedding host, opening a window creates a native
// WebView the platform executor drives directly; here each window owns a
// persistent goja-backed script bridge and async-completion registry so
// in-page element variables and pending callbacks survive across the many
// HTTP requests one WebDriver session issues against it.
package hostwindow

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nativewd/webdriverd/internal/bridge"
)

// Window is one open content view and the state a platform executor needs
// to keep reusing it: the runtime holding in-page element variables, the
// registry correlating async-script callbacks with their callers, and a
// simulated native window handle standing in for the AppKit/Win32/GTK
// handle a real embedding host would hand the executor.
type Window struct {
	Label         string
	Bridge        *bridge.GojaBridge
	Async         *bridge.AsyncRegistry
	NativeControl *SimulatedWindowControl
}

// Manager tracks every open window. It satisfies webdriver.WindowLister so
// the session registry can poll it for the window a new session attaches
// to.
type Manager struct {
	log logrus.FieldLogger

	mu      sync.Mutex
	windows map[string]*Window
	seq     int
}

// NewManager returns an empty manager.
func NewManager(log logrus.FieldLogger) *Manager {
	return &Manager{log: log, windows: make(map[string]*Window)}
}

// WindowLabels implements webdriver.WindowLister.
func (m *Manager) WindowLabels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	labels := make([]string, 0, len(m.windows))
	for label := range m.windows {
		labels = append(labels, label)
	}
	return labels
}

// Open creates a fresh window with its own script bridge, the Go-native
// equivalent of the host spawning a new native WebView.
func (m *Manager) Open() *Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	label := fmt.Sprintf("window-%d", m.seq)
	w := &Window{
		Label:         label,
		Bridge:        bridge.NewGojaBridge(m.log.WithField("window", label)),
		Async:         bridge.NewAsyncRegistry(),
		NativeControl: NewSimulatedWindowControl(),
	}
	m.windows[label] = w
	return w
}

// Get looks up a window by label.
func (m *Manager) Get(label string) (*Window, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.windows[label]
	return w, ok
}

// Close discards a window. A no-op if the label is already gone.
func (m *Manager) Close(label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.windows, label)
}

// Len reports how many windows are currently open.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}
