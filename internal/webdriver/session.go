// Package webdriver holds the session registry, element reference table,
// and the small value types (Timeouts, FrameId) threaded through every
// WebDriver operation.
package webdriver

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// Timeouts holds the three W3C timeout values, in milliseconds.
type Timeouts struct {
	ImplicitMs int64 `json:"implicit"`
	PageLoadMs int64 `json:"pageLoad"`
	ScriptMs   int64 `json:"script"`
}

// DefaultTimeouts matches the W3C defaults.
func DefaultTimeouts() Timeouts {
	return Timeouts{ImplicitMs: 0, PageLoadMs: 300_000, ScriptMs: 30_000}
}

// FrameKind tags the three shapes a FrameId can take.
type FrameKind int

const (
	FrameTop FrameKind = iota
	FrameIndex
	FrameElement
)

// FrameId identifies one hop of nested browsing context.
type FrameId struct {
	Kind    FrameKind
	Index   uint32
	VarName string
}

// Session is the per-client state the registry owns: timeouts, the current
// window, the frame stack, and the element table. A session never outlives
// the process; there is exactly one current window per session.
type Session struct {
	ID            string
	Timeouts      Timeouts
	CurrentWindow string
	FrameStack    []FrameId
	Elements      *ElementStore
}

// Snapshot is the minimal (window, timeouts, frame stack) tuple a handler
// clones out of the registry before releasing its lock and issuing any
// blocking bridge call.
type Snapshot struct {
	SessionID     string
	CurrentWindow string
	Timeouts      Timeouts
	FrameStack    []FrameId
}

func (s *Session) snapshot() Snapshot {
	frames := make([]FrameId, len(s.FrameStack))
	copy(frames, s.FrameStack)
	return Snapshot{
		SessionID:     s.ID,
		CurrentWindow: s.CurrentWindow,
		Timeouts:      s.Timeouts,
		FrameStack:    frames,
	}
}

// WindowLister is the registry's sole dependency on the host: something that
// can report currently-open window labels, polled at session creation.
type WindowLister interface {
	WindowLabels() []string
}

// SessionRegistry is the keyed map from session ID to Session, guarded by a
// reader/writer lock: operations that mutate the session set, a session's
// timeouts, window or frame stack take the writer lock, everything else
// takes the reader lock. Each element table has its own mutex.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	windows  WindowLister

	pollInterval    time.Duration
	createWait      time.Duration
	defaultTimeouts Timeouts
}

// NewSessionRegistry constructs an empty registry backed by windows.
func NewSessionRegistry(windows WindowLister) *SessionRegistry {
	return &SessionRegistry{
		sessions:        make(map[string]*Session),
		windows:         windows,
		pollInterval:    100 * time.Millisecond,
		createWait:      10 * time.Second,
		defaultTimeouts: DefaultTimeouts(),
	}
}

// SetPollInterval overrides the interval at which Create polls for a window
// to become available.
func (r *SessionRegistry) SetPollInterval(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pollInterval = d
}

// SetDefaultTimeouts overrides the timeouts assigned to every session
// created from this point on.
func (r *SessionRegistry) SetDefaultTimeouts(t Timeouts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultTimeouts = t
}

// Create waits for the first available window (polling at pollInterval up
// to createWait), then allocates a new Session bound to it. The poll is
// rate-limited rather than a bare sleep loop so a burst of concurrent
// Create calls from many clients can't hammer the window lister.
func (r *SessionRegistry) Create() (*Session, error) {
	if labels := r.windows.WindowLabels(); len(labels) > 0 {
		return r.createWithWindow(labels[0]), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.createWait)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(r.pollInterval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, wderr.New(wderr.SessionNotCreated, "no window became available within the creation timeout")
		}
		if labels := r.windows.WindowLabels(); len(labels) > 0 {
			return r.createWithWindow(labels[0]), nil
		}
	}
}

func (r *SessionRegistry) createWithWindow(window string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Session{
		ID:            uuid.NewString(),
		Timeouts:      r.defaultTimeouts,
		CurrentWindow: window,
		FrameStack:    nil,
		Elements:      NewElementStore(),
	}
	r.sessions[s.ID] = s
	return s
}

// Snapshot reads session id's (window, timeouts, frame stack) tuple under
// the reader lock. Returns invalid session id if unknown.
func (r *SessionRegistry) Snapshot(id string) (Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return Snapshot{}, wderr.InvalidSessionIDErr(id)
	}
	return s.snapshot(), nil
}

// Elements returns the session's element store under the reader lock. The
// store guards itself with its own mutex, so handlers allocate and look up
// refs in it without holding the registry lock.
func (r *SessionRegistry) Elements(id string) (*ElementStore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, wderr.InvalidSessionIDErr(id)
	}
	return s.Elements, nil
}

// SetTimeouts applies a partial timeout update under the writer lock.
func (r *SessionRegistry) SetTimeouts(id string, implicit, pageLoad, script *int64) (Timeouts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Timeouts{}, wderr.InvalidSessionIDErr(id)
	}
	if implicit != nil {
		s.Timeouts.ImplicitMs = *implicit
	}
	if pageLoad != nil {
		s.Timeouts.PageLoadMs = *pageLoad
	}
	if script != nil {
		s.Timeouts.ScriptMs = *script
	}
	return s.Timeouts, nil
}

// SetCurrentWindow updates the session's current window handle.
func (r *SessionRegistry) SetCurrentWindow(id, window string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return wderr.InvalidSessionIDErr(id)
	}
	s.CurrentWindow = window
	s.FrameStack = nil
	return nil
}

// PushFrame appends frame to the session's frame stack.
func (r *SessionRegistry) PushFrame(id string, frame FrameId) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return wderr.InvalidSessionIDErr(id)
	}
	s.FrameStack = append(s.FrameStack, frame)
	return nil
}

// PopFrame removes the innermost frame from the session's frame stack, if
// any (switch-to-parent-frame is a no-op at the top level).
func (r *SessionRegistry) PopFrame(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return wderr.InvalidSessionIDErr(id)
	}
	if len(s.FrameStack) > 0 {
		s.FrameStack = s.FrameStack[:len(s.FrameStack)-1]
	}
	return nil
}

// ResetFrames truncates the frame stack to the top level.
func (r *SessionRegistry) ResetFrames(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return wderr.InvalidSessionIDErr(id)
	}
	s.FrameStack = nil
	return nil
}

// Delete removes session id. Idempotent from the client's viewpoint: a
// second delete of the same ID returns invalid session id, matching the
// original's bool-returning Delete semantics surfaced through the handler.
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return wderr.InvalidSessionIDErr(id)
	}
	delete(r.sessions, id)
	return nil
}

// Len reports the number of live sessions, used by idempotence tests.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
