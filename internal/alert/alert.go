// Package alert implements the per-window alert coordinator (C7): a pending
// dialog slot and a prompt-input-text slot, bridged to the WebDriver
// handler via a one-shot response channel.
package alert

import (
	"sync"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// Type is the kind of native dialog a page invoked.
type Type int

const (
	Alert Type = iota
	Confirm
	Prompt
)

// Response is what the WebDriver handler sends back to unblock the host's
// dialog-interception hook.
type Response struct {
	Accepted   bool
	PromptText string
}

// PendingAlert is a window's currently-open dialog, if any.
type PendingAlert struct {
	Message     string
	DefaultText string
	AlertType   Type
	responder   chan Response
}

// Event is a notification pushed to subscribers when a window's dialog
// state changes, standing in for the message a native UI thread would post
// across the scheduler's event loop when a dialog opens or closes.
type Event struct {
	Opened  bool
	Message string
}

// State is one window's alert slots: a pending alert and a prompt input
// text, each independently nil-able.
type State struct {
	mu          sync.Mutex
	pending     *PendingAlert
	promptInput *string
	subscribers []chan Event
}

// Subscribe returns a channel that receives every future Event for this
// window. The channel is buffered; a slow or abandoned subscriber never
// blocks SetPending/Respond.
func (s *State) Subscribe() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 8)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *State) publish(ev Event) {
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SetPending records alert as the window's pending dialog, returning the
// one-shot channel the caller should block on until Respond is called. This
// clears any previously set prompt input text.
func (s *State) SetPending(message, defaultText string, alertType Type) <-chan Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Response, 1)
	s.pending = &PendingAlert{Message: message, DefaultText: defaultText, AlertType: alertType, responder: ch}
	s.promptInput = nil
	s.publish(Event{Opened: true, Message: message})
	return ch
}

// SetPromptInput succeeds only if a prompt is currently pending.
func (s *State) SetPromptInput(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pending.AlertType != Prompt {
		return wderr.New(wderr.NoSuchAlert, "no prompt dialog is pending")
	}
	s.promptInput = &text
	return nil
}

// Text returns the pending alert's message.
func (s *State) Text() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return "", wderr.New(wderr.NoSuchAlert, "no dialog is pending")
	}
	return s.pending.Message, nil
}

// Respond sends {accepted, prompt_text} to the pending alert's responder
// and clears both slots. A no-op when no alert is pending.
func (s *State) Respond(accepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return nil
	}
	text := ""
	if s.promptInput != nil {
		text = *s.promptInput
	}
	message := s.pending.Message
	s.pending.responder <- Response{Accepted: accepted, PromptText: text}
	s.pending = nil
	s.promptInput = nil
	s.publish(Event{Opened: false, Message: message})
	return nil
}

// HasPending reports whether a dialog is currently open, used by handlers
// that need to 404 before blocking.
func (s *State) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Coordinator holds one State per window, created on first use.
type Coordinator struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewCoordinator returns an empty, ready-to-use coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{states: make(map[string]*State)}
}

// ForWindow returns window's State, creating it on first access.
func (c *Coordinator) ForWindow(window string) *State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.states[window]
	if !ok {
		s = &State{}
		c.states[window] = s
	}
	return s
}
