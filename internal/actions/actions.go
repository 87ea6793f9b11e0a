// Package actions implements the action dispatcher (C8): it interprets W3C
// action sequences (key, pointer, none) against an executor.Executor,
// tracking modifier state across a session's input sources so a later
// sequence sees the keys a previous one left held down.
package actions

import (
	"context"
	"time"

	"github.com/nativewd/webdriverd/internal/executor"
)

// Type is one action's kind within an input source's action list.
type Type string

const (
	Pause         Type = "pause"
	KeyDown       Type = "keyDown"
	KeyUp         Type = "keyUp"
	PointerDown   Type = "pointerDown"
	PointerUp     Type = "pointerUp"
	PointerMove   Type = "pointerMove"
	PointerCancel Type = "pointerCancel"
)

// SourceType names the three W3C input source kinds.
type SourceType string

const (
	KeySource     SourceType = "key"
	PointerSource SourceType = "pointer"
	NoneSource    SourceType = "none"
)

// Action is one step of an input source's action list. Fields are a union
// over the three source kinds; only the ones relevant to Type are read.
type Action struct {
	Type     Type  `json:"type"`
	Duration int64 `json:"duration,omitempty"` // milliseconds, pause/pointerMove

	Value string `json:"value,omitempty"` // keyDown/keyUp: a single W3C key value

	X      int32 `json:"x,omitempty"` // pointerMove/pointerDown/pointerUp: viewport coordinates
	Y      int32 `json:"y,omitempty"`
	Button int   `json:"button,omitempty"` // pointerDown/pointerUp: 0=left, 1=middle, 2=right
}

// InputSource is one W3C action sequence: a source kind and its ordered
// list of actions.
type InputSource struct {
	ID      string     `json:"id"`
	Type    SourceType `json:"type"`
	Actions []Action   `json:"actions"`
}

// Dispatcher interprets action sequences against one window's executor,
// carrying modifier and held-key/button state across successive calls to
// Perform the way the W3C input state persists for the lifetime of a
// session. One Dispatcher should be kept per session.
type Dispatcher struct {
	Exec executor.Executor

	mods        executor.ModifierState
	heldKeys    map[rune]struct{}
	heldButtons map[int]struct{}
	lastX       int32
	lastY       int32
}

// NewDispatcher returns a dispatcher with empty input state.
func NewDispatcher(exec executor.Executor) *Dispatcher {
	return &Dispatcher{
		Exec:        exec,
		heldKeys:    make(map[rune]struct{}),
		heldButtons: make(map[int]struct{}),
	}
}

// Perform runs each input source's action list to completion, in the order
// the sources were given. Within one source, actions run strictly in order,
// sleeping for pause/move durations before moving to the next action.
func (d *Dispatcher) Perform(ctx context.Context, sources []InputSource) error {
	for _, src := range sources {
		for _, act := range src.Actions {
			if err := d.step(ctx, src.Type, act); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Dispatcher) step(ctx context.Context, srcType SourceType, act Action) error {
	switch act.Type {
	case Pause:
		return sleep(ctx, act.Duration)
	case KeyDown:
		return d.keyDown(ctx, act.Value)
	case KeyUp:
		return d.keyUp(ctx, act.Value)
	case PointerDown:
		d.heldButtons[act.Button] = struct{}{}
		return d.Exec.DispatchPointer(ctx, executor.PointerDown, act.X, act.Y, act.Button)
	case PointerUp:
		delete(d.heldButtons, act.Button)
		return d.Exec.DispatchPointer(ctx, executor.PointerUp, act.X, act.Y, act.Button)
	case PointerMove:
		d.lastX, d.lastY = act.X, act.Y
		if err := d.Exec.DispatchPointer(ctx, executor.PointerMove, act.X, act.Y, 0); err != nil {
			return err
		}
		return sleep(ctx, act.Duration)
	case PointerCancel:
		d.heldButtons = make(map[int]struct{})
		return nil
	default:
		return nil
	}
}

func (d *Dispatcher) keyDown(ctx context.Context, value string) error {
	r, ok := firstRune(value)
	mods := d.mods
	if ok && executor.ModifierCodepoint(r) {
		executor.ApplyModifier(&d.mods, r, true)
	}
	d.heldKeys[r] = struct{}{}
	return d.Exec.DispatchKey(ctx, value, true, mods)
}

func (d *Dispatcher) keyUp(ctx context.Context, value string) error {
	r, ok := firstRune(value)
	if ok && executor.ModifierCodepoint(r) {
		executor.ApplyModifier(&d.mods, r, false)
	}
	err := d.Exec.DispatchKey(ctx, value, false, d.mods)
	delete(d.heldKeys, r)
	return err
}

// Release synthesizes keyUp for every key and pointerUp for every button
// this dispatcher currently considers held, then clears its state. This
// backs the W3C "release actions" endpoint, which must undo whatever a
// session's prior `perform` calls left pressed.
func (d *Dispatcher) Release(ctx context.Context) error {
	for r := range d.heldKeys {
		if err := d.Exec.DispatchKey(ctx, string(r), false, d.mods); err != nil {
			return err
		}
		if executor.ModifierCodepoint(r) {
			executor.ApplyModifier(&d.mods, r, false)
		}
	}
	for b := range d.heldButtons {
		if err := d.Exec.DispatchPointer(ctx, executor.PointerUp, d.lastX, d.lastY, b); err != nil {
			return err
		}
	}
	d.heldKeys = make(map[rune]struct{})
	d.heldButtons = make(map[int]struct{})
	d.mods = executor.ModifierState{}
	return nil
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func sleep(ctx context.Context, ms int64) error {
	if ms <= 0 {
		return nil
	}
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
