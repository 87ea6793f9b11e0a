package bridge

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// AsyncResult is what a completion callback carries: a JSON value, or an
// error message. If both are present, the error wins.
type AsyncResult struct {
	Value json.RawMessage
	Err   string
}

// AsyncRegistry is the single correlation-ID-keyed registry backing
// execute/async, merging what the original source kept as two near-
// duplicate modules (a generic one and one nested under the platform
// package) into one: a given ID is pending, completed once, or cancelled
// once, and never twice.
type AsyncRegistry struct {
	mu               sync.Mutex
	pending          map[string]chan AsyncResult
	registeredLabels map[string]struct{}
}

// NewAsyncRegistry returns an empty registry.
func NewAsyncRegistry() *AsyncRegistry {
	return &AsyncRegistry{
		pending:          make(map[string]chan AsyncResult),
		registeredLabels: make(map[string]struct{}),
	}
}

// Register allocates a new correlation ID and its one-shot receiver.
func (r *AsyncRegistry) Register() (id string, recv <-chan AsyncResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = uuid.NewString()
	ch := make(chan AsyncResult, 1)
	r.pending[id] = ch
	return id, ch
}

// Complete delivers result to id's waiter, if still pending. A completion
// for an unknown or already-resolved ID is a silent no-op, matching the
// "completion after cancellation is a no-op" invariant.
func (r *AsyncRegistry) Complete(id string, value json.RawMessage, errMsg string) {
	r.mu.Lock()
	ch, ok := r.pending[id]
	if ok {
		delete(r.pending, id)
	}
	r.mu.Unlock()

	if !ok {
		return
	}
	ch <- AsyncResult{Value: value, Err: errMsg}
}

// Cancel removes id's pending entry without delivering a result, used when
// the script timeout fires before the page calls back.
func (r *AsyncRegistry) Cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
}

// MarkHandlerRegistered records that window has its native message receiver
// wired up, returning true only the first time for a given label (insert
// returns was-new).
func (r *AsyncRegistry) MarkHandlerRegistered(window string) (wasNew bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.registeredLabels[window]; ok {
		return false
	}
	r.registeredLabels[window] = struct{}{}
	return true
}

// Resolve implements the resolve-callback's error-wins rule: a non-empty
// error always takes precedence over a present result.
func Resolve(value json.RawMessage, errMsg string) (json.RawMessage, error) {
	if errMsg != "" {
		return nil, wderr.New(wderr.JavascriptError, errMsg)
	}
	if len(value) == 0 {
		return json.RawMessage("null"), nil
	}
	return value, nil
}
