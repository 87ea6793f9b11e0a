// Package bridge evaluates script strings against a content view and
// correlates asynchronous in-page callbacks with the handler awaiting them.
//
// There is no native WebView in this environment, so the bridge's Evaluator
// is backed by a goja.Runtime standing in for the content view; the wire
// contract (evaluate a script, get back a JSON value, time out after
// timeouts.script_ms) is identical to what a native backend would expose.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/nativewd/webdriverd/internal/tracing"
	"github.com/nativewd/webdriverd/internal/wderr"
)

// HandlerName is the name reserved for a native async-completion message
// handler. Nothing in this module registers it: the async wrapper calls the
// __wd_async_complete global that NewBaseExecutor binds instead.
const HandlerName = "webdriver_async"

// Evaluator is the single primitive every platform executor is built on.
type Evaluator interface {
	// Evaluate runs script in the content view and returns its JSON-encoded
	// result, or a *wderr.Error (javascript error / script timeout, or stale
	// element reference when the script throws that exact string).
	Evaluate(ctx context.Context, script string, timeout time.Duration) (json.RawMessage, error)
}

// GojaBridge evaluates scripts against an embedded ECMAScript runtime. It is
// the "desktop script-only" backend's bridge and the one used by tests that
// cannot drive a native WebView.
type GojaBridge struct {
	log logrus.FieldLogger

	mu sync.Mutex // goja.Runtime is not safe for concurrent use
	vm *goja.Runtime
}

// NewGojaBridge constructs a bridge around a fresh runtime.
func NewGojaBridge(log logrus.FieldLogger) *GojaBridge {
	return &GojaBridge{log: log, vm: goja.New()}
}

// Evaluate runs script, honouring timeout. goja itself is synchronous and
// single-threaded, so the timeout is enforced by running the call on a
// worker goroutine and racing it against a timer — mirroring the native
// bridge's "abandon the pending evaluation on expiry" contract even though
// nothing here can truly preempt a runaway script.
func (b *GojaBridge) Evaluate(ctx context.Context, script string, timeout time.Duration) (json.RawMessage, error) {
	ctx, span := tracing.Start(ctx, "script.evaluate")
	defer span.End()

	b.mu.Lock()
	defer b.mu.Unlock()

	type result struct {
		val goja.Value
		err error
	}
	done := make(chan result, 1)

	go func() {
		v, err := b.vm.RunString(script)
		done <- result{val: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			var jsErr *goja.Exception
			if errors.As(r.err, &jsErr) {
				if v := jsErr.Value(); v != nil && v.String() == "stale element reference" {
					return nil, wderr.StaleElementErr()
				}
				return nil, wderr.New(wderr.JavascriptError, jsErr.Error())
			}
			return nil, wderr.New(wderr.JavascriptError, r.err.Error())
		}
		return marshalValue(r.val)
	case <-time.After(timeout):
		b.vm.Interrupt(wderr.New(wderr.ScriptTimeout, "script did not complete within the configured timeout"))
		<-done // wait for the interrupted goroutine to exit before releasing the runtime
		return nil, wderr.New(wderr.ScriptTimeout, "script did not complete within the configured timeout")
	case <-ctx.Done():
		b.vm.Interrupt(ctx.Err())
		<-done
		return nil, wderr.New(wderr.UnknownError, ctx.Err().Error())
	}
}

// Set binds a host function or value into the runtime's global scope, used
// to wire the __wd_async_complete hook the async-script wrapper calls back
// into, standing in for the native postMessage handler a real WebView would
// expose.
func (b *GojaBridge) Set(name string, value interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vm.Set(name, value)
}

func marshalValue(v goja.Value) (json.RawMessage, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return json.RawMessage("null"), nil
	}
	exported := v.Export()
	data, err := json.Marshal(exported)
	if err != nil {
		return nil, wderr.New(wderr.UnknownError, err.Error())
	}
	return data, nil
}

// EnvelopeResult unwraps the conventional {success, value|error} /
// {__wd_success, __wd_value|__wd_error} envelopes a wrapper script emits on
// platforms without a native result channel, using gjson to avoid a full
// map[string]interface{} unmarshal on the hot path.
func EnvelopeResult(raw json.RawMessage) (json.RawMessage, error) {
	text := string(raw)
	if !gjson.Valid(text) {
		return nil, wderr.New(wderr.UnknownError, "bridge returned invalid JSON")
	}
	parsed := gjson.Parse(text)

	successKey, valueKey, errorKey := "success", "value", "error"
	if !parsed.Get(successKey).Exists() && parsed.Get("__wd_success").Exists() {
		successKey, valueKey, errorKey = "__wd_success", "__wd_value", "__wd_error"
	}

	if !parsed.Get(successKey).Bool() {
		msg := parsed.Get(errorKey).String()
		return nil, wderr.New(wderr.JavascriptError, msg)
	}
	return json.RawMessage(parsed.Get(valueKey).Raw), nil
}
