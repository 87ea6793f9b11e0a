package executor

import (
	"encoding/json"

	"github.com/dop251/goja"
	"github.com/sirupsen/logrus"

	"github.com/nativewd/webdriverd/internal/bridge"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

func isUndefinedOrNull(v goja.Value) bool {
	return goja.IsUndefined(v) || goja.IsNull(v)
}

// ScriptOnlyExecutor is the environment-appropriate stand-in for the
// distilled specification's "one desktop script-only" backend: it has no
// native hooks at all and runs entirely through a goja-backed bridge.
// No dialog interception hook feeds the alert coordinator, and print
// returns unsupported operation; everything else is BaseExecutor's
// script-based default.
type ScriptOnlyExecutor struct {
	BaseExecutor
	bridge *bridge.GojaBridge
}

// NewScriptOnlyExecutor wires a fresh goja-backed bridge (including the
// __wd_async_complete host hook the async-script wrapper invokes) for the
// given window/timeouts/frame-stack/element-table tuple.
func NewScriptOnlyExecutor(
	log logrus.FieldLogger,
	window string,
	timeouts webdriver.Timeouts,
	frames []webdriver.FrameId,
	elements *webdriver.ElementStore,
	async *bridge.AsyncRegistry,
) (*ScriptOnlyExecutor, error) {
	return NewScriptOnlyExecutorWithBridge(log, bridge.NewGojaBridge(log), window, timeouts, frames, elements, async)
}

// NewScriptOnlyExecutorWithBridge wires an executor around an already-open
// window's bridge, so in-page element variables and global state persist
// across the many short-lived executors one HTTP session constructs over
// its lifetime (one per request, since timeouts and the frame stack change
// between calls).
func NewScriptOnlyExecutorWithBridge(
	log logrus.FieldLogger,
	gb *bridge.GojaBridge,
	window string,
	timeouts webdriver.Timeouts,
	frames []webdriver.FrameId,
	elements *webdriver.ElementStore,
	async *bridge.AsyncRegistry,
) (*ScriptOnlyExecutor, error) {
	base, err := NewBaseExecutor(log, gb, window, timeouts, frames, elements, async)
	if err != nil {
		return nil, err
	}
	return &ScriptOnlyExecutor{BaseExecutor: base, bridge: gb}, nil
}

// NewBaseExecutor wires a BaseExecutor around an already-open window's
// bridge, every platform backend's shared construction path: it registers
// the __wd_async_complete host hook once per window label (idempotent via
// AsyncRegistry.MarkHandlerRegistered) and fills in the
// window/timeouts/frame-stack/element-table tuple the backend was built
// for.
func NewBaseExecutor(
	log logrus.FieldLogger,
	gb *bridge.GojaBridge,
	window string,
	timeouts webdriver.Timeouts,
	frames []webdriver.FrameId,
	elements *webdriver.ElementStore,
	async *bridge.AsyncRegistry,
) (BaseExecutor, error) {
	if err := wireAsyncCompleter(gb, async, window); err != nil {
		return BaseExecutor{}, err
	}
	return BaseExecutor{
		Bridge:   gb,
		Async:    async,
		Log:      log,
		Window:   window,
		Timeouts: timeouts,
		Frames:   frames,
		Elements: elements,
	}, nil
}

// wireAsyncCompleter registers window's __wd_async_complete host hook on gb
// the first time it's seen for that label; later calls for the same window
// (one per HTTP request, since every request builds a fresh executor) are a
// no-op.
func wireAsyncCompleter(gb *bridge.GojaBridge, async *bridge.AsyncRegistry, window string) error {
	if !async.MarkHandlerRegistered(window) {
		return nil
	}
	completer := func(id string, result, errMsg goja.Value) {
		var raw json.RawMessage
		var errStr string
		if result != nil && !isUndefinedOrNull(result) {
			if data, err := json.Marshal(result.Export()); err == nil {
				raw = data
			}
		}
		if errMsg != nil && !isUndefinedOrNull(errMsg) {
			errStr = errMsg.String()
		}
		async.Complete(id, raw, errStr)
	}
	return gb.Set("__wd_async_complete", completer)
}
