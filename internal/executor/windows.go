package executor

import (
	"context"

	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// WindowsExecutor targets WebView2. Window management is native; there is
// no alert interception hook, so the alert endpoints work against the
// shared alert coordinator. Screenshot is an open question the source left
// unwired (CapturePreview never hooked up) — this implementation resolves
// it, per DESIGN.md, by returning unsupported operation rather than an
// empty success payload. Print is unimplemented on this platform, matching
// the source exactly.
type WindowsExecutor struct {
	BaseExecutor
	NativeHooks NativeWindowControl
}

func (e *WindowsExecutor) Screenshot(ctx context.Context) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "native screen capture is not wired on this backend")
}

func (e *WindowsExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "native screen capture is not wired on this backend")
}

func (e *WindowsExecutor) GetWindowRect(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return e.BaseExecutor.GetWindowRect(ctx)
	}
	return e.NativeHooks.GetRect()
}

func (e *WindowsExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.SetRect(rect); err != nil {
		return WindowRect{}, err
	}
	return e.NativeHooks.GetRect()
}

func (e *WindowsExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Maximize(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *WindowsExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Minimize(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *WindowsExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Fullscreen(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *WindowsExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "PDF print is not implemented on this backend")
}
