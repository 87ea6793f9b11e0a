package executor

import (
	"context"
	"time"

	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// MacOSExecutor overrides the native-capable operations: WKWebView exposes
// a snapshot API for screenshots, a PDF print path, and desktop window
// management via AppKit. It has no alert interception hook; the alert
// endpoints work against the shared alert coordinator. Everything else
// falls through to BaseExecutor's script-based defaults.
type MacOSExecutor struct {
	BaseExecutor
	NativeHooks NativeWindowControl
}

// NativeWindowControl is the narrow contract this backend needs from the
// host window object; concrete platform glue (AppKit/Win32/GTK calls) is
// out of scope and supplied by the embedding application.
type NativeWindowControl interface {
	GetRect() (WindowRect, error)
	SetRect(WindowRect) error
	Maximize() error
	Minimize() error
	Fullscreen() error
	Screenshot() (string, error)
	ElementScreenshot(rect ElementRect) (string, error)
	PrintPDF(PrintOptions) (string, error)
}

func settle(ctx context.Context) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
	}
}

func (e *MacOSExecutor) Screenshot(ctx context.Context) (string, error) {
	if e.NativeHooks == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	return e.NativeHooks.Screenshot()
}

func (e *MacOSExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	if e.NativeHooks == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	rect, err := e.Rect(ctx, ref)
	if err != nil {
		return "", err
	}
	return e.NativeHooks.ElementScreenshot(rect)
}

func (e *MacOSExecutor) GetWindowRect(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return e.BaseExecutor.GetWindowRect(ctx)
	}
	return e.NativeHooks.GetRect()
}

func (e *MacOSExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.SetRect(rect); err != nil {
		return WindowRect{}, err
	}
	return e.NativeHooks.GetRect()
}

func (e *MacOSExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Maximize(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *MacOSExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Minimize(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *MacOSExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	if e.NativeHooks == nil {
		return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	if err := e.NativeHooks.Fullscreen(); err != nil {
		return WindowRect{}, err
	}
	settle(ctx)
	return e.NativeHooks.GetRect()
}

func (e *MacOSExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	if e.NativeHooks == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no native window control attached")
	}
	return e.NativeHooks.PrintPDF(opts)
}
