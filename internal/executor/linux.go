package executor

import (
	"context"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// LinuxExecutor targets WebKitGTK. It has no native dialog interception
// hook; the alert endpoints work against the shared alert coordinator.
// Screenshot and element screenshot fall through to BaseExecutor, which
// returns unsupported operation; print and native window sizing are
// unsupported.
type LinuxExecutor struct {
	BaseExecutor
}

func (e *LinuxExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "PDF print is not implemented on this backend")
}

func (e *LinuxExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "native window sizing is not wired on this backend")
}

func (e *LinuxExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "native window sizing is not wired on this backend")
}

func (e *LinuxExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "native window sizing is not wired on this backend")
}

func (e *LinuxExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "native window sizing is not wired on this backend")
}
