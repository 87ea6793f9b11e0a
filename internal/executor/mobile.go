package executor

import (
	"context"

	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// The mobile-language side of the bridge is out of scope; these are the
// message-schema types the Go-side mobile executors exchange with it,
// reconstructed from how the original's android.rs/ios.rs consume them
// (their concrete field definitions were not part of the retrieved source).

// EvaluateJsArgs is the payload sent to the mobile bridge to run a script.
type EvaluateJsArgs struct {
	Script    string        `json:"script"`
	Args      []interface{} `json:"args,omitempty"`
	TimeoutMs int64         `json:"timeoutMs"`
}

// JsResult is the mobile bridge's reply to an EvaluateJsArgs request.
type JsResult struct {
	Success bool            `json:"success"`
	Value   interface{}     `json:"value,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ScreenshotArgs requests a snapshot of the current mobile WebView.
type ScreenshotArgs struct {
	ClipToElement bool        `json:"clipToElement,omitempty"`
	Rect          ElementRect `json:"rect,omitempty"`
}

// AlertResult is the mobile bridge's reply describing a pending native
// dialog, if any.
type AlertResult struct {
	Present     bool   `json:"present"`
	Message     string `json:"message,omitempty"`
	DefaultText string `json:"defaultText,omitempty"`
}

// SendAlertTextArgs sets the prompt input text for a pending mobile dialog.
type SendAlertTextArgs struct {
	Text string `json:"text"`
}

// TouchArgs describes a single touch/pointer event to inject natively.
type TouchArgs struct {
	Type PointerEventType `json:"type"`
	X    int32            `json:"x"`
	Y    int32            `json:"y"`
}

// MobileBridge is the narrow contract a Go-side mobile executor needs from
// the host's mobile plugin bridge (the actual message-channel glue to
// Kotlin/Swift is out of scope; specified only by this schema).
type MobileBridge interface {
	EvaluateJs(EvaluateJsArgs) (JsResult, error)
	Screenshot(ScreenshotArgs) (string, error)
	PendingAlert() (AlertResult, error)
	SendAlertText(SendAlertTextArgs) error
	DispatchTouch(TouchArgs) error
}

// AndroidExecutor drives a WebView through Tauri's Android mobile plugin
// bridge. Mobile platforms don't support window rect manipulation or PDF
// print.
type AndroidExecutor struct {
	BaseExecutor
	Mobile MobileBridge
}

func (e *AndroidExecutor) Screenshot(ctx context.Context) (string, error) {
	if e.Mobile == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no mobile bridge attached")
	}
	return e.Mobile.Screenshot(ScreenshotArgs{})
}

func (e *AndroidExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	if e.Mobile == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no mobile bridge attached")
	}
	rect, err := e.Rect(ctx, ref)
	if err != nil {
		return "", err
	}
	return e.Mobile.Screenshot(ScreenshotArgs{ClipToElement: true, Rect: rect})
}

func (e *AndroidExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *AndroidExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *AndroidExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *AndroidExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *AndroidExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "PDF print is not implemented on this backend")
}

// IOSExecutor mirrors AndroidExecutor's mobile-platform constraints via
// Tauri's iOS mobile plugin bridge.
type IOSExecutor struct {
	BaseExecutor
	Mobile MobileBridge
}

func (e *IOSExecutor) Screenshot(ctx context.Context) (string, error) {
	if e.Mobile == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no mobile bridge attached")
	}
	return e.Mobile.Screenshot(ScreenshotArgs{})
}

func (e *IOSExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	if e.Mobile == nil {
		return "", wderr.New(wderr.UnsupportedOperation, "no mobile bridge attached")
	}
	rect, err := e.Rect(ctx, ref)
	if err != nil {
		return "", err
	}
	return e.Mobile.Screenshot(ScreenshotArgs{ClipToElement: true, Rect: rect})
}

func (e *IOSExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *IOSExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *IOSExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *IOSExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "mobile platforms do not support window rect manipulation")
}

func (e *IOSExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "PDF print is not implemented on this backend")
}
