package hostwindow

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"sync"
	"time"

	"github.com/nativewd/webdriverd/internal/alert"
	"github.com/nativewd/webdriverd/internal/executor"
)

// SimulatedWindowControl stands in for the native AppKit/Win32/GTK window
// handle a real embedding host would give the platform executor: it tracks
// the window's rect and state in memory and renders a software snapshot in
// place of a native surface capture, since nothing here drives a real GPU
// surface to snapshot.
type SimulatedWindowControl struct {
	mu   sync.Mutex
	rect executor.WindowRect
}

// NewSimulatedWindowControl returns a control handle at a default desktop
// window size.
func NewSimulatedWindowControl() *SimulatedWindowControl {
	return &SimulatedWindowControl{rect: executor.WindowRect{X: 0, Y: 0, Width: 1024, Height: 768}}
}

func (c *SimulatedWindowControl) GetRect() (executor.WindowRect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rect, nil
}

func (c *SimulatedWindowControl) SetRect(rect executor.WindowRect) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rect = rect
	return nil
}

func (c *SimulatedWindowControl) Maximize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rect = executor.WindowRect{X: 0, Y: 0, Width: 1920, Height: 1080}
	return nil
}

func (c *SimulatedWindowControl) Minimize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rect.Width, c.rect.Height = 0, 0
	return nil
}

func (c *SimulatedWindowControl) Fullscreen() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rect = executor.WindowRect{X: 0, Y: 0, Width: 1920, Height: 1080}
	return nil
}

func (c *SimulatedWindowControl) Screenshot() (string, error) {
	c.mu.Lock()
	rect := c.rect
	c.mu.Unlock()
	return renderPlaceholderPNG(int(rect.Width), int(rect.Height))
}

func (c *SimulatedWindowControl) ElementScreenshot(rect executor.ElementRect) (string, error) {
	return renderPlaceholderPNG(int(rect.Width), int(rect.Height))
}

func (c *SimulatedWindowControl) PrintPDF(executor.PrintOptions) (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(minimalOnePagePDF)), nil
}

// renderPlaceholderPNG encodes a blank image sized to the capture rect: a
// software stand-in for a native snapshot API, which this environment has
// no GPU surface to call into.
func renderPlaceholderPNG(width, height int) (string, error) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// minimalOnePagePDF is a valid, empty single-page US-letter PDF document,
// the simulated print backend's stand-in for native PDF rendering.
const minimalOnePagePDF = "%PDF-1.4\n" +
	"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"trailer<</Size 4/Root 1 0 R>>\n" +
	"%%EOF"

// SimulatedMobileBridge stands in for Tauri's Android/iOS mobile plugin
// bridge: script evaluation is forwarded to the same goja-backed runtime
// every desktop backend uses (there is no separate native mobile runtime
// here to call into), while the alert hooks are backed by the window's own
// alert state and touch dispatch runs as a script in that same runtime.
type SimulatedMobileBridge struct {
	window *Window
	alerts *alert.State
}

// NewSimulatedMobileBridge binds a mobile bridge stand-in to window's
// script runtime and alerts's alert slots.
func NewSimulatedMobileBridge(window *Window, alerts *alert.State) *SimulatedMobileBridge {
	return &SimulatedMobileBridge{window: window, alerts: alerts}
}

func (b *SimulatedMobileBridge) EvaluateJs(args executor.EvaluateJsArgs) (executor.JsResult, error) {
	timeout := time.Duration(args.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	raw, err := b.window.Bridge.Evaluate(context.Background(), args.Script, timeout)
	if err != nil {
		return executor.JsResult{Success: false, Error: err.Error()}, nil
	}
	var value interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &value); err != nil {
			return executor.JsResult{Success: false, Error: err.Error()}, nil
		}
	}
	return executor.JsResult{Success: true, Value: value}, nil
}

func (b *SimulatedMobileBridge) Screenshot(args executor.ScreenshotArgs) (string, error) {
	if args.ClipToElement {
		return renderPlaceholderPNG(int(args.Rect.Width), int(args.Rect.Height))
	}
	return renderPlaceholderPNG(390, 844)
}

func (b *SimulatedMobileBridge) PendingAlert() (executor.AlertResult, error) {
	if !b.alerts.HasPending() {
		return executor.AlertResult{}, nil
	}
	message, err := b.alerts.Text()
	if err != nil {
		return executor.AlertResult{}, err
	}
	return executor.AlertResult{Present: true, Message: message}, nil
}

func (b *SimulatedMobileBridge) SendAlertText(args executor.SendAlertTextArgs) error {
	return b.alerts.SetPromptInput(args.Text)
}

func (b *SimulatedMobileBridge) DispatchTouch(args executor.TouchArgs) error {
	var eventName string
	switch args.Type {
	case executor.PointerDown:
		eventName = "touchstart"
	case executor.PointerUp:
		eventName = "touchend"
	default:
		eventName = "touchmove"
	}
	script := fmt.Sprintf(`
		var target = document.elementFromPoint(%d, %d) || document.body;
		var touch = { identifier: 1, target: target, clientX: %d, clientY: %d };
		target.dispatchEvent(new TouchEvent('%s', { bubbles: true, cancelable: true, touches: [touch], targetTouches: [touch], changedTouches: [touch] }));
		null;
	`, args.X, args.Y, args.X, args.Y, eventName)
	_, err := b.window.Bridge.Evaluate(context.Background(), script, 5*time.Second)
	return err
}
