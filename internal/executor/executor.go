package executor

import (
	"context"

	"github.com/nativewd/webdriverd/internal/locator"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// Executor is the full operation set the HTTP handlers require of a
// content-view backend. One concrete type per platform satisfies it;
// BaseExecutor supplies script-based defaults for everything a backend does
// not need to override for native capability.
type Executor interface {
	// Navigation
	Navigate(ctx context.Context, url string) error
	GetURL(ctx context.Context) (string, error)
	GetTitle(ctx context.Context) (string, error)
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	Refresh(ctx context.Context) error

	// Document
	GetSource(ctx context.Context) (string, error)

	// Element find
	FindElement(ctx context.Context, strategy locator.Strategy, value string, from ElementScope) (webdriver.ElementRef, error)
	FindElements(ctx context.Context, strategy locator.Strategy, value string, from ElementScope) ([]webdriver.ElementRef, error)

	// Element inspection
	ElementText(ctx context.Context, ref webdriver.ElementRef) (string, error)
	TagName(ctx context.Context, ref webdriver.ElementRef) (string, error)
	Attribute(ctx context.Context, ref webdriver.ElementRef, name string) (*string, error)
	Property(ctx context.Context, ref webdriver.ElementRef, name string) (interface{}, error)
	CSSValue(ctx context.Context, ref webdriver.ElementRef, prop string) (string, error)
	Rect(ctx context.Context, ref webdriver.ElementRef) (ElementRect, error)
	Displayed(ctx context.Context, ref webdriver.ElementRef) (bool, error)
	Enabled(ctx context.Context, ref webdriver.ElementRef) (bool, error)
	Selected(ctx context.Context, ref webdriver.ElementRef) (bool, error)
	ComputedRole(ctx context.Context, ref webdriver.ElementRef) (string, error)
	ComputedLabel(ctx context.Context, ref webdriver.ElementRef) (string, error)

	// Element mutation
	Click(ctx context.Context, ref webdriver.ElementRef) error
	Clear(ctx context.Context, ref webdriver.ElementRef) error
	SendKeys(ctx context.Context, ref webdriver.ElementRef, text string) error

	// Active element
	ActiveElement(ctx context.Context) (webdriver.ElementRef, error)

	// Shadow DOM
	ShadowRoot(ctx context.Context, ref webdriver.ElementRef) (webdriver.ElementRef, error)
	FindElementInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) (webdriver.ElementRef, error)
	FindElementsInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) ([]webdriver.ElementRef, error)

	// Scripts
	ExecuteSync(ctx context.Context, script string, args []interface{}) (interface{}, error)
	ExecuteAsync(ctx context.Context, script string, args []interface{}) (interface{}, error)

	// Screenshots
	Screenshot(ctx context.Context) (string, error)
	ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error)

	// Pointer actions
	DispatchPointer(ctx context.Context, ev PointerEventType, x, y int32, button int) error
	DispatchWheel(ctx context.Context, deltaX, deltaY float64) error

	// Keyboard actions
	DispatchKey(ctx context.Context, key string, isDown bool, mods ModifierState) error

	// Window
	GetWindowRect(ctx context.Context) (WindowRect, error)
	SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error)
	Maximize(ctx context.Context) (WindowRect, error)
	Minimize(ctx context.Context) (WindowRect, error)
	Fullscreen(ctx context.Context) (WindowRect, error)

	// Cookies
	GetCookies(ctx context.Context) ([]Cookie, error)
	GetCookie(ctx context.Context, name string) (Cookie, error)
	AddCookie(ctx context.Context, c Cookie) error
	DeleteCookie(ctx context.Context, name string) error
	DeleteAllCookies(ctx context.Context) error

	// Print
	Print(ctx context.Context, opts PrintOptions) (string, error)
}

// ElementScope names what an element-find operation is rooted at: the
// document, a parent element, or a shadow root.
type ElementScope struct {
	Context locator.Context
	Parent  *webdriver.ElementRef // set when Context == ContextParent
	Shadow  *webdriver.ElementRef // set when Context == ContextShadow
}

// DocumentScope finds relative to the document root.
func DocumentScope() ElementScope {
	return ElementScope{Context: locator.ContextDocument}
}

// FromElementScope finds relative to parent.
func FromElementScope(parent webdriver.ElementRef) ElementScope {
	return ElementScope{Context: locator.ContextParent, Parent: &parent}
}

// FromShadowScope finds relative to a shadow root.
func FromShadowScope(shadow webdriver.ElementRef) ElementScope {
	return ElementScope{Context: locator.ContextShadow, Shadow: &shadow}
}
