package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/locator"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// fakeExecutor records DispatchKey/DispatchPointer calls; every other
// Executor method is an unused stub so fakeExecutor satisfies the
// interface.
type fakeExecutor struct {
	keys     []keyCall
	pointers []pointerCall
}

type keyCall struct {
	key    string
	isDown bool
	mods   executor.ModifierState
}

type pointerCall struct {
	ev     executor.PointerEventType
	x, y   int32
	button int
}

func (f *fakeExecutor) DispatchKey(ctx context.Context, key string, isDown bool, mods executor.ModifierState) error {
	f.keys = append(f.keys, keyCall{key, isDown, mods})
	return nil
}

func (f *fakeExecutor) DispatchPointer(ctx context.Context, ev executor.PointerEventType, x, y int32, button int) error {
	f.pointers = append(f.pointers, pointerCall{ev, x, y, button})
	return nil
}

func (f *fakeExecutor) DispatchWheel(ctx context.Context, deltaX, deltaY float64) error { return nil }

func (f *fakeExecutor) Navigate(ctx context.Context, url string) error       { return nil }
func (f *fakeExecutor) GetURL(ctx context.Context) (string, error)          { return "", nil }
func (f *fakeExecutor) GetTitle(ctx context.Context) (string, error)        { return "", nil }
func (f *fakeExecutor) Back(ctx context.Context) error                      { return nil }
func (f *fakeExecutor) Forward(ctx context.Context) error                   { return nil }
func (f *fakeExecutor) Refresh(ctx context.Context) error                   { return nil }
func (f *fakeExecutor) GetSource(ctx context.Context) (string, error)       { return "", nil }

func (f *fakeExecutor) FindElement(ctx context.Context, strategy locator.Strategy, value string, from executor.ElementScope) (webdriver.ElementRef, error) {
	return webdriver.ElementRef{}, nil
}
func (f *fakeExecutor) FindElements(ctx context.Context, strategy locator.Strategy, value string, from executor.ElementScope) ([]webdriver.ElementRef, error) {
	return nil, nil
}

func (f *fakeExecutor) ElementText(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", nil
}
func (f *fakeExecutor) TagName(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", nil
}
func (f *fakeExecutor) Attribute(ctx context.Context, ref webdriver.ElementRef, name string) (*string, error) {
	return nil, nil
}
func (f *fakeExecutor) Property(ctx context.Context, ref webdriver.ElementRef, name string) (interface{}, error) {
	return nil, nil
}
func (f *fakeExecutor) CSSValue(ctx context.Context, ref webdriver.ElementRef, prop string) (string, error) {
	return "", nil
}
func (f *fakeExecutor) Rect(ctx context.Context, ref webdriver.ElementRef) (executor.ElementRect, error) {
	return executor.ElementRect{}, nil
}
func (f *fakeExecutor) Displayed(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	return false, nil
}
func (f *fakeExecutor) Enabled(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	return false, nil
}
func (f *fakeExecutor) Selected(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	return false, nil
}
func (f *fakeExecutor) ComputedRole(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", nil
}
func (f *fakeExecutor) ComputedLabel(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", nil
}

func (f *fakeExecutor) Click(ctx context.Context, ref webdriver.ElementRef) error { return nil }
func (f *fakeExecutor) Clear(ctx context.Context, ref webdriver.ElementRef) error { return nil }
func (f *fakeExecutor) SendKeys(ctx context.Context, ref webdriver.ElementRef, text string) error {
	return nil
}

func (f *fakeExecutor) ActiveElement(ctx context.Context) (webdriver.ElementRef, error) {
	return webdriver.ElementRef{}, nil
}

func (f *fakeExecutor) ShadowRoot(ctx context.Context, ref webdriver.ElementRef) (webdriver.ElementRef, error) {
	return webdriver.ElementRef{}, nil
}
func (f *fakeExecutor) FindElementInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) (webdriver.ElementRef, error) {
	return webdriver.ElementRef{}, nil
}
func (f *fakeExecutor) FindElementsInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) ([]webdriver.ElementRef, error) {
	return nil, nil
}

func (f *fakeExecutor) ExecuteSync(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	return nil, nil
}
func (f *fakeExecutor) ExecuteAsync(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	return nil, nil
}

func (f *fakeExecutor) Screenshot(ctx context.Context) (string, error) { return "", nil }
func (f *fakeExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", nil
}

func (f *fakeExecutor) GetWindowRect(ctx context.Context) (executor.WindowRect, error) {
	return executor.WindowRect{}, nil
}
func (f *fakeExecutor) SetWindowRect(ctx context.Context, rect executor.WindowRect) (executor.WindowRect, error) {
	return executor.WindowRect{}, nil
}
func (f *fakeExecutor) Maximize(ctx context.Context) (executor.WindowRect, error) {
	return executor.WindowRect{}, nil
}
func (f *fakeExecutor) Minimize(ctx context.Context) (executor.WindowRect, error) {
	return executor.WindowRect{}, nil
}
func (f *fakeExecutor) Fullscreen(ctx context.Context) (executor.WindowRect, error) {
	return executor.WindowRect{}, nil
}

func (f *fakeExecutor) GetCookies(ctx context.Context) ([]executor.Cookie, error) { return nil, nil }
func (f *fakeExecutor) GetCookie(ctx context.Context, name string) (executor.Cookie, error) {
	return executor.Cookie{}, nil
}
func (f *fakeExecutor) AddCookie(ctx context.Context, c executor.Cookie) error    { return nil }
func (f *fakeExecutor) DeleteCookie(ctx context.Context, name string) error      { return nil }
func (f *fakeExecutor) DeleteAllCookies(ctx context.Context) error               { return nil }

func (f *fakeExecutor) Print(ctx context.Context, opts executor.PrintOptions) (string, error) {
	return "", nil
}

var _ executor.Executor = (*fakeExecutor)(nil)

func TestPerformTracksModifierAcrossKeyActions(t *testing.T) {
	fe := &fakeExecutor{}
	d := NewDispatcher(fe)

	const ctrlKey = "\uE009"

	err := d.Perform(context.Background(), []InputSource{
		{
			ID:   "keyboard",
			Type: KeySource,
			Actions: []Action{
				{Type: KeyDown, Value: ctrlKey},
				{Type: KeyDown, Value: "a"},
				{Type: KeyUp, Value: "a"},
				{Type: KeyUp, Value: ctrlKey},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, fe.keys, 4)
	assert.False(t, fe.keys[0].mods.Ctrl, "modifier state reflects pre-keydown snapshot for the key itself")
	assert.True(t, fe.keys[1].mods.Ctrl, "control should be held for the following 'a' down")
	assert.True(t, fe.keys[2].mods.Ctrl)
	assert.False(t, fe.keys[3].mods.Ctrl)
}

func TestPerformPointerSequence(t *testing.T) {
	fe := &fakeExecutor{}
	d := NewDispatcher(fe)

	err := d.Perform(context.Background(), []InputSource{
		{
			ID:   "mouse",
			Type: PointerSource,
			Actions: []Action{
				{Type: PointerMove, X: 10, Y: 20},
				{Type: PointerDown, X: 10, Y: 20, Button: 0},
				{Type: PointerUp, X: 10, Y: 20, Button: 0},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, fe.pointers, 3)
	assert.Equal(t, executor.PointerMove, fe.pointers[0].ev)
	assert.Equal(t, executor.PointerDown, fe.pointers[1].ev)
	assert.Equal(t, executor.PointerUp, fe.pointers[2].ev)
}

func TestReleaseUndoesHeldKeysAndButtons(t *testing.T) {
	fe := &fakeExecutor{}
	d := NewDispatcher(fe)

	const shiftKey = "\uE008"

	require.NoError(t, d.Perform(context.Background(), []InputSource{
		{Type: KeySource, Actions: []Action{{Type: KeyDown, Value: shiftKey}}},
		{Type: PointerSource, Actions: []Action{{Type: PointerDown, X: 1, Y: 1, Button: 0}}},
	}))

	require.NoError(t, d.Release(context.Background()))

	last := fe.keys[len(fe.keys)-1]
	assert.Equal(t, shiftKey, last.key)
	assert.False(t, last.isDown)

	lastPtr := fe.pointers[len(fe.pointers)-1]
	assert.Equal(t, executor.PointerUp, lastPtr.ev)

	assert.Empty(t, d.heldKeys)
	assert.Empty(t, d.heldButtons)
}
