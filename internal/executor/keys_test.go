package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyHarness = `
var __log = [];
window.document.activeElement = window.document._btn;
window.document._btn.value = '';
window.document._btn.selectionStart = 0;
window.document._btn.selectionEnd = 0;
window.document._btn.dispatchEvent = function(ev){ __log.push(ev.type + ':' + (ev.key||'') + ':' + (ev.inputType||'')); return true; };
window.HTMLInputElement = { prototype: {} };
Object.defineProperty(window.HTMLInputElement.prototype, 'value', {
	set: function(v){ window.document._btn.value = v; },
	get: function(){ return window.document._btn.value; }
});
window.document._btn.tagName = 'INPUT';
function KeyboardEvent(type, init){ this.type = type; this.key = init.key; this.inputType = undefined; }
function InputEvent(type, init){ this.type = type; this.key = undefined; this.inputType = init.inputType; }
`

func newKeyTestExecutor(t *testing.T) *ScriptOnlyExecutor {
	e := newTestExecutor(t)
	_, err := e.bridge.Evaluate(context.Background(), keyHarness+"; null;", e.scriptTimeout())
	require.NoError(t, err)
	return e
}

func TestDispatchKeyAppendsPrintableCharacter(t *testing.T) {
	e := newKeyTestExecutor(t)
	require.NoError(t, e.DispatchKey(context.Background(), "a", true, ModifierState{}))

	var val string
	require.NoError(t, e.eval(context.Background(), "window.document._btn.value;", &val))
	assert.Equal(t, "a", val)
}

func TestDispatchKeySkipsAppendWhenCtrlHeld(t *testing.T) {
	e := newKeyTestExecutor(t)
	require.NoError(t, e.DispatchKey(context.Background(), "b", true, ModifierState{Ctrl: true}))

	var val string
	require.NoError(t, e.eval(context.Background(), "window.document._btn.value;", &val))
	assert.Equal(t, "", val)
}

func TestModifierCodepointRecognizesOnlyTheFourPUAKeys(t *testing.T) {
	assert.True(t, ModifierCodepoint(keyShift))
	assert.True(t, ModifierCodepoint(keyControl))
	assert.True(t, ModifierCodepoint(keyAlt))
	assert.True(t, ModifierCodepoint(keyMeta))
	assert.False(t, ModifierCodepoint('a'))
	assert.False(t, ModifierCodepoint(keyEnter))
}

func TestApplyModifierTracksEachFlagIndependently(t *testing.T) {
	var mods ModifierState
	ApplyModifier(&mods, keyControl, true)
	assert.True(t, mods.Ctrl)
	assert.False(t, mods.Shift)

	ApplyModifier(&mods, keyControl, false)
	assert.False(t, mods.Ctrl)
}

func TestRegularKeyCodeNaming(t *testing.T) {
	assert.Equal(t, "KeyA", regularKeyCode('a'))
	assert.Equal(t, "Digit5", regularKeyCode('5'))
	assert.Equal(t, "-", regularKeyCode('-'))
}
