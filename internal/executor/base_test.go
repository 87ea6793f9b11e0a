package executor

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativewd/webdriverd/internal/bridge"
	"github.com/nativewd/webdriverd/internal/locator"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

const domHarness = `
var window = (function(){ return this; })();
window.window = window;
window.location = { href: 'about:blank' };
var __els = [];
function makeEl(tag, attrs) {
	attrs = attrs || {};
	return {
		tagName: tag.toUpperCase(),
		_attrs: attrs,
		value: attrs.value || '',
		textContent: attrs.text || '',
		hasAttribute: function(n){ return Object.prototype.hasOwnProperty.call(this._attrs, n); },
		getAttribute: function(n){ return this._attrs[n]; },
	};
}
window.document = {
	title: 'Test Page',
	_btn: makeEl('button', { id: 'btn', text: 'Click me' }),
	querySelector: function(sel){ return sel === '#btn' ? this._btn : null; },
	querySelectorAll: function(sel){ return sel === '#btn' ? [this._btn] : []; },
	contains: function(el){ return true; },
};
`

func newTestExecutor(t *testing.T) *ScriptOnlyExecutor {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	e, err := NewScriptOnlyExecutor(log, "win-1", webdriver.DefaultTimeouts(), nil, webdriver.NewElementStore(), bridge.NewAsyncRegistry())
	require.NoError(t, err)

	_, err = e.bridge.Evaluate(context.Background(), domHarness+"; null;", e.scriptTimeout())
	require.NoError(t, err)
	return e
}

func TestExecuteSyncArithmetic(t *testing.T) {
	e := newTestExecutor(t)
	out, err := e.ExecuteSync(context.Background(), "return arguments[0]+arguments[1];", []interface{}{2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(5), toInt64(out))
}

func TestGetTitle(t *testing.T) {
	e := newTestExecutor(t)
	title, err := e.GetTitle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test Page", title)
}

func TestFindElementSuccessAndMiss(t *testing.T) {
	e := newTestExecutor(t)

	ref, err := e.FindElement(context.Background(), locator.CSSSelector, "#btn", DocumentScope())
	require.NoError(t, err)
	assert.NotEmpty(t, ref.ID)

	_, err = e.FindElement(context.Background(), locator.CSSSelector, "#missing", DocumentScope())
	assert.Error(t, err)
}

func TestExecuteAsyncTimesOut(t *testing.T) {
	e := newTestExecutor(t)
	e.Timeouts.ScriptMs = 50

	_, err := e.ExecuteAsync(context.Background(), "var done = arguments[0];", nil)
	assert.Error(t, err)
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return -1
	}
}
