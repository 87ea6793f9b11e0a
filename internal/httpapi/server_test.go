package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

const testHarness = `
var window = (function(){ return this; })();
window.window = window;
window.navigator = { userAgent: 'Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Safari/605.1.15' };
window.location = { href: 'about:blank' };
function makeEl(tag, attrs) {
	attrs = attrs || {};
	return {
		tagName: tag.toUpperCase(),
		_attrs: attrs,
		value: attrs.value || '',
		textContent: attrs.text || '',
		hasAttribute: function(n){ return Object.prototype.hasOwnProperty.call(this._attrs, n); },
		getAttribute: function(n){ return this._attrs[n]; },
		scrollIntoView: function(){},
		click: function(){},
		focus: function(){},
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

func newTestDeps(t *testing.T) *Deps {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	d := NewDeps(log)
	w := d.Windows.Open()
	_, err := w.Bridge.Evaluate(context.Background(), testHarness+"; null;", time.Second)
	require.NoError(t, err)
	return d
}

func doRequest(t *testing.T, d *Deps, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	newHandler(d).ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestStatusEndpoint(t *testing.T) {
	d := newTestDeps(t)
	rec, body := doRequest(t, d, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	value := body["value"].(map[string]interface{})
	assert.Equal(t, true, value["ready"])
}

func createTestSession(t *testing.T, d *Deps) string {
	t.Helper()
	rec, body := doRequest(t, d, http.MethodPost, "/session", map[string]interface{}{"capabilities": map[string]interface{}{}})
	require.Equal(t, http.StatusOK, rec.Code)
	value := body["value"].(map[string]interface{})
	caps := value["capabilities"].(map[string]interface{})
	assert.Equal(t, "WebKitGTK", caps["browserName"])
	return value["sessionId"].(string)
}

func TestCreateAndDeleteSession(t *testing.T) {
	d := newTestDeps(t)
	id := createTestSession(t, d)
	assert.Equal(t, 1, d.Sessions.Len())

	rec, _ := doRequest(t, d, http.MethodDelete, "/session/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, d.Sessions.Len())
}

func TestNavigateAndGetURL(t *testing.T) {
	d := newTestDeps(t)
	id := createTestSession(t, d)

	rec, _ := doRequest(t, d, http.MethodPost, "/session/"+id+"/url", map[string]string{"url": "http://example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := doRequest(t, d, http.MethodGet, "/session/"+id+"/url", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://example.com", body["value"])
}

func TestFindElementNotFoundReturns404Envelope(t *testing.T) {
	d := newTestDeps(t)
	id := createTestSession(t, d)

	rec, body := doRequest(t, d, http.MethodPost, "/session/"+id+"/element", map[string]string{"using": "css selector", "value": "#missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	value := body["value"].(map[string]interface{})
	assert.Equal(t, "no such element", value["error"])
}

func TestFindElementAndClick(t *testing.T) {
	d := newTestDeps(t)
	id := createTestSession(t, d)

	rec, body := doRequest(t, d, http.MethodPost, "/session/"+id+"/element", map[string]string{"using": "css selector", "value": "#btn"})
	require.Equal(t, http.StatusOK, rec.Code)
	value := body["value"].(map[string]interface{})
	elementID := value["element-6066-11e4-a52e-4f735466cecf"].(string)

	rec, _ = doRequest(t, d, http.MethodPost, "/session/"+id+"/element/"+elementID+"/click", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvalidSessionIDReturns404(t *testing.T) {
	d := newTestDeps(t)
	rec, body := doRequest(t, d, http.MethodGet, "/session/does-not-exist/url", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	value := body["value"].(map[string]interface{})
	assert.Equal(t, "invalid session id", value["error"])
}

func TestCreateSessionSetWindowRectMatchesBuildPlatform(t *testing.T) {
	d := newTestDeps(t)
	rec, body := doRequest(t, d, http.MethodPost, "/session", map[string]interface{}{"capabilities": map[string]interface{}{}})
	require.Equal(t, http.StatusOK, rec.Code)
	value := body["value"].(map[string]interface{})
	caps := value["capabilities"].(map[string]interface{})

	assert.Equal(t, !isMobileGOOS(runtime.GOOS), caps["setWindowRect"])
}

func TestPlatformExecutorSelectsBackendPerGOOS(t *testing.T) {
	d := newTestDeps(t)
	w := d.Windows.Open()
	base, err := executor.NewBaseExecutor(d.Log, w.Bridge, w.Label, webdriver.DefaultTimeouts(), nil, webdriver.NewElementStore(), w.Async)
	require.NoError(t, err)

	built := d.platformExecutor(base, w)
	switch runtime.GOOS {
	case "darwin":
		assert.IsType(t, &executor.MacOSExecutor{}, built)
	case "windows":
		assert.IsType(t, &executor.WindowsExecutor{}, built)
	case "linux":
		assert.IsType(t, &executor.LinuxExecutor{}, built)
	case "android":
		assert.IsType(t, &executor.AndroidExecutor{}, built)
	case "ios":
		assert.IsType(t, &executor.IOSExecutor{}, built)
	default:
		assert.IsType(t, &executor.ScriptOnlyExecutor{}, built)
	}
}

func TestHandlerFuncRecoversFromPanicAsUnknownError(t *testing.T) {
	d := newTestDeps(t)
	handler := d.handlerFunc(func(d *Deps, rw http.ResponseWriter, r *http.Request) error {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/whatever", nil)
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() { handler(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	value := body["value"].(map[string]interface{})
	assert.Equal(t, "unknown error", value["error"])
}
