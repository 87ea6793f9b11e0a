package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativewd/webdriverd/internal/wderr"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestGojaBridgeEvaluateSuccess(t *testing.T) {
	b := NewGojaBridge(testLogger())
	raw, err := b.Evaluate(context.Background(), "2 + 3", time.Second)
	require.NoError(t, err)
	assert.JSONEq(t, "5", string(raw))
}

func TestGojaBridgeEvaluateThrows(t *testing.T) {
	b := NewGojaBridge(testLogger())
	_, err := b.Evaluate(context.Background(), "throw new Error('boom')", time.Second)
	var wde *wderr.Error
	require.ErrorAs(t, err, &wde)
	assert.Equal(t, wderr.JavascriptError, wde.StatusStr)
}

func TestGojaBridgeEvaluateTimeout(t *testing.T) {
	b := NewGojaBridge(testLogger())
	_, err := b.Evaluate(context.Background(), "while(true){}", 20*time.Millisecond)
	var wde *wderr.Error
	require.ErrorAs(t, err, &wde)
	assert.Equal(t, wderr.ScriptTimeout, wde.StatusStr)
}

func TestEnvelopeResultNativeConvention(t *testing.T) {
	raw, err := EnvelopeResult([]byte(`{"success":true,"value":42}`))
	require.NoError(t, err)
	assert.JSONEq(t, "42", string(raw))

	_, err = EnvelopeResult([]byte(`{"success":false,"error":"boom"}`))
	require.Error(t, err)
}

func TestEnvelopeResultWrapperConvention(t *testing.T) {
	raw, err := EnvelopeResult([]byte(`{"__wd_success":true,"__wd_value":"ok"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `"ok"`, string(raw))

	_, err = EnvelopeResult([]byte(`{"__wd_success":false,"__wd_error":"nope"}`))
	require.Error(t, err)
}
