package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncRegistryDeliversOnce(t *testing.T) {
	r := NewAsyncRegistry()
	id, recv := r.Register()

	r.Complete(id, json.RawMessage(`42`), "")
	got := <-recv
	assert.Equal(t, json.RawMessage(`42`), got.Value)

	// second completion is a silent no-op, not a panic or double-send.
	r.Complete(id, json.RawMessage(`99`), "")
}

func TestAsyncRegistryCancelThenCompleteIsNoop(t *testing.T) {
	r := NewAsyncRegistry()
	id, recv := r.Register()

	r.Cancel(id)
	r.Complete(id, json.RawMessage(`1`), "")

	select {
	case <-recv:
		t.Fatal("expected no delivery after cancel")
	default:
	}
}

func TestMarkHandlerRegisteredIsIdempotent(t *testing.T) {
	r := NewAsyncRegistry()
	assert.True(t, r.MarkHandlerRegistered("win-1"))
	assert.False(t, r.MarkHandlerRegistered("win-1"))
	assert.True(t, r.MarkHandlerRegistered("win-2"))
}

func TestResolveErrorWins(t *testing.T) {
	v, err := Resolve(json.RawMessage(`{"ok":true}`), "boom")
	require.Error(t, err)
	assert.Nil(t, v)

	v, err = Resolve(json.RawMessage(`{"ok":true}`), "")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"ok":true}`), v)

	v, err = Resolve(nil, "")
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), v)
}
