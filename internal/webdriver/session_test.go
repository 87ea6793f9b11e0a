package webdriver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nativewd/webdriverd/internal/wderr"
)

type fakeWindows struct {
	labels []string
}

func (f *fakeWindows) WindowLabels() []string { return f.labels }

func newTestRegistry(labels ...string) *SessionRegistry {
	r := NewSessionRegistry(&fakeWindows{labels: labels})
	r.pollInterval = time.Millisecond
	r.createWait = 20 * time.Millisecond
	return r
}

func TestCreateAndDeleteIsIdempotent(t *testing.T) {
	r := newTestRegistry("win-1")

	before := r.Len()
	s, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, "win-1", s.CurrentWindow)
	assert.Equal(t, DefaultTimeouts(), s.Timeouts)

	require.NoError(t, r.Delete(s.ID))
	assert.Equal(t, before, r.Len())

	err = r.Delete(s.ID)
	var wde *wderr.Error
	require.ErrorAs(t, err, &wde)
	assert.Equal(t, wderr.InvalidSessionID, wde.StatusStr)
}

func TestCreateFailsWithoutWindow(t *testing.T) {
	r := newTestRegistry()
	_, err := r.Create()
	var wde *wderr.Error
	require.ErrorAs(t, err, &wde)
	assert.Equal(t, wderr.SessionNotCreated, wde.StatusStr)
}

func TestSnapshotUnknownSession(t *testing.T) {
	r := newTestRegistry("win-1")
	_, err := r.Snapshot("nope")
	assert.Error(t, err)
}

func TestSetTimeoutsPartialUpdate(t *testing.T) {
	r := newTestRegistry("win-1")
	s, err := r.Create()
	require.NoError(t, err)

	implicit := int64(500)
	got, err := r.SetTimeouts(s.ID, &implicit, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(500), got.ImplicitMs)
	assert.Equal(t, DefaultTimeouts().PageLoadMs, got.PageLoadMs)
}

func TestSetDefaultTimeoutsAppliesToFutureSessions(t *testing.T) {
	r := newTestRegistry("win-1")
	r.SetDefaultTimeouts(Timeouts{ImplicitMs: 1000, PageLoadMs: 2000, ScriptMs: 3000})

	s, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, Timeouts{ImplicitMs: 1000, PageLoadMs: 2000, ScriptMs: 3000}, s.Timeouts)
}

func TestFrameStackPushPopReset(t *testing.T) {
	r := newTestRegistry("win-1")
	s, err := r.Create()
	require.NoError(t, err)

	require.NoError(t, r.PushFrame(s.ID, FrameId{Kind: FrameIndex, Index: 0}))
	snap, err := r.Snapshot(s.ID)
	require.NoError(t, err)
	assert.Len(t, snap.FrameStack, 1)

	require.NoError(t, r.PopFrame(s.ID))
	snap, err = r.Snapshot(s.ID)
	require.NoError(t, err)
	assert.Len(t, snap.FrameStack, 0)

	require.NoError(t, r.PushFrame(s.ID, FrameId{Kind: FrameTop}))
	require.NoError(t, r.ResetFrames(s.ID))
	snap, err = r.Snapshot(s.ID)
	require.NoError(t, err)
	assert.Len(t, snap.FrameStack, 0)
}
