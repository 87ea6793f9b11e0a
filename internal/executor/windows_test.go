package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowsExecutorScreenshotIsAlwaysUnsupported(t *testing.T) {
	e := &WindowsExecutor{NativeHooks: &fakeWindowControl{}}
	_, err := e.Screenshot(context.Background())
	assert.Error(t, err)

	_, err = e.Print(context.Background(), PrintOptions{})
	assert.Error(t, err)
}

func TestWindowsExecutorWindowOpsRoundTripThroughNativeHooks(t *testing.T) {
	hooks := &fakeWindowControl{}
	e := &WindowsExecutor{NativeHooks: hooks}

	rect, err := e.SetWindowRect(context.Background(), WindowRect{Width: 1024, Height: 768})
	require.NoError(t, err)
	assert.Equal(t, WindowRect{Width: 1024, Height: 768}, rect)

	_, err = e.Minimize(context.Background())
	require.NoError(t, err)
	assert.True(t, hooks.minimized)

	_, err = e.Fullscreen(context.Background())
	require.NoError(t, err)
	assert.True(t, hooks.fullscreen)
}

func TestWindowsExecutorWithoutNativeHooksIsUnsupported(t *testing.T) {
	e := &WindowsExecutor{}

	_, err := e.SetWindowRect(context.Background(), WindowRect{})
	assert.Error(t, err)

	_, err = e.Maximize(context.Background())
	assert.Error(t, err)
}
