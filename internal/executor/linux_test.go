package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinuxExecutorPrintIsUnsupported(t *testing.T) {
	e := &LinuxExecutor{}
	_, err := e.Print(context.Background(), PrintOptions{})
	assert.Error(t, err)
}

func TestLinuxExecutorNativeWindowSizingIsUnsupported(t *testing.T) {
	e := &LinuxExecutor{}

	_, err := e.SetWindowRect(context.Background(), WindowRect{})
	assert.Error(t, err)

	_, err = e.Maximize(context.Background())
	assert.Error(t, err)

	_, err = e.Minimize(context.Background())
	assert.Error(t, err)

	_, err = e.Fullscreen(context.Background())
	assert.Error(t, err)
}
