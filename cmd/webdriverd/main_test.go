package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnvMap(t *testing.T) {
	env := buildEnvMap([]string{"FOO=bar", "BAZ=", "QUX"})
	assert.Equal(t, "bar", env["FOO"])
	assert.Equal(t, "", env["BAZ"])
	assert.Equal(t, "", env["QUX"])
}

func TestGetBannerDisablesColorWhenRequested(t *testing.T) {
	assert.NotPanics(t, func() {
		getBanner(true)
		getBanner(false)
	})
}
