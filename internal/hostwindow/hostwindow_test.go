package hostwindow

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(log)
}

func TestOpenAssignsDistinctLabels(t *testing.T) {
	m := newTestManager()
	a := m.Open()
	b := m.Open()
	assert.NotEqual(t, a.Label, b.Label)
	assert.ElementsMatch(t, []string{a.Label, b.Label}, m.WindowLabels())
}

func TestGetAndClose(t *testing.T) {
	m := newTestManager()
	w := m.Open()

	got, ok := m.Get(w.Label)
	require.True(t, ok)
	assert.Same(t, w, got)

	m.Close(w.Label)
	_, ok = m.Get(w.Label)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
