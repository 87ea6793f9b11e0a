package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPromptInputRequiresPendingAlert(t *testing.T) {
	s := &State{}
	assert.Error(t, s.SetPromptInput("won't stick"))
}

func TestSetPromptInputRequiresPromptType(t *testing.T) {
	s := &State{}
	_ = s.SetPending("hi", "", Alert)
	err := s.SetPromptInput("x")
	assert.Error(t, err)

	_ = s.SetPending("enter name", "default", Prompt)
	err = s.SetPromptInput("bob")
	assert.NoError(t, err)
}

func TestSetPendingClearsPromptInputSlot(t *testing.T) {
	s := &State{}
	_ = s.SetPending("first", "", Prompt)
	require.NoError(t, s.SetPromptInput("stale"))

	// a new pending alert must wipe the previous prompt input.
	ch := s.SetPending("second", "", Prompt)
	require.NoError(t, s.Respond(true))
	resp := <-ch
	assert.Equal(t, "", resp.PromptText)
}

func TestRespondClearsSlotsAndIsNoopWhenEmpty(t *testing.T) {
	s := &State{}
	assert.NoError(t, s.Respond(true)) // no-op, nothing pending

	ch := s.SetPending("enter name", "", Prompt)
	require.NoError(t, s.SetPromptInput("bob"))
	require.NoError(t, s.Respond(true))

	resp := <-ch
	assert.True(t, resp.Accepted)
	assert.Equal(t, "bob", resp.PromptText)
	assert.False(t, s.HasPending())

	_, err := s.Text()
	assert.Error(t, err)
}

func TestSubscribeReceivesOpenAndCloseEvents(t *testing.T) {
	s := &State{}
	events := s.Subscribe()

	ch := s.SetPending("are you sure?", "", Confirm)
	opened := <-events
	assert.True(t, opened.Opened)
	assert.Equal(t, "are you sure?", opened.Message)

	require.NoError(t, s.Respond(true))
	<-ch
	closed := <-events
	assert.False(t, closed.Opened)
}

func TestCoordinatorPerWindowIsolation(t *testing.T) {
	c := NewCoordinator()
	a := c.ForWindow("win-1")
	b := c.ForWindow("win-2")
	assert.NotSame(t, a, b)
	assert.Same(t, a, c.ForWindow("win-1"))
}
