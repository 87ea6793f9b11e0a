package webdriver

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestElementStoreAllocatesValidRef(t *testing.T) {
	store := NewElementStore()
	ref := store.Store()

	_, err := uuid.Parse(ref.ID)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref.JSRef, elementVarPrefix))
	assert.False(t, strings.Contains(ref.JSRef, "-"))

	got, ok := store.Get(ref.ID)
	assert.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestElementStoreLookupMiss(t *testing.T) {
	store := NewElementStore()
	_, ok := store.Get("does-not-exist")
	assert.False(t, ok)
}

func TestElementRefEnvelopes(t *testing.T) {
	store := NewElementStore()
	ref := store.Store()

	env := ref.Envelope()
	assert.Equal(t, ref.ID, env[ElementKey])

	shadow := ref.ShadowEnvelope()
	assert.Equal(t, ref.ID, shadow[ShadowKey])
}
