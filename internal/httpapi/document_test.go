package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeHTMLNormalizesMarkup(t *testing.T) {
	got := canonicalizeHTML("<html><body><p>hi<img src=x></body></html>")
	assert.Contains(t, got, "<img")
	assert.Contains(t, got, `src="x"`)
	assert.Contains(t, got, "hi")
}

func TestCanonicalizeHTMLWrapsEmptyInputInSkeletonDocument(t *testing.T) {
	got := canonicalizeHTML("")
	assert.Equal(t, "<html><head></head><body></body></html>", got)
}
