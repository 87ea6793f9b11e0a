package locator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	s, err := FromString("css selector")
	require.NoError(t, err)
	assert.Equal(t, CSSSelector, s)

	_, err = FromString("bogus strategy")
	assert.Error(t, err)
}

func TestCompileEscapesBackslashAndQuote(t *testing.T) {
	expr, err := Compile(CSSSelector, `foo\bar'baz`, ContextDocument)
	require.NoError(t, err)
	assert.NotContains(t, expr, `foo\bar'baz`)
	assert.Contains(t, expr, `foo\\bar\'baz`)
}

func TestCompileContexts(t *testing.T) {
	expr, err := Compile(CSSSelector, "#btn", ContextParent)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(expr, "parent."))

	expr, err = Compile(CSSSelector, "#btn", ContextShadow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(expr, "shadow."))
}

func TestCompileAllLinkText(t *testing.T) {
	expr, err := CompileAll(LinkText, "Click me", ContextDocument)
	require.NoError(t, err)
	assert.Contains(t, expr, "===")
	assert.NotContains(t, expr, "[0]")

	expr, err = Compile(PartialLinkText, "Click", ContextDocument)
	require.NoError(t, err)
	assert.Contains(t, expr, "includes(")
	assert.Contains(t, expr, "[0]")
}

func TestCompileXPath(t *testing.T) {
	expr, err := Compile(XPath, "//div", ContextDocument)
	require.NoError(t, err)
	assert.Contains(t, expr, "FIRST_ORDERED_NODE_TYPE")

	expr, err = CompileAll(XPath, "//div", ContextDocument)
	require.NoError(t, err)
	assert.Contains(t, expr, "ORDERED_NODE_SNAPSHOT_TYPE")
}

func TestUnknownStrategy(t *testing.T) {
	_, err := Compile(Strategy("bogus"), "x", ContextDocument)
	assert.Error(t, err)
	_, err = CompileAll(Strategy("bogus"), "x", ContextDocument)
	assert.Error(t, err)
}
