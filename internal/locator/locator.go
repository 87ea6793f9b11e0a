// Package locator compiles a WebDriver find-element strategy and value into
// a JavaScript expression, parameterised over the context the expression
// should search within (the document root, a parent element, or a shadow
// root) and whether it should return a single match or all matches.
package locator

import (
	"strings"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// Strategy is one of the five find-element strategies the protocol accepts.
type Strategy string

const (
	CSSSelector      Strategy = "css selector"
	LinkText         Strategy = "link text"
	PartialLinkText  Strategy = "partial link text"
	TagName          Strategy = "tag name"
	XPath            Strategy = "xpath"
)

// FromString parses the wire value of a "using" field. Unknown strategies
// are an invalid argument, not a panic.
func FromString(s string) (Strategy, error) {
	switch Strategy(s) {
	case CSSSelector, LinkText, PartialLinkText, TagName, XPath:
		return Strategy(s), nil
	default:
		return "", wderr.Newf(wderr.InvalidArgument, "unsupported locator strategy %q", s)
	}
}

// Context names the JS expression the compiler should search within.
type Context string

const (
	ContextDocument Context = "document"
	ContextParent   Context = "parent"
	ContextShadow   Context = "shadow"
)

// escape doubles backslashes and escapes single quotes so value can be
// embedded in a single-quoted JS string literal.
func escape(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return value
}

// contextExpr returns the JS expression denoting the search root for ctx
// (document, parent or shadow).
func contextExpr(ctx Context) string {
	switch ctx {
	case ContextParent:
		return "parent"
	case ContextShadow:
		return "shadow"
	default:
		return "document"
	}
}

// Compile emits the JS expression that evaluates to a single matching
// element (or null/undefined) for strategy+value searched within ctx.
func Compile(strategy Strategy, value string, ctx Context) (string, error) {
	root := contextExpr(ctx)
	v := escape(value)

	switch strategy {
	case CSSSelector:
		return root + ".querySelector('" + v + "')", nil
	case TagName:
		return root + ".getElementsByTagName('" + v + "')[0] || null", nil
	case LinkText:
		return anchorFilterExpr(root, v, false, true), nil
	case PartialLinkText:
		return anchorFilterExpr(root, v, true, true), nil
	case XPath:
		return xpathExpr(root, v, true), nil
	default:
		return "", wderr.Newf(wderr.InvalidArgument, "unsupported locator strategy %q", strategy)
	}
}

// CompileAll emits the JS expression that evaluates to an array of every
// matching element searched within ctx.
func CompileAll(strategy Strategy, value string, ctx Context) (string, error) {
	root := contextExpr(ctx)
	v := escape(value)

	switch strategy {
	case CSSSelector:
		return "Array.from(" + root + ".querySelectorAll('" + v + "'))", nil
	case TagName:
		return "Array.from(" + root + ".getElementsByTagName('" + v + "'))", nil
	case LinkText:
		return anchorFilterExpr(root, v, false, false), nil
	case PartialLinkText:
		return anchorFilterExpr(root, v, true, false), nil
	case XPath:
		return xpathExpr(root, v, false), nil
	default:
		return "", wderr.Newf(wderr.InvalidArgument, "unsupported locator strategy %q", strategy)
	}
}

// anchorFilterExpr enumerates anchor elements under root and filters by
// trimmed textContent, exact or substring, returning either the first match
// or the full array.
func anchorFilterExpr(root, v string, partial, single bool) string {
	var cmp string
	if partial {
		cmp = "a.textContent.trim().includes('" + v + "')"
	} else {
		cmp = "a.textContent.trim() === '" + v + "'"
	}
	filtered := "Array.from(" + root + ".getElementsByTagName('a')).filter(a => " + cmp + ")"
	if single {
		return filtered + "[0] || null"
	}
	return filtered
}

// xpathExpr evaluates an XPath expression against document, using root as
// the context node for the resolution (per the locator compiler's rule that
// XPath always evaluates against document but with the desired context as
// the resolver base).
func xpathExpr(root, v string, single bool) string {
	resultType := "XPathResult.ORDERED_NODE_SNAPSHOT_TYPE"
	if single {
		resultType = "XPathResult.FIRST_ORDERED_NODE_TYPE"
	}
	eval := "document.evaluate('" + v + "', " + root + ", null, " + resultType + ", null)"
	if single {
		return "(" + eval + ").singleNodeValue"
	}
	return "(function(r){const out=[];for(let i=0;i<r.snapshotLength;i++){out.push(r.snapshotItem(i));}return out;})(" + eval + ")"
}
