package executor

import (
	"fmt"

	"github.com/nativewd/webdriverd/internal/webdriver"
)

// frameDocumentExpr builds the JS expression yielding the Document object
// for the session's current frame context. The executor itself never
// mutates frame context (the handler owns the session's frame stack); it
// only consumes the stack to decide which document a given evaluation
// should run against.
func frameDocumentExpr(frames []webdriver.FrameId) string {
	expr := "window"
	for _, f := range frames {
		switch f.Kind {
		case webdriver.FrameIndex:
			expr = fmt.Sprintf("%s.frames[%d]", expr, f.Index)
		case webdriver.FrameElement:
			expr = fmt.Sprintf("%s.%s.contentWindow", expr, f.VarName)
		case webdriver.FrameTop:
			// no-op: stays relative to the current expr
		}
	}
	return expr + ".document"
}

// wrapForFrame shadows the page-global `document` binding with the current
// frame context's document before running body, so every default
// implementation below can simply write "document.querySelector(...)"
// regardless of how deep the session has navigated into nested frames.
func wrapForFrame(frames []webdriver.FrameId, body string) string {
	return "(function(){ var document = (" + frameDocumentExpr(frames) + "); " + body + " })()"
}
