package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

func handleSource(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	src, err := sc.Exec.GetSource(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, canonicalizeHTML(src))
	return nil
}

// canonicalizeHTML reparses and reserializes a document's outerHTML through
// a real HTML5 tree builder before it goes out over the wire. The goja
// runtime's serialization is just string concatenation of the live DOM;
// this catches the case where that produced something a browser couldn't
// parse back (an unescaped '<' inside an attribute value, an unclosed void
// element) and normalizes it instead of handing the caller broken markup.
// The original string is returned unchanged if parsing fails outright.
func canonicalizeHTML(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}
	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return src
	}
	return buf.String()
}
