package httpapi

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"
)

func handleScreenshot(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	png, err := sc.Exec.Screenshot(r.Context())
	if err != nil {
		return err
	}
	d.persistScreenshot(sc.SessionID, png)
	writeValue(rw, png)
	return nil
}

func handleElementScreenshot(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	png, err := sc.Exec.ElementScreenshot(r.Context(), ref)
	if err != nil {
		return err
	}
	d.persistScreenshot(sc.SessionID, png)
	writeValue(rw, png)
	return nil
}

// persistScreenshot saves a best-effort copy of a base64-encoded capture to
// the artifact store. A failure here never fails the WebDriver response;
// it's logged and otherwise ignored.
func (d *Deps) persistScreenshot(sessionID, b64 string) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		d.Log.WithError(err).Warn("screenshot was not valid base64, not persisting")
		return
	}
	if d.Artifacts == nil {
		return
	}
	path, err := d.Artifacts.SaveScreenshot(context.Background(), sessionID, raw, time.Now())
	if err != nil {
		d.Log.WithError(err).Warn("failed to persist screenshot artifact")
		return
	}
	d.Log.WithField("path", path).Debug("saved screenshot artifact")
}
