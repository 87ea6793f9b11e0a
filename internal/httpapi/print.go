package httpapi

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/nativewd/webdriverd/internal/executor"
)

func handlePrint(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var opts executor.PrintOptions
	if err := decodeBody(r, &opts); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	pdf, err := sc.Exec.Print(r.Context(), opts)
	if err != nil {
		return err
	}
	d.persistPrint(sc.SessionID, pdf)
	writeValue(rw, pdf)
	return nil
}

// persistPrint mirrors persistScreenshot for printed PDF output.
func (d *Deps) persistPrint(sessionID, b64 string) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		d.Log.WithError(err).Warn("print output was not valid base64, not persisting")
		return
	}
	if d.Artifacts == nil {
		return
	}
	path, err := d.Artifacts.SavePrint(context.Background(), sessionID, raw, time.Now())
	if err != nil {
		d.Log.WithError(err).Warn("failed to persist print artifact")
		return
	}
	d.Log.WithField("path", path).Debug("saved print artifact")
}
