package httpapi

import (
	"net/http"

	"github.com/nativewd/webdriverd/internal/actions"
)

type performActionsRequest struct {
	Actions []actions.InputSource `json:"actions"`
}

func handlePerformActions(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req performActionsRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	disp := d.dispatcherFor(sc.SessionID, sc.Exec)
	if err := disp.Perform(r.Context(), req.Actions); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleReleaseActions(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	disp := d.dispatcherFor(sc.SessionID, sc.Exec)
	if err := disp.Release(r.Context()); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}
