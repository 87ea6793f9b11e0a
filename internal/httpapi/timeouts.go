package httpapi

import "net/http"

type timeoutsRequest struct {
	Implicit *int64 `json:"implicit,omitempty"`
	PageLoad *int64 `json:"pageLoad,omitempty"`
	Script   *int64 `json:"script,omitempty"`
}

func handleGetTimeouts(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	snap, err := d.Sessions.Snapshot(r.PathValue("session_id"))
	if err != nil {
		return err
	}
	writeValue(rw, snap.Timeouts)
	return nil
}

func handleSetTimeouts(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req timeoutsRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	timeouts, err := d.Sessions.SetTimeouts(r.PathValue("session_id"), req.Implicit, req.PageLoad, req.Script)
	if err != nil {
		return err
	}
	_ = timeouts
	writeValue(rw, nil)
	return nil
}
