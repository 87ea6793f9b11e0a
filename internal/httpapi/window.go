package httpapi

import (
	"net/http"

	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/wderr"
)

func handleGetWindowHandle(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	snap, err := d.Sessions.Snapshot(r.PathValue("session_id"))
	if err != nil {
		return err
	}
	writeValue(rw, snap.CurrentWindow)
	return nil
}

type switchWindowRequest struct {
	Handle string `json:"handle"`
}

func handleSwitchToWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req switchWindowRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sessionID := r.PathValue("session_id")
	if _, ok := d.Windows.Get(req.Handle); !ok {
		return wderr.NoSuchWindowErr()
	}
	if err := d.Sessions.SetCurrentWindow(sessionID, req.Handle); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleCloseWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	snap, err := d.Sessions.Snapshot(r.PathValue("session_id"))
	if err != nil {
		return err
	}
	d.Windows.Close(snap.CurrentWindow)
	writeValue(rw, d.Windows.WindowLabels())
	return nil
}

func handleNewWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	w := d.Windows.Open()
	writeValue(rw, map[string]string{"handle": w.Label, "type": "window"})
	return nil
}

func handleWindowHandles(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	writeValue(rw, d.Windows.WindowLabels())
	return nil
}

func handleGetWindowRect(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	rect, err := sc.Exec.GetWindowRect(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, rect)
	return nil
}

func handleSetWindowRect(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var rect executor.WindowRect
	if err := decodeBody(r, &rect); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	out, err := sc.Exec.SetWindowRect(r.Context(), rect)
	if err != nil {
		return err
	}
	writeValue(rw, out)
	return nil
}

func handleMaximizeWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	rect, err := sc.Exec.Maximize(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, rect)
	return nil
}

func handleMinimizeWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	rect, err := sc.Exec.Minimize(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, rect)
	return nil
}

func handleFullscreenWindow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	rect, err := sc.Exec.Fullscreen(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, rect)
	return nil
}
