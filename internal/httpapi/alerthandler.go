package httpapi

import (
	"net/http"

	"github.com/nativewd/webdriverd/internal/alert"
	"github.com/nativewd/webdriverd/internal/wderr"
)

func alertState(d *Deps, r *http.Request) (*alert.State, error) {
	snap, err := d.Sessions.Snapshot(r.PathValue("session_id"))
	if err != nil {
		return nil, err
	}
	return d.Alerts.ForWindow(snap.CurrentWindow), nil
}

func handleDismissAlert(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	state, err := alertState(d, r)
	if err != nil {
		return err
	}
	if !state.HasPending() {
		return wderr.New(wderr.NoSuchAlert, "no dialog is pending")
	}
	if err := state.Respond(false); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleAcceptAlert(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	state, err := alertState(d, r)
	if err != nil {
		return err
	}
	if !state.HasPending() {
		return wderr.New(wderr.NoSuchAlert, "no dialog is pending")
	}
	if err := state.Respond(true); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleGetAlertText(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	state, err := alertState(d, r)
	if err != nil {
		return err
	}
	text, err := state.Text()
	if err != nil {
		return err
	}
	writeValue(rw, text)
	return nil
}

type sendAlertTextRequest struct {
	Text string `json:"text"`
}

func handleSendAlertText(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req sendAlertTextRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	state, err := alertState(d, r)
	if err != nil {
		return err
	}
	if err := state.SetPromptInput(req.Text); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}
