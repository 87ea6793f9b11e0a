package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// liveLogUpgrader accepts connections from any origin: this endpoint is a
// debugging aid for a locally embedded server, not a public API.
var liveLogUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type liveLogMessage struct {
	Opened  bool   `json:"opened"`
	Message string `json:"message"`
}

// handleLiveLog upgrades to a WebSocket and streams the session's window's
// alert open/close events, standing in for the host's native UI-thread ->
// scheduler message-passing channel described for the dialog-interception
// hook: a test harness can watch this instead of polling alert/text.
func handleLiveLog(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	snap, err := d.Sessions.Snapshot(r.PathValue("session_id"))
	if err != nil {
		return err
	}

	conn, err := liveLogUpgrader.Upgrade(rw, r, nil)
	if err != nil {
		return nil // Upgrade already wrote its own error response.
	}
	defer conn.Close()

	state := d.Alerts.ForWindow(snap.CurrentWindow)
	events := state.Subscribe()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(liveLogMessage{Opened: ev.Opened, Message: ev.Message}); err != nil {
				return nil
			}
		case <-r.Context().Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "closing"),
				time.Now().Add(time.Second))
			return nil
		}
	}
}
