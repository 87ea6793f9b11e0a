package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestLiveLogStreamsAlertEvents(t *testing.T) {
	d := newTestDeps(t)
	sessionID := createTestSession(t, d)

	server := httptest.NewServer(newHandler(d))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/session/" + sessionID + "/se/log"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	snap, err := d.Sessions.Snapshot(sessionID)
	require.NoError(t, err)
	state := d.Alerts.ForWindow(snap.CurrentWindow)
	respCh := state.SetPending("look out", "", 0)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg liveLogMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.True(t, msg.Opened)
	require.Equal(t, "look out", msg.Message)

	require.NoError(t, state.Respond(true))
	<-respCh
}
