package httpapi

import (
	"net/http"
	"runtime"

	"github.com/nativewd/webdriverd/internal/tracing"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// Capabilities is the session-creation response shape, matching
// SessionResponse's camelCase wire format.
type Capabilities struct {
	BrowserName         string            `json:"browserName"`
	BrowserVersion      string            `json:"browserVersion"`
	PlatformName        string            `json:"platformName"`
	AcceptInsecureCerts bool              `json:"acceptInsecureCerts"`
	PageLoadStrategy    string            `json:"pageLoadStrategy"`
	SetWindowRect       bool              `json:"setWindowRect"`
	Timeouts            webdriver.Timeouts `json:"timeouts"`
}

type createSessionRequest struct {
	Capabilities struct {
		AlwaysMatch map[string]interface{}   `json:"alwaysMatch"`
		FirstMatch  []map[string]interface{} `json:"firstMatch"`
	} `json:"capabilities"`
}

type createSessionResponse struct {
	SessionID    string       `json:"sessionId"`
	Capabilities Capabilities `json:"capabilities"`
}

func handleCreateSession(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req createSessionRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}

	d.ensureWindow()

	ctx, span := tracing.Start(r.Context(), "session.create")
	sess, err := d.Sessions.Create()
	span.End()
	if err != nil {
		return err
	}
	r = r.WithContext(ctx)

	snap, err := d.Sessions.Snapshot(sess.ID)
	if err != nil {
		return err
	}
	exec, err := d.executorFor(snap, sess.Elements)
	if err != nil {
		return err
	}

	ua, err := exec.ExecuteSync(r.Context(), "return navigator.userAgent;", nil)
	if err != nil {
		return err
	}
	uaStr, _ := ua.(string)
	browserName, browserVersion := webdriver.ParseUserAgent(uaStr)

	writeValue(rw, createSessionResponse{
		SessionID: sess.ID,
		Capabilities: Capabilities{
			BrowserName:         browserName,
			BrowserVersion:      browserVersion,
			PlatformName:        runtime.GOOS,
			AcceptInsecureCerts: false,
			PageLoadStrategy:    "normal",
			SetWindowRect:       !isMobileGOOS(runtime.GOOS),
			Timeouts:            sess.Timeouts,
		},
	})
	return nil
}

func handleDeleteSession(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	id := r.PathValue("session_id")
	if err := d.Sessions.Delete(id); err != nil {
		return err
	}
	d.dropSession(id)
	writeValue(rw, nil)
	return nil
}
