package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

type switchFrameRequest struct {
	ID json.RawMessage `json:"id"`
}

func handleSwitchToFrame(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req switchFrameRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sessionID := r.PathValue("session_id")

	if len(req.ID) == 0 || string(req.ID) == "null" {
		if err := d.Sessions.ResetFrames(sessionID); err != nil {
			return err
		}
		writeValue(rw, nil)
		return nil
	}

	var index uint32
	if err := json.Unmarshal(req.ID, &index); err == nil {
		sc, err := d.session(r)
		if err != nil {
			return err
		}
		n, err := sc.Exec.ExecuteSync(r.Context(), "return document.querySelectorAll('iframe,frame').length;", nil)
		if err != nil {
			return err
		}
		var count int
		if f, ok := n.(float64); ok {
			count = int(f)
		}
		if int(index) >= count {
			return wderr.New(wderr.NoSuchFrame, "frame index out of range")
		}
		if err := d.Sessions.PushFrame(sessionID, webdriver.FrameId{Kind: webdriver.FrameIndex, Index: index}); err != nil {
			return err
		}
		writeValue(rw, nil)
		return nil
	}

	var elem map[string]string
	if err := json.Unmarshal(req.ID, &elem); err != nil {
		return wderr.New(wderr.InvalidArgument, "frame id must be null, a number, or an element reference")
	}
	elementID, ok := elem[webdriver.ElementKey]
	if !ok {
		return wderr.New(wderr.InvalidArgument, "frame id object is missing the element reference key")
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, ok := sc.Elements.Get(elementID)
	if !ok {
		return wderr.StaleElementErr()
	}
	tag, err := sc.Exec.TagName(r.Context(), ref)
	if err != nil {
		return err
	}
	if tag != "iframe" && tag != "frame" {
		return wderr.New(wderr.NoSuchFrame, "target element is not an iframe or frame")
	}
	if err := d.Sessions.PushFrame(sessionID, webdriver.FrameId{Kind: webdriver.FrameElement, VarName: ref.JSRef}); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleSwitchToParentFrame(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	if err := d.Sessions.PopFrame(r.PathValue("session_id")); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}
