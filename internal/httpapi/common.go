package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/tracing"
	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// decodeBody unmarshals r's JSON body into out. An empty body is treated as
// an empty JSON object so optional-bodied endpoints (e.g. GET-shaped
// actions with no payload) don't fail decoding.
func decodeBody(r *http.Request, out interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return wderr.New(wderr.InvalidArgument, "malformed request body: "+err.Error())
	}
	return nil
}

// sessionContext bundles what nearly every session-scoped handler needs:
// the session's current snapshot, its element store, and an executor bound
// to its current window/timeouts/frames.
type sessionContext struct {
	SessionID string
	Snapshot  webdriver.Snapshot
	Elements  *webdriver.ElementStore
	Exec      executor.Executor
}

func (d *Deps) session(r *http.Request) (*sessionContext, error) {
	id := r.PathValue("session_id")
	snap, err := d.Sessions.Snapshot(id)
	if err != nil {
		return nil, err
	}
	elements, err := d.Sessions.Elements(id)
	if err != nil {
		return nil, err
	}
	exec, err := d.executorFor(snap, elements)
	if err != nil {
		return nil, err
	}
	return &sessionContext{SessionID: id, Snapshot: snap, Elements: elements, Exec: exec}, nil
}

// elementRef resolves the {element_id} path parameter against sc's element
// store, failing with stale element reference if it's unknown.
func (sc *sessionContext) elementRef(r *http.Request, param string) (webdriver.ElementRef, error) {
	id := r.PathValue(param)
	ref, ok := sc.Elements.Get(id)
	if !ok {
		return webdriver.ElementRef{}, wderr.StaleElementErr()
	}
	return ref, nil
}

// handlerFunc adapts a (Deps, ResponseWriter, Request) error-returning
// function into an http.HandlerFunc, routing any returned error through the
// shared W3C error envelope. A panic inside fn is caught here rather than
// crashing the process: it's reported as unknown error (500), the same way
// a poisoned session lock or any other unrecoverable failure is.
func (d *Deps) handlerFunc(fn func(d *Deps, rw http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		r = r.WithContext(ctx)

		defer func() {
			if v := recover(); v != nil {
				err := fmt.Errorf("panic: %v", v)
				span.RecordError(err)
				d.Log.WithField("panic", v).Error("recovered from handler panic")
				writeError(rw, wderr.New(wderr.UnknownError, err.Error()))
			}
		}()

		if err := fn(d, rw, r); err != nil {
			span.RecordError(err)
			writeError(rw, err)
		}
	}
}
