/*
 *
 * k6 - a next-generation load testing tool
 * Copyright (C) 2016 Load Impact
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as
 * published by the Free Software Foundation, either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

// Package httpapi implements the W3C WebDriver HTTP wire protocol (C9): one
// route per endpoint, wired to Deps, each handler doing just enough
// marshaling/unmarshaling to hand off to the session registry, the action
// dispatcher, or a window's executor.
package httpapi

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// newHandler builds the full route table against deps. Routes use Go's
// method+path+wildcard mux patterns so {session_id}-shaped segments are
// parsed by the standard library rather than hand-rolled.
func newHandler(d *Deps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", d.handlerFunc(handleStatus))

	mux.HandleFunc("POST /session", d.handlerFunc(handleCreateSession))
	mux.HandleFunc("DELETE /session/{session_id}", d.handlerFunc(handleDeleteSession))

	mux.HandleFunc("GET /session/{session_id}/timeouts", d.handlerFunc(handleGetTimeouts))
	mux.HandleFunc("POST /session/{session_id}/timeouts", d.handlerFunc(handleSetTimeouts))

	mux.HandleFunc("GET /session/{session_id}/url", d.handlerFunc(handleGetURL))
	mux.HandleFunc("POST /session/{session_id}/url", d.handlerFunc(handleNavigateTo))
	mux.HandleFunc("GET /session/{session_id}/title", d.handlerFunc(handleGetTitle))
	mux.HandleFunc("POST /session/{session_id}/back", d.handlerFunc(handleBack))
	mux.HandleFunc("POST /session/{session_id}/forward", d.handlerFunc(handleForward))
	mux.HandleFunc("POST /session/{session_id}/refresh", d.handlerFunc(handleRefresh))

	mux.HandleFunc("POST /session/{session_id}/element", d.handlerFunc(handleFindElement))
	mux.HandleFunc("POST /session/{session_id}/elements", d.handlerFunc(handleFindElements))
	mux.HandleFunc("GET /session/{session_id}/element/active", d.handlerFunc(handleActiveElement))
	mux.HandleFunc("POST /session/{session_id}/element/{element_id}/element", d.handlerFunc(handleFindElementFromElement))
	mux.HandleFunc("POST /session/{session_id}/element/{element_id}/elements", d.handlerFunc(handleFindElementsFromElement))
	mux.HandleFunc("POST /session/{session_id}/element/{element_id}/click", d.handlerFunc(handleClick))
	mux.HandleFunc("POST /session/{session_id}/element/{element_id}/clear", d.handlerFunc(handleClear))
	mux.HandleFunc("POST /session/{session_id}/element/{element_id}/value", d.handlerFunc(handleSendKeys))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/text", d.handlerFunc(handleElementText))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/name", d.handlerFunc(handleTagName))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/attribute/{name}", d.handlerFunc(handleAttribute))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/property/{name}", d.handlerFunc(handleProperty))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/css/{property_name}", d.handlerFunc(handleCSSValue))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/rect", d.handlerFunc(handleElementRect))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/selected", d.handlerFunc(handleSelected))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/displayed", d.handlerFunc(handleDisplayed))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/enabled", d.handlerFunc(handleEnabled))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/computedrole", d.handlerFunc(handleComputedRole))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/computedlabel", d.handlerFunc(handleComputedLabel))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/screenshot", d.handlerFunc(handleElementScreenshot))
	mux.HandleFunc("GET /session/{session_id}/element/{element_id}/shadow", d.handlerFunc(handleShadowRoot))
	mux.HandleFunc("POST /session/{session_id}/shadow/{shadow_id}/element", d.handlerFunc(handleFindElementFromShadow))
	mux.HandleFunc("POST /session/{session_id}/shadow/{shadow_id}/elements", d.handlerFunc(handleFindElementsFromShadow))

	mux.HandleFunc("POST /session/{session_id}/execute/sync", d.handlerFunc(handleExecuteSync))
	mux.HandleFunc("POST /session/{session_id}/execute/async", d.handlerFunc(handleExecuteAsync))

	mux.HandleFunc("GET /session/{session_id}/screenshot", d.handlerFunc(handleScreenshot))
	mux.HandleFunc("GET /session/{session_id}/source", d.handlerFunc(handleSource))

	mux.HandleFunc("GET /session/{session_id}/window", d.handlerFunc(handleGetWindowHandle))
	mux.HandleFunc("POST /session/{session_id}/window", d.handlerFunc(handleSwitchToWindow))
	mux.HandleFunc("DELETE /session/{session_id}/window", d.handlerFunc(handleCloseWindow))
	mux.HandleFunc("POST /session/{session_id}/window/new", d.handlerFunc(handleNewWindow))
	mux.HandleFunc("GET /session/{session_id}/window/handles", d.handlerFunc(handleWindowHandles))
	mux.HandleFunc("GET /session/{session_id}/window/rect", d.handlerFunc(handleGetWindowRect))
	mux.HandleFunc("POST /session/{session_id}/window/rect", d.handlerFunc(handleSetWindowRect))
	mux.HandleFunc("POST /session/{session_id}/window/maximize", d.handlerFunc(handleMaximizeWindow))
	mux.HandleFunc("POST /session/{session_id}/window/minimize", d.handlerFunc(handleMinimizeWindow))
	mux.HandleFunc("POST /session/{session_id}/window/fullscreen", d.handlerFunc(handleFullscreenWindow))

	mux.HandleFunc("POST /session/{session_id}/frame", d.handlerFunc(handleSwitchToFrame))
	mux.HandleFunc("POST /session/{session_id}/frame/parent", d.handlerFunc(handleSwitchToParentFrame))

	mux.HandleFunc("POST /session/{session_id}/actions", d.handlerFunc(handlePerformActions))
	mux.HandleFunc("DELETE /session/{session_id}/actions", d.handlerFunc(handleReleaseActions))

	mux.HandleFunc("GET /session/{session_id}/cookie", d.handlerFunc(handleGetAllCookies))
	mux.HandleFunc("POST /session/{session_id}/cookie", d.handlerFunc(handleAddCookie))
	mux.HandleFunc("DELETE /session/{session_id}/cookie", d.handlerFunc(handleDeleteAllCookies))
	mux.HandleFunc("GET /session/{session_id}/cookie/{name}", d.handlerFunc(handleGetCookie))
	mux.HandleFunc("DELETE /session/{session_id}/cookie/{name}", d.handlerFunc(handleDeleteCookie))

	mux.HandleFunc("POST /session/{session_id}/alert/dismiss", d.handlerFunc(handleDismissAlert))
	mux.HandleFunc("POST /session/{session_id}/alert/accept", d.handlerFunc(handleAcceptAlert))
	mux.HandleFunc("GET /session/{session_id}/alert/text", d.handlerFunc(handleGetAlertText))
	mux.HandleFunc("POST /session/{session_id}/alert/text", d.handlerFunc(handleSendAlertText))

	mux.HandleFunc("POST /session/{session_id}/print", d.handlerFunc(handlePrint))

	mux.HandleFunc("GET /session/{session_id}/se/log", d.handlerFunc(handleLiveLog))

	return mux
}

// NewAPIServer returns a new *unstarted* HTTP server implementing the
// WebDriver wire protocol against deps.
func NewAPIServer(addr string, d *Deps) *http.Server {
	return &http.Server{Addr: addr, Handler: newLogger(d.Log, withCompression(newHandler(d)))}
}

type wrappedResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *wrappedResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// newLogger returns the middleware which logs response status for request.
func newLogger(l logrus.FieldLogger, next http.Handler) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		wrapped := &wrappedResponseWriter{ResponseWriter: rw, status: 200}
		next.ServeHTTP(wrapped, r)

		l.WithField("status", wrapped.status).Debugf("%s %s", r.Method, r.URL.Path)
	}
}
