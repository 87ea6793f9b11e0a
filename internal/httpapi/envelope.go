/*
 *
 * k6 - a next-generation load testing tool
 * Copyright (C) 2017 Load Impact
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

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nativewd/webdriverd/internal/wderr"
)

// envelope is the W3C WebDriver response shape: every response, success or
// failure, is a single object with a "value" field.
type envelope struct {
	Value interface{} `json:"value"`
}

func writeValue(rw http.ResponseWriter, value interface{}) {
	data, err := json.Marshal(envelope{Value: value})
	if err != nil {
		writeError(rw, wderr.New(wderr.UnknownError, err.Error()))
		return
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	_, _ = rw.Write(data)
}

func writeError(rw http.ResponseWriter, err error) {
	var wde *wderr.Error
	if !errors.As(err, &wde) {
		wde = wderr.New(wderr.UnknownError, err.Error())
	}
	data, merr := json.Marshal(envelope{Value: wde})
	if merr != nil {
		// marshaling the error itself failed; fall back to a fixed body
		// rather than panicking inside a handler.
		rw.WriteHeader(http.StatusInternalServerError)
		_, _ = rw.Write([]byte(`{"value":{"error":"unknown error","message":"failed to encode error"}}`))
		return
	}
	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.WriteHeader(wde.StatusStr.HTTPStatus())
	_, _ = rw.Write(data)
}
