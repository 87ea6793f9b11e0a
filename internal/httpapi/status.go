package httpapi

import "net/http"

type statusResponse struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

func handleStatus(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	writeValue(rw, statusResponse{Ready: true, Message: "webdriverd is ready"})
	return nil
}
