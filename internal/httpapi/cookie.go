package httpapi

import (
	"net/http"

	"github.com/nativewd/webdriverd/internal/executor"
)

type addCookieRequest struct {
	Cookie executor.Cookie `json:"cookie"`
}

func handleGetAllCookies(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	cookies, err := sc.Exec.GetCookies(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, cookies)
	return nil
}

func handleGetCookie(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	cookie, err := sc.Exec.GetCookie(r.Context(), r.PathValue("name"))
	if err != nil {
		return err
	}
	writeValue(rw, cookie)
	return nil
}

func handleAddCookie(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req addCookieRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.AddCookie(r.Context(), req.Cookie); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleDeleteCookie(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.DeleteCookie(r.Context(), r.PathValue("name")); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleDeleteAllCookies(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.DeleteAllCookies(r.Context()); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}
