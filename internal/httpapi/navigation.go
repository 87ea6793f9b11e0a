package httpapi

import "net/http"

type navigateRequest struct {
	URL string `json:"url"`
}

func handleNavigateTo(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req navigateRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.Navigate(r.Context(), req.URL); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleGetURL(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	url, err := sc.Exec.GetURL(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, url)
	return nil
}

func handleGetTitle(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	title, err := sc.Exec.GetTitle(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, title)
	return nil
}

func handleBack(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.Back(r.Context()); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleForward(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.Forward(r.Context()); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleRefresh(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	if err := sc.Exec.Refresh(r.Context()); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}
