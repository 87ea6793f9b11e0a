package httpapi

import "net/http"

type executeScriptRequest struct {
	Script string        `json:"script"`
	Args   []interface{} `json:"args"`
}

func handleExecuteSync(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req executeScriptRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	result, err := sc.Exec.ExecuteSync(r.Context(), req.Script, req.Args)
	if err != nil {
		return err
	}
	writeValue(rw, result)
	return nil
}

func handleExecuteAsync(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req executeScriptRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	result, err := sc.Exec.ExecuteAsync(r.Context(), req.Script, req.Args)
	if err != nil {
		return err
	}
	writeValue(rw, result)
	return nil
}
