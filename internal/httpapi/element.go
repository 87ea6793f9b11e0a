package httpapi

import (
	"net/http"

	"github.com/nativewd/webdriverd/internal/executor"
	"github.com/nativewd/webdriverd/internal/locator"
	"github.com/nativewd/webdriverd/internal/tracing"
)

type findElementRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

func findIn(sc *sessionContext, rw http.ResponseWriter, r *http.Request, scope executor.ElementScope) error {
	var req findElementRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	strategy, err := locator.FromString(req.Using)
	if err != nil {
		return err
	}
	ctx, span := tracing.Start(r.Context(), "element.find")
	ref, err := sc.Exec.FindElement(ctx, strategy, req.Value, scope)
	span.End()
	if err != nil {
		return err
	}
	writeValue(rw, ref.Envelope())
	return nil
}

func findAllIn(sc *sessionContext, rw http.ResponseWriter, r *http.Request, scope executor.ElementScope) error {
	var req findElementRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	strategy, err := locator.FromString(req.Using)
	if err != nil {
		return err
	}
	ctx, span := tracing.Start(r.Context(), "element.find")
	refs, err := sc.Exec.FindElements(ctx, strategy, req.Value, scope)
	span.End()
	if err != nil {
		return err
	}
	envs := make([]map[string]string, 0, len(refs))
	for _, ref := range refs {
		envs = append(envs, ref.Envelope())
	}
	writeValue(rw, envs)
	return nil
}

func handleFindElement(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	return findIn(sc, rw, r, executor.DocumentScope())
}

func handleFindElements(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	return findAllIn(sc, rw, r, executor.DocumentScope())
}

func handleFindElementFromElement(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	parent, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	return findIn(sc, rw, r, executor.FromElementScope(parent))
}

func handleFindElementsFromElement(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	parent, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	return findAllIn(sc, rw, r, executor.FromElementScope(parent))
}

func handleFindElementFromShadow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	shadow, err := sc.elementRef(r, "shadow_id")
	if err != nil {
		return err
	}
	return findIn(sc, rw, r, executor.FromShadowScope(shadow))
}

func handleFindElementsFromShadow(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	shadow, err := sc.elementRef(r, "shadow_id")
	if err != nil {
		return err
	}
	return findAllIn(sc, rw, r, executor.FromShadowScope(shadow))
}

func handleActiveElement(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.Exec.ActiveElement(r.Context())
	if err != nil {
		return err
	}
	writeValue(rw, ref.Envelope())
	return nil
}

func handleClick(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	if err := sc.Exec.Click(r.Context(), ref); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleClear(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	if err := sc.Exec.Clear(r.Context(), ref); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

type sendKeysRequest struct {
	Text string `json:"text"`
}

func handleSendKeys(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	var req sendKeysRequest
	if err := decodeBody(r, &req); err != nil {
		return err
	}
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	if err := sc.Exec.SendKeys(r.Context(), ref, req.Text); err != nil {
		return err
	}
	writeValue(rw, nil)
	return nil
}

func handleElementText(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	text, err := sc.Exec.ElementText(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, text)
	return nil
}

func handleTagName(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	name, err := sc.Exec.TagName(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, name)
	return nil
}

func handleAttribute(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	val, err := sc.Exec.Attribute(r.Context(), ref, r.PathValue("name"))
	if err != nil {
		return err
	}
	writeValue(rw, val)
	return nil
}

func handleProperty(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	val, err := sc.Exec.Property(r.Context(), ref, r.PathValue("name"))
	if err != nil {
		return err
	}
	writeValue(rw, val)
	return nil
}

func handleCSSValue(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	val, err := sc.Exec.CSSValue(r.Context(), ref, r.PathValue("property_name"))
	if err != nil {
		return err
	}
	writeValue(rw, val)
	return nil
}

func handleElementRect(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	rect, err := sc.Exec.Rect(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, rect)
	return nil
}

func handleSelected(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	selected, err := sc.Exec.Selected(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, selected)
	return nil
}

func handleDisplayed(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	displayed, err := sc.Exec.Displayed(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, displayed)
	return nil
}

func handleEnabled(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	enabled, err := sc.Exec.Enabled(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, enabled)
	return nil
}

func handleComputedRole(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	role, err := sc.Exec.ComputedRole(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, role)
	return nil
}

func handleComputedLabel(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	label, err := sc.Exec.ComputedLabel(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, label)
	return nil
}

func handleShadowRoot(d *Deps, rw http.ResponseWriter, r *http.Request) error {
	sc, err := d.session(r)
	if err != nil {
		return err
	}
	ref, err := sc.elementRef(r, "element_id")
	if err != nil {
		return err
	}
	shadow, err := sc.Exec.ShadowRoot(r.Context(), ref)
	if err != nil {
		return err
	}
	writeValue(rw, shadow.ShadowEnvelope())
	return nil
}
