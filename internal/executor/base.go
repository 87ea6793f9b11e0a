package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nativewd/webdriverd/internal/bridge"
	"github.com/nativewd/webdriverd/internal/locator"
	"github.com/nativewd/webdriverd/internal/wderr"
	"github.com/nativewd/webdriverd/internal/webdriver"
)

// BaseExecutor implements Executor entirely in terms of Bridge.Evaluate.
// Concrete per-platform backends embed BaseExecutor and override only the
// methods that need a native capability (screenshots, print, window
// management, raw key/pointer injection) — the Go analogue of the
// original's default-methods-on-a-trait design, expressed as struct
// embedding with selective method shadowing.
type BaseExecutor struct {
	Bridge   bridge.Evaluator
	Async    *bridge.AsyncRegistry
	Log      logrus.FieldLogger
	Window   string
	Timeouts webdriver.Timeouts
	Frames   []webdriver.FrameId
	Elements *webdriver.ElementStore
}

func (b *BaseExecutor) scriptTimeout() time.Duration {
	return time.Duration(b.Timeouts.ScriptMs) * time.Millisecond
}

// eval runs body (already frame-wrapped by the caller when appropriate)
// and unmarshals the JSON result into out.
func (b *BaseExecutor) eval(ctx context.Context, script string, out interface{}) error {
	raw, err := b.Bridge.Evaluate(ctx, script, b.scriptTimeout())
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return wderr.New(wderr.UnknownError, err.Error())
	}
	return nil
}

func (b *BaseExecutor) evalFramed(ctx context.Context, body string, out interface{}) error {
	return b.eval(ctx, wrapForFrame(b.Frames, body), out)
}

func jsEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// ---- Navigation ----

func (b *BaseExecutor) Navigate(ctx context.Context, url string) error {
	return b.evalFramed(ctx, fmt.Sprintf("window.location.href = '%s'; return null;", jsEscape(url)), nil)
}

func (b *BaseExecutor) GetURL(ctx context.Context) (string, error) {
	var out string
	err := b.evalFramed(ctx, "return window.location.href;", &out)
	return out, err
}

func (b *BaseExecutor) GetTitle(ctx context.Context) (string, error) {
	var out string
	err := b.evalFramed(ctx, "return document.title;", &out)
	return out, err
}

func (b *BaseExecutor) Back(ctx context.Context) error {
	return b.evalFramed(ctx, "window.history.back(); return null;", nil)
}

func (b *BaseExecutor) Forward(ctx context.Context) error {
	return b.evalFramed(ctx, "window.history.forward(); return null;", nil)
}

func (b *BaseExecutor) Refresh(ctx context.Context) error {
	return b.evalFramed(ctx, "window.location.reload(); return null;", nil)
}

// ---- Document ----

func (b *BaseExecutor) GetSource(ctx context.Context) (string, error) {
	var out string
	err := b.evalFramed(ctx, "return document.documentElement.outerHTML;", &out)
	return out, err
}

// ---- Element find ----

func (b *BaseExecutor) scopeExpr(scope ElementScope) (ctx locator.Context, preamble string) {
	switch scope.Context {
	case locator.ContextParent:
		return locator.ContextParent, fmt.Sprintf("var parent = window.%s; if (!document.contains(parent)) { throw 'stale element reference'; }", scope.Parent.JSRef)
	case locator.ContextShadow:
		return locator.ContextShadow, fmt.Sprintf("var shadow = window.%s;", scope.Shadow.JSRef)
	default:
		return locator.ContextDocument, ""
	}
}

func (b *BaseExecutor) FindElement(ctx context.Context, strategy locator.Strategy, value string, from ElementScope) (webdriver.ElementRef, error) {
	lctx, preamble := b.scopeExpr(from)
	expr, err := locator.Compile(strategy, value, lctx)
	if err != nil {
		return webdriver.ElementRef{}, err
	}
	ref := b.Elements.Store()
	body := fmt.Sprintf("%s var found = (%s); if (!found) { return false; } window.%s = found; return true;", preamble, expr, ref.JSRef)

	var ok bool
	if err := b.evalFramed(ctx, body, &ok); err != nil {
		return webdriver.ElementRef{}, err
	}
	if !ok {
		return webdriver.ElementRef{}, wderr.NoSuchElementErr()
	}
	return ref, nil
}

func (b *BaseExecutor) FindElements(ctx context.Context, strategy locator.Strategy, value string, from ElementScope) ([]webdriver.ElementRef, error) {
	lctx, preamble := b.scopeExpr(from)
	expr, err := locator.CompileAll(strategy, value, lctx)
	if err != nil {
		return nil, err
	}

	body := fmt.Sprintf("%s var found = (%s); var n = found.length; for (var i=0;i<n;i++){ window['__wd_temp_'+i] = found[i]; } return n;", preamble, expr)
	var count int
	if err := b.evalFramed(ctx, body, &count); err != nil {
		return nil, err
	}

	refs := make([]webdriver.ElementRef, 0, count)
	var copyStmts strings.Builder
	for i := 0; i < count; i++ {
		ref := b.Elements.Store()
		refs = append(refs, ref)
		copyStmts.WriteString(fmt.Sprintf("window.%s = window['__wd_temp_%d']; delete window['__wd_temp_%d'];", ref.JSRef, i, i))
	}
	if count > 0 {
		if err := b.evalFramed(ctx, copyStmts.String()+" return null;", nil); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

// elementGuard emits the stale-check every element-scoped script prefixes
// its access with.
func (b *BaseExecutor) elementGuard(ref webdriver.ElementRef) string {
	return fmt.Sprintf("var el = window.%s; if (!el || !document.contains(el)) { throw 'stale element reference'; }", ref.JSRef)
}

// ---- Element inspection ----

func (b *BaseExecutor) ElementText(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	var out string
	err := b.evalFramed(ctx, b.elementGuard(ref)+" return el.textContent;", &out)
	return out, err
}

func (b *BaseExecutor) TagName(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	var out string
	err := b.evalFramed(ctx, b.elementGuard(ref)+" return el.tagName.toLowerCase();", &out)
	return out, err
}

func (b *BaseExecutor) Attribute(ctx context.Context, ref webdriver.ElementRef, name string) (*string, error) {
	n := jsEscape(name)
	body := b.elementGuard(ref) + fmt.Sprintf(`
		var name = '%s';
		if (name === 'value' && (el.tagName === 'INPUT' || el.tagName === 'TEXTAREA')) { return el.value; }
		if (name === 'checked' && (el.type === 'checkbox' || el.type === 'radio')) { return el.checked ? 'true' : null; }
		if (name === 'selected' && el.tagName === 'OPTION') { return el.selected ? 'true' : null; }
		return el.hasAttribute(name) ? el.getAttribute(name) : null;
	`, n)
	var out *string
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) Property(ctx context.Context, ref webdriver.ElementRef, name string) (interface{}, error) {
	var out interface{}
	body := b.elementGuard(ref) + fmt.Sprintf(" return el['%s'];", jsEscape(name))
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) CSSValue(ctx context.Context, ref webdriver.ElementRef, prop string) (string, error) {
	var out string
	body := b.elementGuard(ref) + fmt.Sprintf(" return window.getComputedStyle(el).getPropertyValue('%s');", jsEscape(prop))
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) Rect(ctx context.Context, ref webdriver.ElementRef) (ElementRect, error) {
	var out ElementRect
	body := b.elementGuard(ref) + `
		var r = el.getBoundingClientRect();
		return { x: r.left + window.pageXOffset, y: r.top + window.pageYOffset, width: r.width, height: r.height };
	`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) Displayed(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	var out bool
	body := b.elementGuard(ref) + `
		var style = window.getComputedStyle(el);
		return style.display !== 'none' && style.visibility !== 'hidden' && el.offsetParent !== null;
	`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) Enabled(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	var out bool
	err := b.evalFramed(ctx, b.elementGuard(ref)+" return !el.disabled;", &out)
	return out, err
}

func (b *BaseExecutor) Selected(ctx context.Context, ref webdriver.ElementRef) (bool, error) {
	var out bool
	body := b.elementGuard(ref) + `
		if (el.type === 'checkbox' || el.type === 'radio') { return !!el.checked; }
		if (el.tagName === 'OPTION') { return !!el.selected; }
		return false;
	`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) ComputedRole(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	var out string
	body := b.elementGuard(ref) + `
		if (el.hasAttribute('role')) { return el.getAttribute('role'); }
		if (el.computedRole) { return el.computedRole; }
		var implicit = { a: 'link', button: 'button', input: 'textbox', select: 'listbox', textarea: 'textbox', img: 'img', h1: 'heading' };
		return implicit[el.tagName.toLowerCase()] || 'generic';
	`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) ComputedLabel(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	var out string
	body := b.elementGuard(ref) + `
		if (el.computedName) { return el.computedName; }
		var labelledby = el.getAttribute('aria-labelledby');
		if (labelledby) {
			return labelledby.split(/\s+/).map(function(id){ var n = document.getElementById(id); return n ? n.textContent.trim() : ''; }).join(' ').trim();
		}
		if (el.hasAttribute('aria-label')) { return el.getAttribute('aria-label'); }
		if (el.labels && el.labels.length) { return el.labels[0].textContent.trim(); }
		if (el.hasAttribute('placeholder')) { return el.getAttribute('placeholder'); }
		if (el.tagName === 'BUTTON' || el.tagName === 'A') { return el.textContent.trim(); }
		if (el.tagName === 'IMG' && el.hasAttribute('alt')) { return el.getAttribute('alt'); }
		if (el.hasAttribute('title')) { return el.getAttribute('title'); }
		return el.textContent.trim();
	`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

// ---- Element mutation ----

func (b *BaseExecutor) Click(ctx context.Context, ref webdriver.ElementRef) error {
	body := b.elementGuard(ref) + `
		el.scrollIntoView({ block: 'center', inline: 'center' });
		el.click();
		el.focus();
		return null;
	`
	return b.evalFramed(ctx, body, nil)
}

func (b *BaseExecutor) Clear(ctx context.Context, ref webdriver.ElementRef) error {
	body := b.elementGuard(ref) + `
		if (el.isContentEditable) {
			el.innerHTML = '';
		} else {
			var proto = el.tagName === 'TEXTAREA' ? window.HTMLTextAreaElement.prototype : window.HTMLInputElement.prototype;
			var setter = Object.getOwnPropertyDescriptor(proto, 'value').set;
			setter.call(el, '');
			el.dispatchEvent(new InputEvent('input', { bubbles: true, inputType: 'deleteContentBackward' }));
			el.dispatchEvent(new Event('change', { bubbles: true }));
		}
		return null;
	`
	return b.evalFramed(ctx, body, nil)
}

func (b *BaseExecutor) SendKeys(ctx context.Context, ref webdriver.ElementRef, text string) error {
	t := jsEscape(text)
	body := b.elementGuard(ref) + fmt.Sprintf(`
		var text = '%s';
		if (el.isContentEditable) {
			el.focus();
			document.execCommand('insertText', false, text);
		} else {
			var proto = el.tagName === 'TEXTAREA' ? window.HTMLTextAreaElement.prototype : window.HTMLInputElement.prototype;
			var setter = Object.getOwnPropertyDescriptor(proto, 'value').set;
			setter.call(el, el.value + text);
			el.dispatchEvent(new InputEvent('input', { bubbles: true, inputType: 'insertText', data: text }));
			el.dispatchEvent(new Event('change', { bubbles: true }));
		}
		return null;
	`, t)
	return b.evalFramed(ctx, body, nil)
}

// ---- Active element ----

func (b *BaseExecutor) ActiveElement(ctx context.Context) (webdriver.ElementRef, error) {
	ref := b.Elements.Store()
	body := fmt.Sprintf(`
		var active = document.activeElement;
		if (!active || active === document.body) { return false; }
		window.%s = active;
		return true;
	`, ref.JSRef)
	var ok bool
	if err := b.evalFramed(ctx, body, &ok); err != nil {
		return webdriver.ElementRef{}, err
	}
	if !ok {
		return webdriver.ElementRef{}, wderr.NoSuchElementErr()
	}
	return ref, nil
}

// ---- Shadow DOM ----

func (b *BaseExecutor) ShadowRoot(ctx context.Context, ref webdriver.ElementRef) (webdriver.ElementRef, error) {
	shadow := b.Elements.Store()
	body := b.elementGuard(ref) + fmt.Sprintf(`
		if (!el.shadowRoot) { return false; }
		window.%s = el.shadowRoot;
		return true;
	`, shadow.JSRef)
	var ok bool
	if err := b.evalFramed(ctx, body, &ok); err != nil {
		return webdriver.ElementRef{}, err
	}
	if !ok {
		return webdriver.ElementRef{}, wderr.NoSuchShadowRootErr()
	}
	return shadow, nil
}

func (b *BaseExecutor) FindElementInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) (webdriver.ElementRef, error) {
	return b.FindElement(ctx, strategy, value, FromShadowScope(shadow))
}

func (b *BaseExecutor) FindElementsInShadow(ctx context.Context, strategy locator.Strategy, value string, shadow webdriver.ElementRef) ([]webdriver.ElementRef, error) {
	return b.FindElements(ctx, strategy, value, FromShadowScope(shadow))
}

// ---- Scripts ----

// resolveArgs replaces any arg object carrying the W3C element key with the
// live in-page element variable reference, for embedding into a generated
// call expression.
func (b *BaseExecutor) resolveArgs(args []interface{}) (string, error) {
	var parts []string
	for _, a := range args {
		if m, ok := a.(map[string]interface{}); ok {
			if id, ok := m[webdriver.ElementKey].(string); ok {
				ref, ok := b.Elements.Get(id)
				if !ok {
					return "", wderr.StaleElementErr()
				}
				parts = append(parts, "window."+ref.JSRef)
				continue
			}
		}
		data, err := json.Marshal(a)
		if err != nil {
			return "", wderr.New(wderr.InvalidArgument, err.Error())
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, ", "), nil
}

func (b *BaseExecutor) ExecuteSync(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	argsExpr, err := b.resolveArgs(args)
	if err != nil {
		return nil, err
	}
	body := fmt.Sprintf("return (function(){ %s })(%s);", script, argsExpr)
	var out interface{}
	err = b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) ExecuteAsync(ctx context.Context, script string, args []interface{}) (interface{}, error) {
	argsExpr, err := b.resolveArgs(args)
	if err != nil {
		return nil, err
	}
	id, recv := b.Async.Register()

	// The wrapper pushes a "done" callback as the last argument; invoking it
	// hands {id, result?, error?} to the platform-specific host hook, which
	// in this backend is simulated by directly completing the registry
	// (there is no real native message channel to round-trip through).
	callback := fmt.Sprintf(`function(result, error) { __wd_async_complete('%s', result, error); }`, id)
	callArgs := callback
	if argsExpr != "" {
		callArgs = argsExpr + ", " + callback
	}
	body := fmt.Sprintf("(function(){ %s })(%s);", script, callArgs)

	if err := b.installAsyncCompleter(ctx, id, recv); err != nil {
		b.Async.Cancel(id)
		return nil, err
	}

	if _, err := b.Bridge.Evaluate(ctx, body, b.scriptTimeout()); err != nil {
		b.Async.Cancel(id)
		return nil, err
	}

	select {
	case res := <-recv:
		return bridge.Resolve(res.Value, res.Err)
	case <-time.After(b.scriptTimeout()):
		b.Async.Cancel(id)
		return nil, wderr.New(wderr.ScriptTimeout, "async script did not call its callback within the configured timeout")
	case <-ctx.Done():
		b.Async.Cancel(id)
		return nil, wderr.New(wderr.UnknownError, ctx.Err().Error())
	}
}

// installAsyncCompleter is a seam for backends that route the callback
// through a real native host hook instead of an in-process function. The
// default does nothing: NewBaseExecutor has already bound the
// __wd_async_complete global once per window.
func (b *BaseExecutor) installAsyncCompleter(ctx context.Context, id string, recv <-chan bridge.AsyncResult) error {
	_ = recv // the default backend resolves completions via the registry itself
	return nil
}

// ---- Screenshots (native-only by default) ----

func (b *BaseExecutor) Screenshot(ctx context.Context) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "screenshot requires a native snapshot capability")
}

func (b *BaseExecutor) ElementScreenshot(ctx context.Context, ref webdriver.ElementRef) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "element screenshot requires a native snapshot capability")
}

// ---- Pointer actions ----

func (b *BaseExecutor) DispatchPointer(ctx context.Context, ev PointerEventType, x, y int32, button int) error {
	var eventName, buttons string
	switch ev {
	case PointerDown:
		eventName, buttons = "mousedown", fmt.Sprintf("%d", 1<<uint(button))
	case PointerUp:
		eventName, buttons = "mouseup", "0"
	default:
		eventName, buttons = "mousemove", "0"
	}
	body := fmt.Sprintf(`
		var target = document.elementFromPoint(%d, %d) || document.body;
		target.dispatchEvent(new MouseEvent('%s', { bubbles: true, cancelable: true, clientX: %d, clientY: %d, button: %d, buttons: %s }));
		return null;
	`, x, y, eventName, x, y, button, buttons)
	return b.evalFramed(ctx, body, nil)
}

func (b *BaseExecutor) DispatchWheel(ctx context.Context, deltaX, deltaY float64) error {
	body := fmt.Sprintf(`
		document.body.dispatchEvent(new WheelEvent('wheel', { bubbles: true, deltaX: %f, deltaY: %f }));
		window.scrollBy(%f, %f);
		return null;
	`, deltaX, deltaY, deltaX, deltaY)
	return b.evalFramed(ctx, body, nil)
}

// ---- Window (desktop-only by default) ----

func (b *BaseExecutor) GetWindowRect(ctx context.Context) (WindowRect, error) {
	var out WindowRect
	body := `return { x: window.screenX, y: window.screenY, width: window.outerWidth, height: window.outerHeight };`
	err := b.evalFramed(ctx, body, &out)
	return out, err
}

func (b *BaseExecutor) SetWindowRect(ctx context.Context, rect WindowRect) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "setting window rect requires a native window handle")
}

func (b *BaseExecutor) Maximize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "maximize requires a native window handle")
}

func (b *BaseExecutor) Minimize(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "minimize requires a native window handle")
}

func (b *BaseExecutor) Fullscreen(ctx context.Context) (WindowRect, error) {
	return WindowRect{}, wderr.New(wderr.UnsupportedOperation, "fullscreen requires a native window handle")
}

// ---- Cookies ----

func (b *BaseExecutor) GetCookies(ctx context.Context) ([]Cookie, error) {
	var pairs [][2]string
	body := `
		return document.cookie.split(';').filter(function(s){ return s.trim().length > 0; }).map(function(kv){
			var idx = kv.indexOf('=');
			return [kv.slice(0, idx).trim(), kv.slice(idx+1)];
		});
	`
	if err := b.evalFramed(ctx, body, &pairs); err != nil {
		return nil, err
	}
	out := make([]Cookie, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Cookie{Name: p[0], Value: p[1]})
	}
	return out, nil
}

func (b *BaseExecutor) GetCookie(ctx context.Context, name string) (Cookie, error) {
	cookies, err := b.GetCookies(ctx)
	if err != nil {
		return Cookie{}, err
	}
	for _, c := range cookies {
		if c.Name == name {
			return c, nil
		}
	}
	return Cookie{}, wderr.New(wderr.NoSuchCookie, fmt.Sprintf("no cookie named %q", name))
}

func cookieAttrs(c Cookie) string {
	var sb strings.Builder
	if c.Path != nil {
		sb.WriteString("; path=" + *c.Path)
	}
	if c.Domain != nil {
		sb.WriteString("; domain=" + *c.Domain)
	}
	if c.Expiry != nil {
		sb.WriteString(fmt.Sprintf("; expires=%s", time.Unix(*c.Expiry, 0).UTC().Format(time.RFC1123)))
	}
	if c.Secure {
		sb.WriteString("; secure")
	}
	return sb.String()
}

func (b *BaseExecutor) AddCookie(ctx context.Context, c Cookie) error {
	body := fmt.Sprintf("document.cookie = '%s=%s%s'; return null;", jsEscape(c.Name), jsEscape(c.Value), jsEscape(cookieAttrs(c)))
	return b.evalFramed(ctx, body, nil)
}

func (b *BaseExecutor) DeleteCookie(ctx context.Context, name string) error {
	body := fmt.Sprintf("document.cookie = '%s=; expires=Thu, 01 Jan 1970 00:00:00 GMT'; return null;", jsEscape(name))
	return b.evalFramed(ctx, body, nil)
}

func (b *BaseExecutor) DeleteAllCookies(ctx context.Context) error {
	cookies, err := b.GetCookies(ctx)
	if err != nil {
		return err
	}
	for _, c := range cookies {
		if err := b.DeleteCookie(ctx, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// ---- Print (native-only by default) ----

func (b *BaseExecutor) Print(ctx context.Context, opts PrintOptions) (string, error) {
	return "", wderr.New(wderr.UnsupportedOperation, "PDF print requires a native rendering capability")
}
