package executor

import (
	"context"
	"fmt"
	"unicode"
)

// specialKey is a W3C private-use-area codepoint's DOM KeyboardEvent triple.
type specialKey struct {
	key     string
	code    string
	keyCode int
}

// The codepoints below are the W3C "normalized" key values for non-printable
// keys, drawn from the Unicode private-use area (U+E000 block).
const (
	keyEnter      rune = '\uE007'
	keyBackspace  rune = '\uE003'
	keyTab        rune = '\uE004'
	keyNumpadEnt  rune = '\uE006'
	keyEscape     rune = '\uE00C'
	keySpace      rune = '\uE00D'
	keyArrowLeft  rune = '\uE012'
	keyArrowUp    rune = '\uE013'
	keyArrowRight rune = '\uE014'
	keyArrowDown  rune = '\uE015'
	keyDelete     rune = '\uE017'
	keyF1         rune = '\uE031'
	keyF12        rune = '\uE03C'
	keyShift      rune = '\uE008'
	keyControl    rune = '\uE009'
	keyAlt        rune = '\uE00A'
	keyMeta       rune = '\uE03D'
)

// specialKeys maps the normalized key actions send to the key/code/keyCode
// triple a browser would produce for the equivalent physical key.
// Codepoints not present here are treated as regular, printable keys.
var specialKeys = map[rune]specialKey{
	keyEnter:      {"Enter", "Enter", 13},
	keyBackspace:  {"Backspace", "Backspace", 8},
	keyTab:        {"Tab", "Tab", 9},
	keyNumpadEnt:  {"Enter", "NumpadEnter", 13},
	keyEscape:     {"Escape", "Escape", 27},
	keySpace:      {" ", "Space", 32},
	keyArrowLeft:  {"ArrowLeft", "ArrowLeft", 37},
	keyArrowUp:    {"ArrowUp", "ArrowUp", 38},
	keyArrowRight: {"ArrowRight", "ArrowRight", 39},
	keyArrowDown:  {"ArrowDown", "ArrowDown", 40},
	keyDelete:     {"Delete", "Delete", 46},
	keyShift:      {"Shift", "ShiftLeft", 16},
	keyControl:    {"Control", "ControlLeft", 17},
	keyAlt:        {"Alt", "AltLeft", 18},
	keyMeta:       {"Meta", "MetaLeft", 91},
}

func init() {
	for i := 0; i <= int(keyF12-keyF1); i++ {
		n := i + 1
		specialKeys[keyF1+rune(i)] = specialKey{fmt.Sprintf("F%d", n), fmt.Sprintf("F%d", n), 112 + i}
	}
}

// ModifierCodepoint reports whether r is one of the four PUA codepoints the
// action dispatcher tracks as held modifier state, rather than forwarding
// as an ordinary key event.
func ModifierCodepoint(r rune) bool {
	switch r {
	case keyShift, keyControl, keyAlt, keyMeta:
		return true
	}
	return false
}

// ApplyModifier updates mods in place for a down/up transition on one of the
// four PUA modifier codepoints. Callers should check ModifierCodepoint first.
func ApplyModifier(mods *ModifierState, r rune, isDown bool) {
	switch r {
	case keyShift:
		mods.Shift = isDown
	case keyControl:
		mods.Ctrl = isDown
	case keyAlt:
		mods.Alt = isDown
	case keyMeta:
		mods.Meta = isDown
	}
}

func regularKeyCode(ch rune) string {
	upper := unicode.ToUpper(ch)
	switch {
	case unicode.IsLetter(ch) && ch <= unicode.MaxASCII:
		return fmt.Sprintf("Key%c", upper)
	case unicode.IsDigit(ch) && ch <= unicode.MaxASCII:
		return fmt.Sprintf("Digit%c", ch)
	default:
		return string(ch)
	}
}

func boolJS(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return ' ', false
}

func isArrowKey(key string) bool {
	switch key {
	case "ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight":
		return true
	}
	return false
}

// DispatchKey sends one keydown or keyup event for key (a single W3C action
// key value — either a literal character or a PUA special-key codepoint),
// honoring mods as the currently-held modifier state.
func (b *BaseExecutor) DispatchKey(ctx context.Context, key string, isDown bool, mods ModifierState) error {
	r, _ := firstRune(key)
	eventType := "keyup"
	if isDown {
		eventType = "keydown"
	}

	sk, special := specialKeys[r]
	if !special {
		code := regularKeyCode(r)
		return b.dispatchRegularKey(ctx, key, code, isDown, mods)
	}

	switch {
	case isDown && (sk.key == "Backspace" || sk.key == "Delete"):
		return b.evalFramed(ctx, deleteKeyScript(sk), nil)
	case isDown && isArrowKey(sk.key):
		return b.evalFramed(ctx, arrowKeyScript(sk), nil)
	default:
		body := fmt.Sprintf(`
			var event = new KeyboardEvent('%s', { key: '%s', code: '%s', keyCode: %d, which: %d, bubbles: true, cancelable: true });
			var activeEl = document.activeElement || document.body;
			activeEl.dispatchEvent(event);
			return true;
		`, eventType, jsEscape(sk.key), jsEscape(sk.code), sk.keyCode, sk.keyCode)
		return b.evalFramed(ctx, body, nil)
	}
}

func deleteKeyScript(sk specialKey) string {
	return fmt.Sprintf(`(function() {
		var activeEl = document.activeElement || document.body;
		var keydownEvent = new KeyboardEvent('keydown', { key: '%[1]s', code: '%[2]s', keyCode: %[3]d, which: %[3]d, bubbles: true, cancelable: true });
		activeEl.dispatchEvent(keydownEvent);

		if (activeEl.tagName === 'INPUT' || activeEl.tagName === 'TEXTAREA') {
			var nativeInputValueSetter = Object.getOwnPropertyDescriptor(
				activeEl.tagName === 'INPUT' ? window.HTMLInputElement.prototype : window.HTMLTextAreaElement.prototype,
				'value'
			).set;

			var currentValue = activeEl.value;
			var selStart = activeEl.selectionStart;
			var selEnd = activeEl.selectionEnd;
			var newValue, inputType;

			if (selStart !== selEnd) {
				newValue = currentValue.slice(0, selStart) + currentValue.slice(selEnd);
				inputType = 'deleteContentBackward';
				nativeInputValueSetter.call(activeEl, newValue);
				activeEl.setSelectionRange(selStart, selStart);
			} else if ('%[1]s' === 'Backspace' && selStart > 0) {
				newValue = currentValue.slice(0, selStart - 1) + currentValue.slice(selStart);
				inputType = 'deleteContentBackward';
				nativeInputValueSetter.call(activeEl, newValue);
				activeEl.setSelectionRange(selStart - 1, selStart - 1);
			} else if ('%[1]s' === 'Delete' && selStart < currentValue.length) {
				newValue = currentValue.slice(0, selStart) + currentValue.slice(selStart + 1);
				inputType = 'deleteContentForward';
				nativeInputValueSetter.call(activeEl, newValue);
				activeEl.setSelectionRange(selStart, selStart);
			} else {
				return true;
			}

			activeEl.dispatchEvent(new InputEvent('input', { bubbles: true, cancelable: true, inputType: inputType }));
		}
		return true;
	})()`, sk.key, sk.code, sk.keyCode)
}

func arrowKeyScript(sk specialKey) string {
	goForward := boolJS(sk.key == "ArrowDown" || sk.key == "ArrowRight")
	return fmt.Sprintf(`(function() {
		var activeEl = document.activeElement || document.body;
		var keydownEvent = new KeyboardEvent('keydown', { key: '%[1]s', code: '%[2]s', keyCode: %[3]d, which: %[3]d, bubbles: true, cancelable: true });
		activeEl.dispatchEvent(keydownEvent);

		if (activeEl.tagName === 'INPUT' && activeEl.type === 'radio' && activeEl.name) {
			var name = activeEl.name;
			var radios = Array.from(document.querySelectorAll("input[type='radio'][name='" + name + "']"));
			var currentIndex = radios.indexOf(activeEl);

			if (currentIndex !== -1 && radios.length > 1) {
				var nextIndex;
				if (%[4]s) {
					nextIndex = (currentIndex + 1) %% radios.length;
				} else {
					nextIndex = (currentIndex - 1 + radios.length) %% radios.length;
				}
				var nextRadio = radios[nextIndex];
				nextRadio.checked = true;
				nextRadio.focus();
				nextRadio.dispatchEvent(new Event('change', { bubbles: true }));
			}
		}
		return true;
	})()`, sk.key, sk.code, sk.keyCode, goForward)
}

// dispatchRegularKey handles any key that is not in the special-key table:
// select-all on Ctrl/Meta+A, value-appending on plain printable keydown, and
// a bare KeyboardEvent otherwise (keyup, or a keydown with a modifier held).
func (b *BaseExecutor) dispatchRegularKey(ctx context.Context, key, code string, isDown bool, mods ModifierState) error {
	r, _ := firstRune(key)
	keyCode := int(r)
	eventType := "keyup"
	if isDown {
		eventType = "keydown"
	}
	escapedKey := jsEscape(key)
	escapedCode := jsEscape(code)
	ctrlKey, metaKey, shiftKey, altKey := boolJS(mods.Ctrl), boolJS(mods.Meta), boolJS(mods.Shift), boolJS(mods.Alt)

	isSelectAll := isDown && (r == 'a' || r == 'A') && (mods.Ctrl || mods.Meta)

	var body string
	switch {
	case isSelectAll:
		body = fmt.Sprintf(`(function() {
			var activeEl = document.activeElement || document.body;
			var keydownEvent = new KeyboardEvent('keydown', { key: '%s', code: '%s', keyCode: %d, which: %d, ctrlKey: %s, metaKey: %s, shiftKey: %s, altKey: %s, bubbles: true, cancelable: true });
			activeEl.dispatchEvent(keydownEvent);
			if (activeEl.tagName === 'INPUT' || activeEl.tagName === 'TEXTAREA') {
				activeEl.select();
			} else {
				document.execCommand('selectAll', false, null);
			}
			return true;
		})()`, escapedKey, escapedCode, keyCode, keyCode, ctrlKey, metaKey, shiftKey, altKey)
	case isDown:
		body = fmt.Sprintf(`(function() {
			var activeEl = document.activeElement || document.body;
			var keydownEvent = new KeyboardEvent('keydown', { key: '%[1]s', code: '%[2]s', keyCode: %[3]d, which: %[3]d, ctrlKey: %[4]s, metaKey: %[5]s, shiftKey: %[6]s, altKey: %[7]s, bubbles: true, cancelable: true });
			activeEl.dispatchEvent(keydownEvent);

			if (!%[4]s && !%[5]s && !%[7]s) {
				if (activeEl.tagName === 'INPUT' || activeEl.tagName === 'TEXTAREA') {
					var nativeInputValueSetter = Object.getOwnPropertyDescriptor(
						activeEl.tagName === 'INPUT' ? window.HTMLInputElement.prototype : window.HTMLTextAreaElement.prototype,
						'value'
					).set;
					var newValue = activeEl.value + '%[1]s';
					nativeInputValueSetter.call(activeEl, newValue);
					activeEl.dispatchEvent(new InputEvent('input', { bubbles: true, cancelable: true, inputType: 'insertText', data: '%[1]s' }));
				}
			}
			return true;
		})()`, escapedKey, escapedCode, keyCode, ctrlKey, metaKey, shiftKey, altKey)
	default:
		body = fmt.Sprintf(`(function() {
			var activeEl = document.activeElement || document.body;
			var event = new KeyboardEvent('%s', { key: '%s', code: '%s', keyCode: %d, which: %d, ctrlKey: %s, metaKey: %s, shiftKey: %s, altKey: %s, bubbles: true, cancelable: true });
			activeEl.dispatchEvent(event);
			return true;
		})()`, eventType, escapedKey, escapedCode, keyCode, keyCode, ctrlKey, metaKey, shiftKey, altKey)
	}
	return b.evalFramed(ctx, body, nil)
}
