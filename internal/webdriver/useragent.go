package webdriver

import "strings"

// ParseUserAgent extracts a (browserName, browserVersion) pair from a
// navigator.userAgent string, following the ordered rules session creation
// uses to fill in the capabilities response: Edge, then Android/Chrome, then
// Linux/WebKitGTK, then macOS/WebKit, falling back to a generic webview.
func ParseUserAgent(ua string) (name, version string) {
	switch {
	case strings.Contains(ua, "Edg/"):
		return "msedge", afterToken(ua, "Edg/", "")
	case strings.Contains(ua, "Android"):
		return "chrome", afterToken(ua, "Chrome/", "")
	case strings.Contains(ua, "Linux") || strings.Contains(ua, "X11"):
		return "WebKitGTK", afterToken(ua, "AppleWebKit/", "")
	case strings.Contains(ua, "Macintosh") && strings.Contains(ua, "AppleWebKit/"):
		return "webkit", afterToken(ua, "AppleWebKit/", "(")
	default:
		return "webview", "unknown"
	}
}

// afterToken returns the substring of ua following the first occurrence of
// token, stopping at the first space and, if stop is non-empty, at the
// first occurrence of stop as well.
func afterToken(ua, token, stop string) string {
	idx := strings.Index(ua, token)
	if idx < 0 {
		return "unknown"
	}
	rest := ua[idx+len(token):]
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}
	if stop != "" {
		if sp := strings.Index(rest, stop); sp >= 0 {
			rest = rest[:sp]
		}
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "unknown"
	}
	return rest
}
