package engine

import (
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// consentCookie skips the EU consent interstitial on youtube.com.
const consentCookie = "CONSENT=YES+cb; SOCS=CAI"

// ChromeHeaders returns the go-stealth Chrome header set.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }

// applyBrowserHeaders makes req look like a desktop Chrome page load.
// Headers already set on req win over the Chrome defaults.
func applyBrowserHeaders(req *http.Request, acceptLanguage string) {
	for k, v := range ChromeHeaders() {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	// net/http only decodes gzip transparently when it set Accept-Encoding itself.
	req.Header.Del("Accept-Encoding")
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	if req.URL != nil && isYouTubeHost(req.URL.Host) {
		req.Header.Set("Cookie", consentCookie)
	}
}

func isYouTubeHost(host string) bool {
	return host == "www.youtube.com" || host == "youtube.com" || host == "m.youtube.com"
}
