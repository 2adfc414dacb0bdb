package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiateLocale(t *testing.T) {
	// Cookie wins over the header.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "ar"})
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "ar", NegotiateLocale(req, "en"))

	// Unsupported cookie falls through to the header.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "locale", Value: "fr"})
	req.Header.Set("Accept-Language", "ar-EG,ar;q=0.9")
	assert.Equal(t, "ar", NegotiateLocale(req, "en"))

	// Nothing usable: the configured fallback.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE")
	assert.Equal(t, "en", NegotiateLocale(req, "en"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "ar", NegotiateLocale(req, "ar"))
}

func TestLocaleMiddlewareHeadersAndContext(t *testing.T) {
	var seen *LocaleInfo
	handler := LocaleMiddleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetLocaleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ar")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
	assert.Equal(t, "rtl", rec.Header().Get("X-Text-Direction"))
	assert.Equal(t, "ar", seen.Locale)
	assert.Equal(t, "rtl", seen.Direction)

	// English is left-to-right.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	assert.Equal(t, "ltr", rec.Header().Get("X-Text-Direction"))
}
