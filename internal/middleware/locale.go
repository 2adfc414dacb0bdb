package middleware

import (
	"context"
	"net/http"
	"strings"
)

// SupportedLocales lists the UI languages the platform ships with.
var SupportedLocales = []string{"en", "ar"}

const localeCookieName = "locale"

type localeContextKey string

const localeKey localeContextKey = "locale"

// LocaleInfo carries the negotiated language and its text direction.
// Presentation only: nothing in the core may branch on it.
type LocaleInfo struct {
	Locale    string
	Direction string
}

func isSupported(locale string) bool {
	for _, l := range SupportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

func directionFor(locale string) string {
	if locale == "ar" {
		return "rtl"
	}
	return "ltr"
}

// NegotiateLocale resolves the request locale: cookie first, then the
// Accept-Language prefix, then the configured fallback.
func NegotiateLocale(r *http.Request, fallback string) string {
	if cookie, err := r.Cookie(localeCookieName); err == nil && isSupported(cookie.Value) {
		return cookie.Value
	}

	header := r.Header.Get("Accept-Language")
	if len(header) >= 2 {
		if prefix := strings.ToLower(header[:2]); isSupported(prefix) {
			return prefix
		}
	}

	return fallback
}

// LocaleMiddleware negotiates the locale for every request, stores it in
// the context, and advertises it in the response headers.
func LocaleMiddleware(fallback string) func(http.Handler) http.Handler {
	if !isSupported(fallback) {
		fallback = "en"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := NegotiateLocale(r, fallback)
			info := &LocaleInfo{Locale: locale, Direction: directionFor(locale)}

			w.Header().Set("Content-Language", info.Locale)
			w.Header().Set("X-Text-Direction", info.Direction)

			ctx := context.WithValue(r.Context(), localeKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLocaleFromContext returns the negotiated locale info, defaulting to
// English when the middleware did not run.
func GetLocaleFromContext(ctx context.Context) *LocaleInfo {
	if info, ok := ctx.Value(localeKey).(*LocaleInfo); ok {
		return info
	}
	return &LocaleInfo{Locale: "en", Direction: "ltr"}
}

// SetLocaleCookie persists a locale switch for a year.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     localeCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	})
}
