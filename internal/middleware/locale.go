package middleware

import (
	"context"
	"net/http"
	"strings"

	"dommatos.com/tienda-web/internal/i18n"
)

const localeCookieName = "lang"

// Locale resolves the preferred language and stores it in the session and the
// `lang` cookie. Resolution order: explicit ?lang= override, session, cookie,
// Accept-Language, bundle fallback.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// make fallback available to request context for helpers
			ctx := context.WithValue(r.Context(), ctxKeyLocaleFB, bundle.Fallback())
			r = r.WithContext(ctx)
			s := GetSession(r)
			if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && bundle.IsSupported(q) {
				if s.Locale != q {
					s.Locale = q
					s.MarkDirty()
				}
				setLocaleCookie(w, q)
			} else if s.Locale == "" {
				if c, err := r.Cookie(localeCookieName); err == nil && bundle.IsSupported(strings.ToLower(c.Value)) {
					s.Locale = strings.ToLower(c.Value)
				} else {
					s.Locale = bundle.Resolve(r.Header.Get("Accept-Language"))
				}
				s.MarkDirty()
			}
			if s.Locale != "" {
				w.Header().Set("Content-Language", s.Locale)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetLocale persists a new language choice on the session and cookie.
func SetLocale(w http.ResponseWriter, r *http.Request, lang string) {
	s := GetSession(r)
	if s.Locale != lang {
		s.Locale = lang
		s.MarkDirty()
	}
	setLocaleCookie(w, lang)
}

func setLocaleCookie(w http.ResponseWriter, lang string) {
	http.SetCookie(w, &http.Cookie{
		Name:     localeCookieName,
		Value:    lang,
		Path:     "/",
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   365 * 24 * 60 * 60,
	})
}

// Lang returns the current language from the session, falling back to the
// bundle default.
func Lang(r *http.Request) string {
	if s := GetSession(r); s != nil && s.Locale != "" {
		return s.Locale
	}
	if v := r.Context().Value(ctxKeyLocaleFB); v != nil {
		if fb, ok := v.(string); ok && fb != "" {
			return fb
		}
	}
	return "es"
}

// VaryLocale sets the Vary header for Accept-Language on dynamic responses.
func VaryLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r)
	})
}
