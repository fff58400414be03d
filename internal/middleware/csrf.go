package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"
)

const csrfCookieName = "csrf_token"

// CSRF issues a CSRF cookie and verifies modifying requests carry the token
// in the X-CSRF-Token header (double submit cookie).
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Tie token to session: use per-session token from session data
		s := GetSession(r)
		token := s.CSRFToken
		if token == "" {
			token = newCSRFToken()
			s.CSRFToken = token
			s.MarkDirty()
		}

		needSet := true
		if c, err := r.Cookie(csrfCookieName); err == nil && c.Value == token {
			needSet = false
		}
		if needSet {
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: false,
				Secure:   sessionSecure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(24 * time.Hour),
			})
		}

		if !isSafeMethod(r.Method) {
			hdr := r.Header.Get("X-CSRF-Token")
			if hdr == "" {
				hdr = r.PostFormValue("csrf_token")
			}
			if hdr == "" || hdr != token {
				rejectCSRF(w, r)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// rejectCSRF answers a failed token check. htmx callers get a JSON body so
// the front-end error hook can surface the message; plain form posts get the
// usual text error.
func rejectCSRF(w http.ResponseWriter, r *http.Request) {
	const msg = "invalid CSRF token"
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
		return
	}
	http.Error(w, msg, http.StatusForbidden)
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
