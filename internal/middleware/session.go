package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const sessionCookieName = "TIENDA_WEB_SESSION"

// SessionData is the lightweight visitor state carried in the signed cookie.
// The cart lives in its own cookie; the session only tracks identity, locale
// preference, and the CSRF token.
type SessionData struct {
	ID        string    `json:"id"`
	Locale    string    `json:"locale,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

var sessionSignKey = ephemeralKey()
var sessionSecure bool

// Configure installs the signing key and cookie security mode. Call once at
// startup before the router starts serving.
func Configure(key []byte, secure bool) {
	if len(key) > 0 {
		sessionSignKey = key
	}
	sessionSecure = secure
}

func ephemeralKey() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return []byte("insecure-dev-key-set-TIENDA_WEB_SIGNING_KEY")
	}
	return b
}

// Session loads or initializes a session and stores it in request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = randID()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		rw := NewResponseRecorder(w)
		// ensure cookie is set just before first write if needed
		rw.SetBeforeWrite(func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
		})
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookie now
		if !rw.wrote && (sd.dirty || !fromCookie) {
			writeSessionCookie(w, sd)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return &SessionData{}, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	b, _ := json.Marshal(sd)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, sessionSignKey)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   sessionSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func randID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
