package cart

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// cookieName is the fixed key the original storefront used for its browser
// storage; keeping it lets previously issued carts survive the migration.
const cookieName = "dommatos_cart"

const cookieMaxAge = 30 * 24 * time.Hour

// Store persists the cart line list in a signed cookie. The payload is
// base64(JSON array) dot-joined with an HMAC-SHA256 signature; anything that
// fails verification or decoding reads as an empty cart.
type Store struct {
	key    []byte
	secure bool
}

// NewStore builds a store with the given signing key. secure marks issued
// cookies Secure for production deployments.
func NewStore(key []byte, secure bool) *Store {
	return &Store{key: key, secure: secure}
}

// Load reads the persisted lines. Absent cookie, bad signature, and
// unparsable payloads all yield an empty list; Load never fails.
func (s *Store) Load(r *http.Request) []Line {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil
	}
	var lines []Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil
	}
	return lines
}

// Save serializes the full line list, overwriting prior content. An empty
// list still writes a cookie so a cleared cart stays cleared.
func (s *Store) Save(w http.ResponseWriter, lines []Line) {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(payload)
	value := base64.RawURLEncoding.EncodeToString(payload) + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(cookieMaxAge),
	})
}
