package config

import (
	"crypto/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultAPIBaseURL    = "https://billing.dommatos.com/api/public"
	defaultLocale        = "es"
	defaultTemplatesDir  = "templates"
	defaultPublicDir     = "public"
	defaultLocalesDir    = "locales"
	defaultContentDir    = "content"
	defaultServerTimeout = 30 * time.Second
)

// Config captures the storefront's runtime configuration.
type Config struct {
	Server  ServerConfig
	API     APIConfig
	Locale  LocaleConfig
	Session SessionConfig
	Paths   PathsConfig
	DevMode bool
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string
	RequestTimeout time.Duration
}

// APIConfig points at the remote commerce API.
type APIConfig struct {
	BaseURL string
}

// LocaleConfig drives i18n loading and resolution.
type LocaleConfig struct {
	Default   string
	Supported []string
	Dir       string
}

// SessionConfig holds the cookie signing key used for both the session and
// the cart cookie.
type SessionConfig struct {
	SigningKey []byte
	Secure     bool
}

// PathsConfig locates on-disk assets.
type PathsConfig struct {
	Templates string
	Public    string
	Content   string
}

// Load assembles configuration from the environment, with a best-effort .env
// overlay for local development. Absent values fall back to defaults; the
// only generated value is an ephemeral signing key when none is configured.
func Load() Config {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	port := env("TIENDA_WEB_PORT", os.Getenv("PORT"))
	if port == "" {
		port = defaultPort
	}

	key := []byte(os.Getenv("TIENDA_WEB_SIGNING_KEY"))
	if len(key) == 0 {
		key = make([]byte, 32)
		_, _ = rand.Read(key)
	}

	return Config{
		Server: ServerConfig{
			Addr:           ":" + port,
			RequestTimeout: duration("TIENDA_WEB_REQUEST_TIMEOUT", defaultServerTimeout),
		},
		API: APIConfig{
			BaseURL: env("TIENDA_WEB_API_BASE_URL", defaultAPIBaseURL),
		},
		Locale: LocaleConfig{
			Default:   env("TIENDA_WEB_DEFAULT_LOCALE", defaultLocale),
			Supported: csv("TIENDA_WEB_LOCALES", []string{"es", "en"}),
			Dir:       env("TIENDA_WEB_LOCALES_DIR", defaultLocalesDir),
		},
		Session: SessionConfig{
			SigningKey: key,
			Secure:     strings.EqualFold(os.Getenv("TIENDA_WEB_ENV"), "prod"),
		},
		Paths: PathsConfig{
			Templates: env("TIENDA_WEB_TEMPLATES_DIR", defaultTemplatesDir),
			Public:    env("TIENDA_WEB_PUBLIC_DIR", defaultPublicDir),
			Content:   env("TIENDA_WEB_CONTENT_DIR", defaultContentDir),
		},
		DevMode: os.Getenv("TIENDA_WEB_DEV") != "" || os.Getenv("DEV") != "",
	}
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func csv(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
