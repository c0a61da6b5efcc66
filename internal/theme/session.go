package theme

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/charlesng35/companydesk/pkg/crypto"
)

const (
	// DefaultCookieName names the cookie carrying the signed preference.
	DefaultCookieName = "companydesk_theme"
	// DefaultMaxAge keeps the preference for a year.
	DefaultMaxAge = 365 * 24 * time.Hour

	tokenIssuer   = "companydesk"
	signingKeyUse = "companydesk theme cookie v1"
)

// SessionConfig configures the cookie-backed preference store.
type SessionConfig struct {
	CookieName string
	Secret     string
	MaxAge     time.Duration
	Secure     bool
	Default    Theme
	Now        func() time.Time
}

// Session reads and writes the theme preference as a signed cookie.
type Session struct {
	name     string
	key      []byte
	maxAge   time.Duration
	secure   bool
	fallback Theme
	now      func() time.Time
}

type preferenceClaims struct {
	Theme string `json:"theme"`
	jwt.RegisteredClaims
}

// NewSession builds a Session. The secret is required; other fields fall back to defaults.
func NewSession(cfg SessionConfig) (*Session, error) {
	key, err := crypto.DeriveKey(cfg.Secret, signingKeyUse, 32)
	if err != nil {
		return nil, fmt.Errorf("theme session: %w", err)
	}

	name := strings.TrimSpace(cfg.CookieName)
	if name == "" {
		name = DefaultCookieName
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		name:     name,
		key:      key,
		maxAge:   maxAge,
		secure:   cfg.Secure,
		fallback: OrDefault(cfg.Default, Default),
		now:      now,
	}, nil
}

// CookieName returns the cookie the session reads and writes.
func (s *Session) CookieName() string {
	return s.name
}

// Default returns the theme served when no valid preference is stored.
func (s *Session) Default() Theme {
	return s.fallback
}

// Read returns the stored preference or the default when the cookie is missing,
// tampered with, expired or malformed.
func (s *Session) Read(r *http.Request) Theme {
	if t, ok := s.Lookup(r); ok {
		return t
	}
	return s.fallback
}

// Lookup returns the stored preference and whether a valid one was present.
func (s *Session) Lookup(r *http.Request) (Theme, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(s.name)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return "", false
	}
	t, err := s.decode(cookie.Value)
	if err != nil {
		return "", false
	}
	return t, true
}

// Write stores t in the preference cookie.
func (s *Session) Write(w http.ResponseWriter, r *http.Request, t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("theme session: unsupported theme %q", t)
	}

	value, err := s.encode(t)
	if err != nil {
		return err
	}

	now := s.now()
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(s.maxAge),
		MaxAge:   int(s.maxAge / time.Second),
		Secure:   s.secure || isSecureRequest(r),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Session) encode(t Theme) (string, error) {
	now := s.now()
	claims := preferenceClaims{
		Theme: string(t),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("theme session: sign cookie: %w", err)
	}
	return token, nil
}

func (s *Session) decode(value string) (Theme, error) {
	claims := &preferenceClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", err
	}

	t, ok := Parse(claims.Theme)
	if !ok {
		return "", errors.New("theme session: cookie carries unknown theme")
	}
	return t, nil
}

func isSecureRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
