// Package sessioncookie centralizes session cookie behavior.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"quillhub/internal/config"
)

type Cookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func New(cfg config.Session) Cookie {
	name := cfg.CookieName
	if name == "" {
		name = "session"
	}
	return Cookie{Name: name, MaxAge: cfg.CookieMaxAge, Secure: cfg.CookieSecure}
}

// Read returns the trimmed session cookie value when present.
func (c Cookie) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (c Cookie) Write(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.MaxAge / time.Second),
	})
}

// Clear expires the session cookie.
func (c Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
