package store

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"consentgate/internal/sentinel"
)

// CookieKV adapts one HTTP request/response pair to the KV interface. Values
// are base64url-encoded so JSON payloads survive cookie transport. Reads
// observe writes made earlier in the same request, so re-entrant reads always
// see the last write.
type CookieKV struct {
	w http.ResponseWriter
	r *http.Request
	// written tracks same-request mutations; nil marks an erased key.
	written map[string]*string
}

// NewCookieKV constructs a cookie-backed KV scoped to a single request.
func NewCookieKV(w http.ResponseWriter, r *http.Request) *CookieKV {
	return &CookieKV{w: w, r: r, written: make(map[string]*string)}
}

func (c *CookieKV) Write(key, value string, ttlDays int) error {
	cookie := &http.Cookie{
		Name:     key,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if ttlDays > 0 {
		cookie.MaxAge = ttlDays * 24 * 60 * 60
	}
	http.SetCookie(c.w, cookie)
	c.written[key] = &value
	return nil
}

func (c *CookieKV) Read(key string) (string, error) {
	if pending, ok := c.written[key]; ok {
		if pending == nil {
			return "", sentinel.ErrNotFound
		}
		return *pending, nil
	}
	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", sentinel.ErrNotFound
	}
	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return "", fmt.Errorf("decode cookie %q: %w", key, sentinel.ErrInvalidInput)
	}
	return string(decoded), nil
}

func (c *CookieKV) Erase(key string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.written[key] = nil
	return nil
}

// SessionFlag marks that the banner has been presented this browsing session.
// It is independent from the decision: it survives across Unset decisions
// within one session, and a reset clears it so the banner shows again.
type SessionFlag interface {
	Seen() bool
	MarkSeen()
	Clear()
}

const sessionValue = "1"

// CookieSession implements SessionFlag over a session cookie (no Max-Age, so
// the browser discards it when the session ends).
type CookieSession struct {
	w       http.ResponseWriter
	r       *http.Request
	name    string
	pending *bool
}

// NewCookieSession constructs a session flag scoped to a single request.
func NewCookieSession(w http.ResponseWriter, r *http.Request, name string) *CookieSession {
	return &CookieSession{w: w, r: r, name: name}
}

func (s *CookieSession) Seen() bool {
	if s.pending != nil {
		return *s.pending
	}
	cookie, err := s.r.Cookie(s.name)
	return err == nil && cookie.Value == sessionValue
}

func (s *CookieSession) MarkSeen() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    sessionValue,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	seen := true
	s.pending = &seen
}

func (s *CookieSession) Clear() {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	seen := false
	s.pending = &seen
}

// MemorySession implements SessionFlag in memory for tests and headless use.
type MemorySession struct {
	seen bool
}

// NewMemorySession constructs an unseen session flag.
func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Seen() bool { return s.seen }
func (s *MemorySession) MarkSeen()  { s.seen = true }
func (s *MemorySession) Clear()     { s.seen = false }
