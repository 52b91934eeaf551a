package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/klwxsrx/storefront-client/internal/session/domain"
	"github.com/klwxsrx/storefront-client/pkg/log"
)

// CookieJar keeps the cookies of the given origins in domain.Storage,
// so the refresh cookie outlives the process.
type CookieJar struct {
	storage domain.Storage
	origins []*url.URL
	logger  log.Logger

	mu      sync.RWMutex
	jar     *cookiejar.Jar
	entries map[string]storedCookie
}

// storedCookie keeps the attributes the jar needs to scope a cookie after restore.
// Domain is empty for host-only cookies.
type storedCookie struct {
	Origin   string    `json:"origin"`
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain,omitempty"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires,omitzero"`
	Secure   bool      `json:"secure,omitempty"`
	HttpOnly bool      `json:"httpOnly,omitempty"`
}

func (c storedCookie) key() string {
	return strings.Join([]string{c.Origin, c.Domain, c.Path, c.Name}, ";")
}

func (c storedCookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func (c storedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
}

func NewCookieJar(
	ctx context.Context,
	storage domain.Storage,
	logger log.Logger,
	origins ...string,
) (*CookieJar, error) {
	parsedOrigins := make([]*url.URL, 0, len(origins))
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil {
			return nil, fmt.Errorf("parse origin %s: %w", origin, err)
		}
		parsedOrigins = append(parsedOrigins, u)
	}

	jar, err := newJar()
	if err != nil {
		return nil, err
	}

	j := &CookieJar{
		storage: storage,
		origins: parsedOrigins,
		logger:  logger,
		jar:     jar,
		entries: make(map[string]storedCookie),
	}

	err = j.restore(ctx)
	if err != nil {
		return nil, err
	}

	return j, nil
}

func (j *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if !j.isOrigin(u) {
		return
	}

	now := time.Now()
	for _, c := range cookies {
		entry := newStoredCookie(u, c, now)
		if entry.expired(now) {
			delete(j.entries, entry.key())
			continue
		}
		j.entries[entry.key()] = entry
	}

	ctx := context.Background()
	err := j.persistLocked(ctx)
	if err != nil {
		j.logger.WithError(err).Error(ctx, "failed to persist cookies")
	}
}

func (j *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.jar.Cookies(u)
}

// Reset drops every cookie kept in memory. Stored cookies are removed along with the session.
func (j *CookieJar) Reset() error {
	jar, err := newJar()
	if err != nil {
		return err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar = jar
	j.entries = make(map[string]storedCookie)
	return nil
}

func (j *CookieJar) restore(ctx context.Context) error {
	raw, ok, err := j.storage.Get(ctx, domain.StorageKeyCookies)
	if err != nil {
		return fmt.Errorf("get stored cookies: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}

	var stored []storedCookie
	err = json.Unmarshal([]byte(raw), &stored)
	if err != nil {
		j.logger.WithError(err).Warn(ctx, "stored cookies are corrupted, skipping")
		return nil
	}

	now := time.Now()
	for _, c := range stored {
		u, err := url.Parse(c.Origin)
		if err != nil || c.expired(now) {
			continue
		}
		if c.Path == "" {
			c.Path = "/"
		}
		j.jar.SetCookies(u, []*http.Cookie{c.cookie()})
		j.entries[c.key()] = c
	}

	return nil
}

func (j *CookieJar) persistLocked(ctx context.Context) error {
	now := time.Now()
	stored := make([]storedCookie, 0, len(j.entries))
	for key, c := range j.entries {
		if c.expired(now) {
			delete(j.entries, key)
			continue
		}
		stored = append(stored, c)
	}

	if len(stored) == 0 {
		return j.storage.Delete(ctx, domain.StorageKeyCookies)
	}

	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode cookies: %w", err)
	}

	return j.storage.Set(ctx, domain.StorageKeyCookies, string(raw))
}

func (j *CookieJar) isOrigin(u *url.URL) bool {
	for _, origin := range j.origins {
		if strings.EqualFold(origin.Host, u.Host) {
			return true
		}
	}

	return false
}

func newStoredCookie(u *url.URL, c *http.Cookie, now time.Time) storedCookie {
	entry := storedCookie{
		Origin:   u.Scheme + "://" + u.Host,
		Name:     c.Name,
		Value:    c.Value,
		Domain:   strings.TrimPrefix(strings.ToLower(c.Domain), "."),
		Path:     c.Path,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if entry.Path == "" || entry.Path[0] != '/' {
		entry.Path = defaultCookiePath(u.Path)
	}

	switch {
	case c.MaxAge < 0:
		entry.Expires = now
	case c.MaxAge > 0:
		entry.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		entry.Expires = c.Expires.UTC()
	}

	return entry
}

// defaultCookiePath is the directory of the request path, see RFC 6265 section 5.1.4.
func defaultCookiePath(requestPath string) string {
	if requestPath == "" || requestPath[0] != '/' {
		return "/"
	}

	i := strings.LastIndex(requestPath, "/")
	if i == 0 {
		return "/"
	}

	return requestPath[:i]
}

func newJar() (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	return jar, nil
}
