package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds HTTP fetcher settings.
type Config struct {
	Timeout      time.Duration `env:"FETCHER_TIMEOUT" envDefault:"15s" yaml:"timeout"`
	MaxBodyBytes int64         `env:"FETCHER_MAX_BODY_BYTES" envDefault:"33554432" yaml:"max_body_bytes"`
	UserAgent    string        `env:"FETCHER_USER_AGENT" envDefault:"Aluminum-Incognito/1.0" yaml:"user_agent"`
	RequireHTTPS bool          `env:"FETCHER_REQUIRE_HTTPS" envDefault:"false" yaml:"require_https"`
	BlockedTLDs  []string      `env:"FETCHER_BLOCKED_TLDS" envSeparator:"," yaml:"blocked_tlds"`
}

// DefaultConfig returns default fetcher settings.
func DefaultConfig() Config {
	return Config{
		Timeout:      15 * time.Second,
		MaxBodyBytes: 32 << 20,
		UserAgent:    "Aluminum-Incognito/1.0",
	}
}

// HTTP fetches URLs over net/http.
// It never sends cookies or stores any state between requests.
type HTTP struct {
	client       *http.Client
	maxBodyBytes int64
	userAgent    string
	requireHTTPS bool
	blockedTLDs  map[string]struct{}
}

// Option configures HTTP.
type Option func(*HTTP)

// WithClient replaces the underlying client. The client's Jar is ignored.
func WithClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			cp := *c
			cp.Jar = nil
			h.client = &cp
		}
	}
}

// New returns an HTTP fetcher configured by cfg.
func New(cfg Config, opts ...Option) *HTTP {
	h := &HTTP{
		client:       &http.Client{Timeout: cfg.Timeout},
		maxBodyBytes: cfg.MaxBodyBytes,
		userAgent:    cfg.UserAgent,
		requireHTTPS: cfg.RequireHTTPS,
		blockedTLDs:  make(map[string]struct{}, len(cfg.BlockedTLDs)),
	}
	for _, tld := range cfg.BlockedTLDs {
		tld = strings.Trim(strings.ToLower(strings.TrimSpace(tld)), ".")
		if tld != "" {
			h.blockedTLDs[tld] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch performs a GET and returns the body of a 2xx response.
func (h *HTTP) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if err := h.checkSafe(u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}

	body := io.Reader(resp.Body)
	if h.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, h.maxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Join(ErrRequest, err)
	}
	if h.maxBodyBytes > 0 && int64(len(data)) > h.maxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, h.maxBodyBytes)
	}
	return data, nil
}

// checkSafe applies the URL policy: the https requirement and the blocked
// top-level domains.
func (h *HTTP) checkSafe(u *url.URL) error {
	if h.requireHTTPS && u.Scheme != "https" {
		return fmt.Errorf("%w: https required", ErrUnsafeURL)
	}
	if len(h.blockedTLDs) == 0 {
		return nil
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		if _, blocked := h.blockedTLDs[host[i+1:]]; blocked {
			return fmt.Errorf("%w: blocked domain %q", ErrUnsafeURL, host[i+1:])
		}
	}
	return nil
}
