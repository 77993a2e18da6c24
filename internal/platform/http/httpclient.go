// Package http builds the outbound HTTP client shared by market data providers.
package http

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "cloudtrade/1.0"
)

// NewHTTPClient returns a client tuned for provider APIs.
// A non-positive timeout falls back to 10s; http.DefaultClient has no timeout at all.
// Every request carries the service User-Agent unless the caller set one.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: &uaTransport{next: t}}
}

type uaTransport struct {
	next http.RoundTripper
}

// RoundTrip sets the default User-Agent when the request has none and delegates to the base transport.
func (u *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return u.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", userAgent)
	return u.next.RoundTrip(r)
}
