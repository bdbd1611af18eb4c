package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"email-writer/internal/types"
)

// TokenRoundTripper wraps http.RoundTripper to inject the provider API key
type TokenRoundTripper struct {
	Base       http.RoundTripper
	Token      string
	AuthHeader string
}

// RoundTrip implements http.RoundTripper
func (t *TokenRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token != "" {
		// RoundTrippers must not modify the caller's request
		req = req.Clone(req.Context())
		if t.AuthHeader != "" {
			req.Header.Set(t.AuthHeader, t.Token)
		} else {
			req.Header.Set("Authorization", "Bearer "+t.Token)
		}
	}
	if t.Base == nil {
		return http.DefaultTransport.RoundTrip(req)
	}
	return t.Base.RoundTrip(req)
}

// NewTokenRoundTripper builds the auth transport for a provider. A bare key sent
// in the Authorization header gets the Bearer scheme; any other header carries
// the key as-is (e.g. x-goog-api-key).
func NewTokenRoundTripper(base http.RoundTripper, header, key string) *TokenRoundTripper {
	if header == "" {
		header = "Authorization"
	}
	return &TokenRoundTripper{
		Base:       base,
		Token:      authValue(header, key),
		AuthHeader: header,
	}
}

func authValue(header, key string) string {
	if key == "" {
		return ""
	}
	if (header == "" || strings.EqualFold(header, "Authorization")) && !strings.Contains(key, " ") {
		return "Bearer " + key
	}
	return key
}

// transportKind classifies a failed round trip.
func transportKind(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.KindTimeout
	}
	return types.KindConnection
}
