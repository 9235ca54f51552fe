package middleware

import (
	"net/http"
	"strings"
)

// UnknownIdentity is the bucket used when no proxy header identifies the
// client; it still participates in rate limiting as its own key.
const UnknownIdentity = "unknown"

// ClientIP resolves the submitting client's address from proxy headers.
// Precedence: explicit real-IP header, then the CDN's connecting-IP header,
// then the first entry of the forwarded-for list, else the unknown sentinel.
func ClientIP(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := strings.TrimSpace(r.Header.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	return UnknownIdentity
}
