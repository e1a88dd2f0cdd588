package httputil

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the originating client address for a request, used by the
// request logging middleware. Forwarded headers are caller-controlled, so
// they are consulted only when the deployment declares a trusted reverse
// proxy in front of the service; otherwise RemoteAddr is the sole source.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := forwardedFor(r); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. from a hand-built test request.
		return r.RemoteAddr
	}
	return host
}

// forwardedFor extracts the original client from proxy headers: the leftmost
// X-Forwarded-For entry, then X-Real-IP.
func forwardedFor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i > 0 {
			xff = xff[:i]
		}
		if ip := strings.TrimSpace(xff); ip != "" {
			return ip
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
