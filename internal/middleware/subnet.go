package middleware

import (
	"net"
	"net/http"
	"strings"
)

// WithTrustedSubnet lets through only requests whose client address, taken
// from X-Real-IP or else RemoteAddr, lies in subnet. A nil subnet disables
// the check.
func WithTrustedSubnet(subnet *net.IPNet) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if subnet == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if ip == nil || !subnet.Contains(ip) {
				writeError(w, http.StatusForbidden, "address not in trusted subnet")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) net.IP {
	if v := strings.TrimSpace(r.Header.Get("X-Real-IP")); v != "" {
		return net.ParseIP(v)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return net.ParseIP(host)
}
