package http

import (
	"net"
	"net/http"
	"strings"
)

// IPConfig configures which proxies may assert forwarded client IPs.
type IPConfig struct {
	TrustedProxies []string // CIDR ranges
}

// ClientIP extracts the real client IP. Forwarding headers are honored
// only when the direct peer is a trusted proxy, so clients cannot spoof
// their identity (and thus their rate-limit key) via headers.
func ClientIP(r *http.Request, config *IPConfig) string {
	remoteIP := remoteAddr(r)

	if config != nil && isTrustedProxy(remoteIP, config.TrustedProxies) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			for _, part := range strings.Split(xff, ",") {
				candidate := strings.TrimSpace(part)
				if net.ParseIP(candidate) != nil {
					return candidate
				}
			}
		}
		if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return remoteIP
}

func remoteAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	peer := net.ParseIP(ip)
	if peer == nil {
		return false
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			continue
		}
		if ipNet.Contains(peer) {
			return true
		}
	}
	return false
}
