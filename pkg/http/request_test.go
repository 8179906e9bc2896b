package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP_DirectPeer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.5:4321"

	assert.Equal(t, "203.0.113.5", ClientIP(r, &IPConfig{}))
}

func TestClientIP_ForwardedForIgnoredFromUntrustedPeer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.5:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.7")

	assert.Equal(t, "203.0.113.5", ClientIP(r, &IPConfig{}))
}

func TestClientIP_ForwardedForHonoredFromTrustedProxy(t *testing.T) {
	cfg := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.1.2.3")

	assert.Equal(t, "198.51.100.7", ClientIP(r, cfg))
}

func TestClientIP_RealIPHonoredFromTrustedProxy(t *testing.T) {
	cfg := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3:4321"
	r.Header.Set("X-Real-IP", "198.51.100.7")

	assert.Equal(t, "198.51.100.7", ClientIP(r, cfg))
}

func TestClientIP_GarbageForwardedForFallsBack(t *testing.T) {
	cfg := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.1.2.3:4321"
	r.Header.Set("X-Forwarded-For", "not-an-ip")

	assert.Equal(t, "10.1.2.3", ClientIP(r, cfg))
}

func TestClientIP_NilConfig(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.5:4321"
	r.Header.Set("X-Forwarded-For", "198.51.100.7")

	assert.Equal(t, "203.0.113.5", ClientIP(r, nil))
}
