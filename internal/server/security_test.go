package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	detector := NewSuspiciousActivityDetector()
	handler := AuthMiddleware(apiKey, newClientIPResolver(nil), detector)(okHandler())

	tests := []struct {
		name           string
		providedKey    string
		expectedStatus int
	}{
		{"valid key", apiKey, http.StatusOK},
		{"wrong key", "wrong-key", http.StatusUnauthorized},
		{"missing key", "", http.StatusUnauthorized},
		{"key prefix only", "secret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}

	detector.mu.Lock()
	failures := detector.failedAuthByIP["192.0.2.1"]
	detector.mu.Unlock()
	assert.Equal(t, 3, failures)
}

func TestClientIPResolver(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct connection", "203.0.113.9:5000", "", nil, "203.0.113.9"},
		{"untrusted proxy header ignored", "203.0.113.9:5000", "198.51.100.1", nil, "203.0.113.9"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:5000", "198.51.100.1, 198.51.100.2", []string{"10.0.0.1"}, "198.51.100.2"},
		{"trusted CIDR", "10.4.7.20:5000", "198.51.100.7", []string{"10.0.0.0/8"}, "198.51.100.7"},
		{"outside trusted CIDR", "172.16.0.1:5000", "198.51.100.7", []string{"10.0.0.0/8"}, "172.16.0.1"},
		{"bad trusted entries skipped", "10.0.0.1:5000", "198.51.100.7", []string{"not-an-ip", " 10.0.0.1 "}, "198.51.100.7"},
		{"trusted proxy without header", "10.0.0.1:5000", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparseable remote addr", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, newClientIPResolver(tt.trusted).ClientIP(req))
		})
	}
}

func TestSecurityLoggingMiddleware_RateLimiting(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	detector := newDetectorWithClock(func() time.Time { return now })
	handler := SecurityLoggingMiddleware(newClientIPResolver(nil), detector)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.RemoteAddr = "192.168.1.100:1234"

	for i := 0; i < RateLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	other.RemoteAddr = "192.168.1.101:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code, "budgets are per IP")

	now = now.Add(RateWindow + time.Second)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "a new window resets the budget")
}

func TestSecurityLoggingMiddleware_ConnectionFlood(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(newClientIPResolver(nil), detector)(okHandler())

	upgrade := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/ws?room_id=r&member_id=m", nil)
		req.RemoteAddr = "198.51.100.50:4000"
		req.Header.Set(HeaderUpgrade, "WebSocket")
		return req
	}

	for i := 0; i < UpgradeLimitPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, upgrade())
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, upgrade())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// ordinary requests from the same IP still pass
	plain := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	plain.RemoteAddr = "198.51.100.50:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, plain)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsRealtimeRequest(t *testing.T) {
	ws := httptest.NewRequest(http.MethodGet, "/ws", nil)
	ws.Header.Set(HeaderUpgrade, "websocket")
	sse := httptest.NewRequest(http.MethodGet, "/api/v1/rooms/r/events", nil)
	sse.Header.Set(HeaderAccept, "text/event-stream")
	plain := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)

	assert.True(t, isRealtimeRequest(ws))
	assert.True(t, isRealtimeRequest(sse))
	assert.False(t, isRealtimeRequest(plain))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, readErr = r.Body.Read(buf)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is far too long"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
