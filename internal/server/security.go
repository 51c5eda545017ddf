package server

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/osse101/TriCard_Go/internal/logger"
)

// AuthMiddleware validates the API key on every request it wraps
func AuthMiddleware(apiKey string, ips *clientIPResolver, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)

			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := ips.ClientIP(r)
				failures := detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)
				if failures >= FailedAuthAlertThreshold {
					log.Warn(SecurityAlertFailedAuth, "ip", ip, "count", failures)
				}

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector counts requests, failed authentications and realtime
// connection attempts per client IP over a fixed window.
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	now              func() time.Time
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	upgradesByIP     map[string]int
	windowStart      time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return newDetectorWithClock(time.Now)
}

func newDetectorWithClock(now func() time.Time) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		now:              now,
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		upgradesByIP:     make(map[string]int),
		windowStart:      now(),
	}
}

// RecordFailedAuth records a failed authentication attempt and returns the count in the current window
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.failedAuthByIP[ip]++
	return s.failedAuthByIP[ip]
}

// RecordRequest counts a request and reports whether ip is still within its budget.
// The second result is true when the rejection should be logged.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) (allowed, alert bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.requestCountByIP[ip]++
	n := s.requestCountByIP[ip]
	if n > RateLimitPerWindow {
		return false, n%RateLimitLogEvery == 0
	}
	return true, false
}

// RecordUpgrade counts a websocket or event-stream connection attempt.
// Realtime connections are long lived, so their budget is far below the request budget.
func (s *SuspiciousActivityDetector) RecordUpgrade(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindow()
	s.upgradesByIP[ip]++
	return s.upgradesByIP[ip] <= UpgradeLimitPerWindow
}

// rollWindow clears every counter once the window has elapsed. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindow() {
	now := s.now()
	if now.Sub(s.windowStart) > RateWindow {
		s.requestCountByIP = make(map[string]int)
		s.failedAuthByIP = make(map[string]int)
		s.upgradesByIP = make(map[string]int)
		s.windowStart = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP request budget, plus the connection
// budget for realtime endpoints.
func SecurityLoggingMiddleware(ips *clientIPResolver, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ips.ClientIP(r)

			allowed, alert := detector.RecordRequest(ip)
			if alert {
				logger.FromContext(r.Context()).Warn(SecurityAlertHighRate, "ip", ip, "window", RateWindow.String())
			}
			if allowed && isRealtimeRequest(r) && !detector.RecordUpgrade(ip) {
				logger.FromContext(r.Context()).Warn(SecurityAlertConnectionFlood, "ip", ip, "path", r.URL.Path)
				allowed = false
			}
			if !allowed {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isRealtimeRequest reports websocket upgrades and event-stream subscriptions
func isRealtimeRequest(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get(HeaderUpgrade), HeaderValueWebSocket) {
		return true
	}
	return strings.Contains(r.Header.Get(HeaderAccept), HeaderValueEventStream)
}

// clientIPResolver decides which address a request came from. X-Forwarded-For is only
// honoured when the direct peer is one of the trusted proxies (single addresses or CIDRs).
type clientIPResolver struct {
	trusted []netip.Prefix
}

func newClientIPResolver(trustedProxies []string) *clientIPResolver {
	res := &clientIPResolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if p, err := netip.ParsePrefix(raw); err == nil {
			res.trusted = append(res.trusted, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(raw); err == nil {
			res.trusted = append(res.trusted, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return res
}

func (c *clientIPResolver) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// ClientIP returns the request's client address
func (c *clientIPResolver) ClientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if c.isTrusted(remoteIP) {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			// rightmost hop is the one our proxy saw
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}
	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			// balances and room state must never be served from a cache
			h.Set(HeaderCacheControl, HeaderValueNoStore)

			next.ServeHTTP(w, r)
		})
	}
}
