package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth      = "SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate        = "SECURITY ALERT: Blocking high request rate"
	SecurityAlertConnectionFlood = "SECURITY ALERT: Blocking realtime connection flood"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderCookie         = "Cookie"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderCacheControl   = "Cache-Control"
	HeaderUpgrade        = "Upgrade"
	HeaderAccept         = "Accept"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	HeaderValueNoStore              = "no-store"
	HeaderValueWebSocket            = "websocket"
	HeaderValueEventStream          = "text/event-stream"
)

// Limits
const (
	MaxRequestBodyBytes = 1 << 20
	ReadHeaderTimeout   = 5 * time.Second

	FailedAuthAlertThreshold = 5
	RateLimitPerWindow       = 1000
	RateLimitLogEvery        = 100
	UpgradeLimitPerWindow    = 60
	RateWindow               = 5 * time.Minute
)

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
