package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth  = "⚠️ SECURITY ALERT: Multiple failed authentication attempts"
	SecurityAlertHighRate    = "⚠️ SECURITY ALERT: Blocking high request rate"
	SecurityAlertStreamLimit = "⚠️ SECURITY ALERT: Too many open event streams"
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
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Limits
const (
	MaxRequestBodyBytes = 1 << 20 // 1MB
	ReadHeaderTimeout   = 5 * time.Second

	// Per-IP window for the failed-auth alert and the request rate limit
	DetectorWindow        = 5 * time.Minute
	FailedAuthAlertCount  = 5
	MaxRequestsPerWindow  = 1000
	HighRateLogEveryCount = 100

	// Concurrent SSE/WebSocket connections allowed per IP
	MaxStreamsPerIP = 4
)

// Public path prefixes that bypass authentication
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
	"/version",
}

// StreamPaths are long-lived event streams, limited by concurrency instead of rate
var StreamPaths = []string{
	"/api/v1/events",
	"/api/v1/ws",
}

// QuietPaths are not request-logged
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)

// OTelOperationName names the server span wrapping each request
const OTelOperationName = "shadow-army.http"
