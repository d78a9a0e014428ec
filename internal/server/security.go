package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/logger"
)

// AuthMiddleware requires X-API-Key on everything outside PublicPaths
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasPrefix(r.URL.Path, PublicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

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

// clientWindow holds one client's counters. Each client's window starts at its
// first request, so a busy client cannot reset everyone else's counts.
type clientWindow struct {
	start       time.Time
	requests    int
	failedAuth  int
	authAlerted bool
}

// SuspiciousActivityDetector watches per-IP request rates, failed logins and
// open event streams.
//
// Event streams (SSE and WebSocket) are long-lived, so they are limited by how
// many a client holds open at once instead of by request rate.
type SuspiciousActivityDetector struct {
	mu        sync.Mutex
	now       func() time.Time
	clients   map[string]*clientWindow
	streams   map[string]int
	lastSweep time.Time
}

// NewSuspiciousActivityDetector creates a detector using the wall clock
func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return newDetectorWithClock(time.Now)
}

func newDetectorWithClock(now func() time.Time) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		now:       now,
		clients:   make(map[string]*clientWindow),
		streams:   make(map[string]int),
		lastSweep: now(),
	}
}

// window returns ip's current window, starting a new one when the old one ran out.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) window(ip string) *clientWindow {
	now := s.now()
	if now.Sub(s.lastSweep) > DetectorWindow {
		for k, w := range s.clients {
			if now.Sub(w.start) > DetectorWindow {
				delete(s.clients, k)
			}
		}
		s.lastSweep = now
	}

	w, ok := s.clients[ip]
	if !ok || now.Sub(w.start) > DetectorWindow {
		w = &clientWindow{start: now}
		s.clients[ip] = w
	}
	return w
}

// RecordFailedAuth counts a rejected API key and alerts once per window
// when the client crosses FailedAuthAlertCount.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.failedAuth++
	if w.failedAuth >= FailedAuthAlertCount && !w.authAlerted {
		w.authAlerted = true
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", w.failedAuth)
	}
}

// RecordRequest counts a request and reports whether the client is still
// under MaxRequestsPerWindow.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.requests++
	if w.requests <= MaxRequestsPerWindow {
		return true
	}
	if (w.requests-MaxRequestsPerWindow)%HighRateLogEveryCount == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", w.requests, "window", DetectorWindow)
	}
	return false
}

// OpenStream reserves one of the client's MaxStreamsPerIP stream slots.
// Every successful call must be paired with CloseStream.
func (s *SuspiciousActivityDetector) OpenStream(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streams[ip] >= MaxStreamsPerIP {
		slog.Warn(SecurityAlertStreamLimit, "ip", ip, "open", s.streams[ip])
		return false
	}
	s.streams[ip]++
	return true
}

// CloseStream releases a slot taken by OpenStream
func (s *SuspiciousActivityDetector) CloseStream(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streams[ip] <= 1 {
		delete(s.streams, ip)
		return
	}
	s.streams[ip]--
}

// RateLimitMiddleware rejects clients over their request or stream budget with 429
func RateLimitMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if hasPrefix(r.URL.Path, StreamPaths) {
				if !detector.OpenStream(ip) {
					http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
					return
				}
				defer detector.CloseStream(ip)
				next.ServeHTTP(w, r)
				return
			}

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// extractIP returns the client address. X-Forwarded-For is honoured only when
// the direct peer is a trusted proxy, and then its last hop is used.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
		break
	}
	return remoteIP
}

// SecurityHeadersMiddleware sets the browser hardening headers on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderXSSProtection, HeaderValueXSSBlock)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
