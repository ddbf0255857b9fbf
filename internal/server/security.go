package server

import (
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// clientWindow counts one client's traffic since start
type clientWindow struct {
	start        time.Time
	requests     int
	clientErrors int
}

// SuspiciousActivityDetector keeps a fixed window of counters per client IP.
// Only the most recently seen DetectorTrackedIPs clients are remembered.
type SuspiciousActivityDetector struct {
	mu      sync.Mutex
	clients *lru.Cache[string, *clientWindow]
	now     func() time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	clients, err := lru.New[string, *clientWindow](DetectorTrackedIPs)
	if err != nil {
		// only possible with a non-positive size
		panic(err)
	}
	return &SuspiciousActivityDetector{clients: clients, now: time.Now}
}

// window returns the live counters for ip, opening a new window when the
// previous one has expired. Caller must hold the mutex.
func (s *SuspiciousActivityDetector) window(ip string) *clientWindow {
	now := s.now()
	if w, ok := s.clients.Get(ip); ok && now.Sub(w.start) <= DetectorWindow {
		return w
	}
	w := &clientWindow{start: now}
	s.clients.Add(ip, w)
	return w
}

// RecordRequest counts a request and reports whether ip is still under
// MaxRequestsPerWindow
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.requests++
	if w.requests <= MaxRequestsPerWindow {
		return true
	}
	if w.requests%HighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", w.requests)
	}
	return false
}

// RecordClientError counts a 4xx answer. A burst usually means a broken
// client or someone walking quest ids.
func (s *SuspiciousActivityDetector) RecordClientError(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.window(ip)
	w.clientErrors++
	if w.clientErrors == ClientErrorAlertLimit {
		slog.Warn(SecurityAlertClientErrors, "ip", ip, "count", w.clientErrors)
	}
}

// clientErrors is the 4xx count in ip's current window
func (s *SuspiciousActivityDetector) clientErrors(ip string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.clients.Peek(ip); ok {
		return w.clientErrors
	}
	return 0
}

// SecurityLoggingMiddleware rejects clients over the rate limit and feeds
// 4xx answers back into the detector
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)
			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			if rw.statusCode >= http.StatusBadRequest && rw.statusCode < http.StatusInternalServerError {
				detector.RecordClientError(ip)
			}
		})
	}
}

// extractIP returns the caller's address. X-Forwarded-For is honoured only
// when the direct peer is a trusted proxy, and then its rightmost hop wins.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}
	if !slices.Contains(trustedProxies, remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware sets the static browser hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	headers := [][2]string{
		{HeaderContentType, HeaderValueNoSniff},
		{HeaderFrameOptions, HeaderValueSameOrigin},
		{HeaderXSSProtection, HeaderValueXSSBlock},
		{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range headers {
				w.Header().Set(h[0], h[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
