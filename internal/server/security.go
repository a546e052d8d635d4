package server

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// AuthMiddleware validates the API key on every non-public path
func AuthMiddleware(apiKey string, proxies *ProxySet, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Constant time comparison
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := proxies.ClientIP(r)
				detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				writeError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
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

// DetectorConfig bounds how much traffic one client may send per window
type DetectorConfig struct {
	RequestLimit    int
	Window          time.Duration
	FailedAuthAlert int
}

func (c DetectorConfig) withDefaults() DetectorConfig {
	if c.RequestLimit <= 0 {
		c.RequestLimit = DefaultRequestLimit
	}
	if c.Window <= 0 {
		c.Window = DefaultRateWindow
	}
	if c.FailedAuthAlert <= 0 {
		c.FailedAuthAlert = DefaultFailedAuthAlert
	}
	return c
}

// SuspiciousActivityDetector counts requests and failed logins per client
// IP inside a fixed window
type SuspiciousActivityDetector struct {
	mu               sync.Mutex
	cfg              DetectorConfig
	now              func() time.Time
	failedAuthByIP   map[string]int
	requestCountByIP map[string]int
	windowStart      time.Time
}

// NewSuspiciousActivityDetector creates a detector; zero config fields take defaults
func NewSuspiciousActivityDetector(cfg DetectorConfig) *SuspiciousActivityDetector {
	return newDetectorWithClock(cfg, time.Now)
}

func newDetectorWithClock(cfg DetectorConfig, now func() time.Time) *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		cfg:              cfg.withDefaults(),
		now:              now,
		failedAuthByIP:   make(map[string]int),
		requestCountByIP: make(map[string]int),
		windowStart:      now(),
	}
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCountsIfNeeded()
	s.failedAuthByIP[ip]++

	if s.failedAuthByIP[ip] >= s.cfg.FailedAuthAlert {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", s.failedAuthByIP[ip])
	}
}

// RecordRequest counts a request and reports whether the client is still
// under its limit
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetCountsIfNeeded()
	s.requestCountByIP[ip]++

	if s.requestCountByIP[ip] > s.cfg.RequestLimit {
		if s.requestCountByIP[ip]%100 == 0 { // every 100th to avoid log spam
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count", s.requestCountByIP[ip],
				"window", s.cfg.Window)
		}
		return false
	}
	return true
}

// resetCountsIfNeeded starts a new window once the current one has passed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) resetCountsIfNeeded() {
	now := s.now()
	if now.Sub(s.windowStart) > s.cfg.Window {
		s.requestCountByIP = make(map[string]int)
		s.failedAuthByIP = make(map[string]int)
		s.windowStart = now
	}
}

// SecurityLoggingMiddleware enforces the per-IP rate limit
func SecurityLoggingMiddleware(proxies *ProxySet, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := proxies.ClientIP(r)

			if !detector.RecordRequest(ip) {
				writeError(w, http.StatusTooManyRequests, ErrMsgTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ProxySet holds the addresses whose X-Forwarded-For header is trusted.
// Entries are single IPs or CIDR ranges.
type ProxySet struct {
	ips  map[string]struct{}
	nets []*net.IPNet
}

// NewProxySet parses proxy entries, skipping any that are neither an IP nor a CIDR
func NewProxySet(entries []string) *ProxySet {
	ps := &ProxySet{ips: make(map[string]struct{})}
	for _, entry := range entries {
		if ip := net.ParseIP(entry); ip != nil {
			ps.ips[ip.String()] = struct{}{}
			continue
		}
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			ps.nets = append(ps.nets, ipNet)
			continue
		}
		slog.Warn(LogMsgIgnoredProxy, "entry", entry)
	}
	return ps
}

// Trusts reports whether addr is a trusted proxy
func (ps *ProxySet) Trusts(addr string) bool {
	if ps == nil {
		return false
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	if _, ok := ps.ips[ip.String()]; ok {
		return true
	}
	for _, n := range ps.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientIP returns the caller's address. X-Forwarded-For is only honoured
// when the direct peer is a trusted proxy.
func (ps *ProxySet) ClientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !ps.Trusts(remoteIP) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	// client, proxy1, proxy2: the rightmost hop is the one our proxy saw
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}
