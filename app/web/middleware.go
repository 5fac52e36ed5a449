package web

import (
	"context"
	"math"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/citl/pkg/jwt"
)

const (
	sweepAt  = 500
	idleTTL  = 10 * time.Minute
	retryMin = time.Second
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// AdminLimiter keeps one token bucket per client address. Buckets idle
// longer than idleTTL are swept once the table grows past sweepAt.
type AdminLimiter struct {
	mu      sync.Mutex
	buckets map[netip.Addr]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func NewAdminLimiter(limit rate.Limit, burst int) *AdminLimiter {
	return &AdminLimiter{
		buckets: make(map[netip.Addr]*bucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Allow spends a token from client's bucket.
func (l *AdminLimiter) Allow(client netip.Addr) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.buckets) > sweepAt {
		for addr, b := range l.buckets {
			if now.Sub(b.lastSeen) > idleTTL {
				delete(l.buckets, addr)
			}
		}
	}

	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// retryAfter is the time one token takes to refill, in whole seconds.
func (l *AdminLimiter) retryAfter() string {
	wait := retryMin
	if l.limit > 0 && l.limit != rate.Inf {
		wait = max(wait, time.Duration(float64(time.Second)/float64(l.limit)))
	}
	return strconv.Itoa(int(math.Ceil(wait.Seconds())))
}

// ClientResolver attributes a request to a client address. X-Forwarded-For
// and X-Real-IP are read only when the connecting peer is a trusted proxy.
type ClientResolver struct {
	trusted []netip.Prefix
}

func NewClientResolver(trusted []netip.Prefix) ClientResolver {
	return ClientResolver{trusted: trusted}
}

func (c ClientResolver) isTrusted(addr netip.Addr) bool {
	for _, p := range c.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client address for r. The forwarding chain is walked
// from the nearest hop outwards and the first untrusted address wins.
func (c ClientResolver) Resolve(r *http.Request) netip.Addr {
	peer := parseAddr(r.RemoteAddr)
	if !peer.IsValid() || !c.isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := parseAddr(strings.TrimSpace(hops[i]))
		if !hop.IsValid() {
			break
		}
		if !c.isTrusted(hop) {
			return hop
		}
	}
	if xri := parseAddr(r.Header.Get("X-Real-IP")); xri.IsValid() && !c.isTrusted(xri) {
		return xri
	}
	return peer
}

// parseAddr accepts "host:port" or a bare address.
func parseAddr(s string) netip.Addr {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap()
	}
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.Unmap()
	}
	return netip.Addr{}
}

// RateLimitMiddleware answers 429 with Retry-After once a client has spent
// its budget. Requests with an unparseable peer share one bucket.
func RateLimitMiddleware(limiter *AdminLimiter, clients ClientResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clients.Resolve(r)) {
				w.Header().Set("Retry-After", limiter.retryAfter())
				writeError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware sets CORS headers for the configured origins. With no
// origins configured it only answers preflight requests.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := origins[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type claimsKey struct{}

// ClaimsFromContext returns the claims RequireRole accepted.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return c, ok
}

// RequireRole admits requests bearing a valid token with role.
// A missing or invalid token is 401; a valid token without the role is 403.
func RequireRole(tokens jwt.Service, role jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.ValidateToken(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			if !claims.HasRole(role) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
