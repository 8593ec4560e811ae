package ratelimit

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Middleware limits the request rate of each client, identified by its
// remote address. Limiters of inactive clients are evicted after the
// configured time to live.
func Middleware(funcs ...OptionFunc) func(http.Handler) http.Handler {
	opts := NewOptions(funcs...)

	limiters := expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.TTL)

	getLimiter := func(client string) *rate.Limiter {
		limiter, exists := limiters.Get(client)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(opts.Interval), opts.Burst)
			limiters.Add(client, limiter)
		}

		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r, opts.TrustHeaders)
			limiter := getLimiter(client)

			reservation := limiter.Reserve()
			if !reservation.OK() || reservation.Delay() > 0 {
				delay := reservation.Delay()
				reservation.Cancel()

				slog.DebugContext(r.Context(), "request rate limited", slog.String("client", client))

				if delay > 0 && delay != rate.InfDuration {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				}

				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(math.Floor(limiter.Tokens()))))

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}

		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}

type Options struct {
	// TrustHeaders identifies clients by the X-Forwarded-For and X-Real-Ip
	// headers, to be enabled behind a reverse proxy only
	TrustHeaders bool
	// Interval is the time needed to regain one request token
	Interval  time.Duration
	Burst     int
	CacheSize int
	TTL       time.Duration
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TrustHeaders: false,
		Interval:     100 * time.Millisecond,
		Burst:        20,
		CacheSize:    1000,
		TTL:          10 * time.Minute,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithTrustHeaders(trust bool) OptionFunc {
	return func(opts *Options) {
		opts.TrustHeaders = trust
	}
}

func WithRate(interval time.Duration, burst int) OptionFunc {
	return func(opts *Options) {
		opts.Interval = interval
		opts.Burst = burst
	}
}

func WithCache(size int, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.CacheSize = size
		opts.TTL = ttl
	}
}
