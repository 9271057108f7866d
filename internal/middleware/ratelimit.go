package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/metrics"
)

const redisTimeout = 500 * time.Millisecond

func trusted(addr netip.Addr, proxies []netip.Prefix) bool {
	addr = addr.Unmap()
	for _, p := range proxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP is the peer address unless the peer is a trusted proxy. Then
// X-Forwarded-For is walked from the right and the first hop that is not a
// trusted proxy wins.
func clientIP(r *http.Request, proxies []netip.Prefix) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !trusted(peer, proxies) {
		return host
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return host
		}
		if !trusted(addr, proxies) {
			return addr.Unmap().String()
		}
	}
	return host
}

// hit counts one request against key. The TTL is read in the same
// transaction and set whenever it is missing, so a failed EXPIRE is retried by
// the next request instead of leaving the key without expiry.
func hit(ctx context.Context, client *redis.Client, key string, window time.Duration) (int64, error) {
	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	if ttl.Val() < 0 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("unable to set rate limit expiry: %w", err)
		}
	}
	return incr.Val(), nil
}

// endpoint keeps metric labels bounded: session ids are dropped from paths.
func endpoint(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.Path, "/")
	first, _, _ := strings.Cut(path, "/")
	return r.Method + " /" + first
}

// RateLimit is a fixed window limiter keyed by client IP, counted with Redis
// INCR and EXPIRE. A nil client or a Redis error lets the request through.
func RateLimit(logger *slog.Logger, client *redis.Client, limit config.RateLimit) Middleware {
	window := strconv.FormatInt(int64(limit.Window.Seconds()), 10)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := "rl:" + window + ":" + clientIP(r, limit.TrustedProxies)
			ctx, cancel := context.WithTimeout(r.Context(), redisTimeout)
			defer cancel()

			val, err := hit(ctx, client, key, limit.Window)
			if err != nil {
				logger.Warn("rate limiter unavailable", slog.Any("error", err))
				w.Header().Set("X-RateLimit-Error", "redis-error")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Max))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(max(0, int64(limit.Max)-val), 10))

			if val > int64(limit.Max) {
				metrics.RLBlocked.WithLabelValues(endpoint(r)).Inc()
				w.Header().Set("Retry-After", window)
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			metrics.RLRequests.WithLabelValues(endpoint(r)).Inc()
			next.ServeHTTP(w, r)
		})
	}
}
