package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fbcbank/card-intake/internal/pkg/httputil"
	"github.com/fbcbank/card-intake/internal/pkg/logger"
)

const rateLimitWindow = time.Minute

// Counts within the window and only increments while under the limit.
const windowLimitLuaScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local ttl = tonumber(ARGV[2])

local current = tonumber(redis.call("GET", key) or "0")
if current >= limit then
    return {0, current}
end

local newVal = redis.call("INCR", key)
if newVal == 1 then
    redis.call("EXPIRE", key, ttl)
end
return {1, newVal}
`

// RateLimiter caps submissions per client address in fixed one-minute
// windows. A nil *RateLimiter allows everything.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	script *redis.Script
	now    func() time.Time
}

// NewRateLimiter returns nil when limit is not positive.
func NewRateLimiter(rdb *redis.Client, perMinute int) *RateLimiter {
	if rdb == nil || perMinute <= 0 {
		return nil
	}
	return &RateLimiter{
		redis:  rdb,
		limit:  perMinute,
		script: redis.NewScript(windowLimitLuaScript),
		now:    time.Now,
	}
}

// Allow records one request for client and reports whether it is within
// the limit.
func (l *RateLimiter) Allow(ctx context.Context, client string) (bool, error) {
	window := l.now().Unix() / int64(rateLimitWindow/time.Second)
	key := fmt.Sprintf("intake:ratelimit:%s:%d", client, window)

	res, err := l.script.Run(ctx, l.redis, []string{key}, l.limit, int(rateLimitWindow/time.Second)).Int64Slice()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}
	return len(res) > 0 && res[0] == 1, nil
}

// Middleware rejects requests over the limit with 429. Redis errors let
// the request through.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		ok, err := l.Allow(r.Context(), client)
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(rateLimitWindow/time.Second)))
			httputil.TooManyRequests(w, "Too many submissions, please try again shortly.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
