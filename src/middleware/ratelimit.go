package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// LimiterStore keeps one token bucket per client key and forgets idle keys.
type LimiterStore struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewLimiterStore(rps float64, burst int) *LimiterStore {
	return &LimiterStore{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
	}
}

func (s *LimiterStore) Get(key string) *rate.Limiter {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *LimiterStore) Cleanup() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor removes idle keys every interval until ctx is done.
func (s *LimiterStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// RateDecision is one allow/deny outcome, recorded for stats.
type RateDecision struct {
	Key     string
	Allowed bool
	Method  string
	Path    string
	At      time.Time
}

type StatsRecorder interface {
	Record(ctx context.Context, d RateDecision) error
}

// RedisStats counts decisions in Redis hashes: a cumulative total, a per-minute
// bucket that expires after ttl, and a per-route breakdown.
type RedisStats struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStats(rdb *redis.Client, prefix string, ttl time.Duration) *RedisStats {
	prefix = strings.Trim(prefix, ":")
	if prefix == "" {
		prefix = "circulacion:ratelimit"
	}
	return &RedisStats{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *RedisStats) Record(ctx context.Context, d RateDecision) error {
	at := d.At
	if at.IsZero() {
		at = time.Now()
	}

	field := "denied"
	if d.Allowed {
		field = "allowed"
	}

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, s.prefix+":total", field, 1)

	bucketKey := fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	if route := strings.TrimSpace(d.Method + " " + d.Path); route != "" {
		pipe.HIncrBy(ctx, s.prefix+":route", route+":"+field, 1)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// RateLimit rejects clients that exceed their token bucket with 429.
// Stats are best effort and never fail the request.
func RateLimit(store *LimiterStore, stats StatsRecorder, retryAfter time.Duration) gin.HandlerFunc {
	if retryAfter <= 0 {
		retryAfter = time.Second
	}
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		allowed := store.Get(key).Allow()

		if stats != nil {
			d := RateDecision{
				Key:     key,
				Allowed: allowed,
				Method:  ctx.Request.Method,
				Path:    ctx.FullPath(),
				At:      time.Now(),
			}
			if err := stats.Record(ctx.Request.Context(), d); err != nil {
				slog.Debug("rate limit stats not recorded", "error", err)
			}
		}

		if !allowed {
			ctx.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": http.StatusText(http.StatusTooManyRequests)})
			return
		}
		ctx.Next()
	}
}
