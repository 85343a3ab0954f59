package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldserve/backoffice/internal/config"
	"github.com/redis/go-redis/v9"
)

// Limiter gates sensitive endpoints (login, password reset) per client key.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// noopLimiter admits everything. Used when no Redis address is configured.
type noopLimiter struct{}

func (noopLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (noopLimiter) Close() error {
	return nil
}

// RedisLimiter is a distributed token bucket over Redis. State lives in a
// Redis hash per key and all refill/consume math happens atomically in a Lua
// script, so multiple server instances share one budget.
type RedisLimiter struct {
	client    *redis.Client
	keyPrefix string
	capacity  float64
	window    time.Duration
}

// New builds a limiter from config. Without REDIS_ADDR the limiter is a no-op.
// The default budget is 10 attempts per minute per key.
func New(conf *config.Config) Limiter {
	if conf.REDIS_ADDR == "" {
		return noopLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     conf.REDIS_ADDR,
		Password: conf.REDIS_PASSWORD,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		slog.Warn("failed to connect to redis, rate limiting disabled", "error", err)
		return noopLimiter{}
	}

	return &RedisLimiter{
		client:    client,
		keyPrefix: "rate_limit:",
		capacity:  10,
		window:    time.Minute,
	}
}

// tokenBucketScript atomically refills the bucket from elapsed time and
// consumes one token when available. Returns 1 when allowed, 0 when limited.
const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local refillRate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local tokensToConsume = tonumber(ARGV[4])
	local windowSeconds = tonumber(ARGV[5])

	local bucketData = redis.call('HMGET', key, 'tokens', 'lastRefill')
	local tokensStr = bucketData[1]
	local lastRefillStr = bucketData[2]

	local tokens
	local lastRefill
	if tokensStr == false or tokensStr == nil then
		tokens = capacity
		lastRefill = now
	else
		tokens = tonumber(tokensStr)
		if tokens == nil then
			tokens = capacity
		end
		lastRefill = tonumber(lastRefillStr)
		if lastRefill == nil then
			lastRefill = now
		end
	end

	local elapsed = (now - lastRefill) / 1000000000

	if elapsed > 0 then
		local tokensToAdd = elapsed * refillRate
		tokens = math.min(capacity, tokens + tokensToAdd)
	end

	if tokens >= tokensToConsume then
		tokens = tokens - tokensToConsume
		redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
		redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
		return 1
	else
		redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
		redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
		return 0
	end
`

// Allow consumes one token from the key's bucket if available
func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	refillRate := r.capacity / r.window.Seconds()

	result, err := r.client.Eval(ctx, tokenBucketScript, []string{r.keyPrefix + key},
		r.capacity,
		refillRate,
		time.Now().UnixNano(),
		1.0,
		r.window.Seconds(),
	).Result()
	if err != nil {
		return false, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	return result.(int64) == 1, nil
}

// Close releases the Redis connection
func (r *RedisLimiter) Close() error {
	return r.client.Close()
}
