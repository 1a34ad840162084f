package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/medcouncil/registry/internal/config"
)

const keyAPIRequest = "registry:ratelimit:key:%s"

// RequestLimiter throttles API traffic per API key. It is optional
// infrastructure: when rate limiting is disabled in config the constructor
// returns nil and callers treat a nil limiter as always-allow.
type RequestLimiter struct {
	enabled bool

	bucket *TokenBucket

	keyRate  float64
	keyBurst int
}

func NewRequestLimiter(cfg config.Config) (*RequestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.KeyRate <= 0 || limitCfg.KeyBurst <= 0 {
		return nil, errors.New("api key rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &RequestLimiter{
		enabled:  true,
		bucket:   NewTokenBucket(client),
		keyRate:  limitCfg.KeyRate,
		keyBurst: limitCfg.KeyBurst,
	}, nil
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// AllowKey consumes one request token from the bucket for the given API key.
func (l *RequestLimiter) AllowKey(ctx context.Context, keyID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyAPIRequest, strings.TrimSpace(keyID)), l.keyRate, l.keyBurst)
}
