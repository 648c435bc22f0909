package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitAlgorithm 限流算法类型
type RateLimitAlgorithm string

const (
	// TokenBucket 令牌桶算法
	TokenBucket RateLimitAlgorithm = "token_bucket"
	// FixedWindow 固定窗口算法
	FixedWindow RateLimitAlgorithm = "fixed_window"
)

// RateLimitType 限流类型
type RateLimitType string

const (
	// RateLimitByIP 基于IP限流
	RateLimitByIP RateLimitType = "ip"
	// RateLimitByUser 基于用户限流，未登录时退回IP
	RateLimitByUser RateLimitType = "user"
)

// OwnerKey is the gin context key the auth middleware stores the user id under
const OwnerKey = "ownerID"

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 路径前缀，空表示默认规则
	PathPrefix string
	// 请求限制数
	Limit int
	// 窗口大小
	Window time.Duration
	// 限流算法
	Algorithm RateLimitAlgorithm
	// 限流类型
	Type RateLimitType
}

func (c *RateLimitConfig) windowSeconds() int64 {
	s := int64(c.Window / time.Second)
	if s < 1 {
		return 1
	}
	return s
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Allow(ctx context.Context, key string, config *RateLimitConfig) (*RateLimitResult, error)
}

// RateLimitResult 限流结果
type RateLimitResult struct {
	// 是否允许通过
	Allowed bool
	// 剩余请求数
	Remaining int
	// 重置时间（Unix时间戳）
	ResetAt int64
	// 总限制数
	Limit int
}

// RedisRateLimiter 基于Redis的限流器
type RedisRateLimiter struct {
	redis *redis.Client
	now   func() time.Time
}

// NewRedisRateLimiter 创建Redis限流器
func NewRedisRateLimiter(redisClient *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{redis: redisClient, now: time.Now}
}

// 令牌桶：桶容量为 Limit，每秒补充 Limit/Window 个令牌
var tokenBucketScript = redis.NewScript(`
	local bucket = redis.call('HMGET', KEYS[1], 'tokens', 'last_update')
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local tokens = tonumber(bucket[1]) or capacity
	local last_update = tonumber(bucket[2]) or now

	local new_tokens = math.min(capacity, tokens + (now - last_update) * rate)
	local allowed = new_tokens >= 1
	if allowed then
		new_tokens = new_tokens - 1
	end

	redis.call('HSET', KEYS[1], 'tokens', new_tokens, 'last_update', now)
	redis.call('EXPIRE', KEYS[1], math.ceil(capacity / rate) + 1)

	return {allowed and 1 or 0, math.floor(new_tokens)}
`)

// 固定窗口计数
var fixedWindowScript = redis.NewScript(`
	local current = tonumber(redis.call('GET', KEYS[1]) or 0)
	local limit = tonumber(ARGV[1])
	if current >= limit then
		return {0, 0}
	end
	current = redis.call('INCR', KEYS[1])
	if current == 1 then
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
	end
	return {1, limit - current}
`)

// Allow 检查是否允许请求通过
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, config *RateLimitConfig) (*RateLimitResult, error) {
	now := r.now().Unix()
	window := config.windowSeconds()

	var (
		raw     interface{}
		err     error
		resetAt int64
	)
	switch config.Algorithm {
	case FixedWindow:
		slot := now / window
		raw, err = fixedWindowScript.Run(ctx, r.redis,
			[]string{fmt.Sprintf("optifuel:ratelimit:fixed:%s:%d", key, slot)},
			config.Limit, window+1,
		).Result()
		resetAt = (slot + 1) * window
	default:
		rate := float64(config.Limit) / float64(window)
		raw, err = tokenBucketScript.Run(ctx, r.redis,
			[]string{"optifuel:ratelimit:token:" + key},
			config.Limit, rate, now,
		).Result()
		resetAt = now + window
	}
	if err != nil {
		return nil, err
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected rate limit script result %v", raw)
	}
	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)

	return &RateLimitResult{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		ResetAt:   resetAt,
		Limit:     config.Limit,
	}, nil
}

// RateLimitGroup 按路径前缀选择限流规则
type RateLimitGroup struct {
	limiter       RateLimiter
	defaultConfig *RateLimitConfig
	rules         []*RateLimitConfig
	now           func() time.Time
}

// NewRateLimitGroup 创建限流组
func NewRateLimitGroup(limiter RateLimiter, defaultConfig *RateLimitConfig, rules ...*RateLimitConfig) *RateLimitGroup {
	return &RateLimitGroup{
		limiter:       limiter,
		defaultConfig: defaultConfig,
		rules:         rules,
		now:           time.Now,
	}
}

// ConfigFor returns the first rule whose prefix matches path, else the default
func (g *RateLimitGroup) ConfigFor(path string) *RateLimitConfig {
	for _, rule := range g.rules {
		if rule.PathPrefix != "" && strings.HasPrefix(path, rule.PathPrefix) {
			return rule
		}
	}
	return g.defaultConfig
}

// Middleware 返回Gin中间件函数
func (g *RateLimitGroup) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		config := g.ConfigFor(c.Request.URL.Path)
		if config == nil || config.Limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", ruleName(config), clientKey(c, config.Type))
		result, err := g.limiter.Allow(c.Request.Context(), key, config)
		if err != nil {
			// Redis错误时，允许请求通过（降级策略）
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - g.now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

func ruleName(config *RateLimitConfig) string {
	if config.PathPrefix == "" {
		return "default"
	}
	return strings.Trim(config.PathPrefix, "/")
}

// clientKey 生成限流Key
func clientKey(c *gin.Context, limitType RateLimitType) string {
	if limitType == RateLimitByUser {
		if ownerID := c.GetUint(OwnerKey); ownerID != 0 {
			return fmt.Sprintf("user:%d", ownerID)
		}
	}
	return "ip:" + c.ClientIP()
}
