package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitRule 描述一个固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	Message       string
}

// KeyFunc 从请求中提取限流主键
type KeyFunc func(c *gin.Context) string

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// KeyByIP 按客户端 IP 限流
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return c.ClientIP()
	}
}

// KeyByIPAndJSONField 按 IP 加 JSON 请求体字段限流，
// 读取请求体后需要回填，避免影响后续绑定。
func KeyByIPAndJSONField(field string) KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if c.Request.Body == nil {
			return ip
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return ip
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return ip
		}
		value, _ := payload[field].(string)
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			return ip
		}
		return ip + ":" + value
	}
}

// RateLimitMiddleware Redis 固定窗口限流；Redis 不可用时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFn KeyFunc) gin.HandlerFunc {
	if keyFn == nil {
		keyFn = KeyByIP()
	}
	return func(c *gin.Context) {
		if client == nil || rule.MaxRequests <= 0 || rule.WindowSeconds <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", rule.Prefix, keyFn(c))
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		result, err := rateLimitScript.Run(ctx, client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_script_failed", "key", key, "error", err)
			c.Next()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) != 2 {
			c.Next()
			return
		}
		current := toInt64(values[0])
		if current <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		message := rule.Message
		if message == "" {
			message = "too many requests"
		}
		logger.Warnw("rate_limit_exceeded",
			"key", key,
			"current", current,
			"max_requests", rule.MaxRequests,
			"window_seconds", rule.WindowSeconds,
		)
		response.Error(c, response.CodeTooManyRequests, message)
		c.Abort()
	}
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var parsed int64
		fmt.Sscanf(v, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
