package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SlowRequestThreshold 慢请求告警阈值
const SlowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
// 设计说明：
// 1. 每个请求生成唯一的请求ID，写入响应头便于排查
// 2. 记录方法、路径、状态码、耗时、客户端IP
// 3. 不记录请求体和Authorization头（避免泄露密码、Token）
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		fmt.Printf("[GIN] %s | %3d | %13v | %15s | %-7s %s %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		if latency > SlowRequestThreshold {
			fmt.Printf("[WARN] Slow request: %s %s took %v (request_id=%s)\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
				requestID,
			)
		}
	}
}
