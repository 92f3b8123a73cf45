package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinesight/internal/utils"
)

// Logger 请求日志中间件
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// 处理请求
		c.Next()

		// 记录日志（IP 做哈希脱敏）
		latency := time.Since(start)
		status := c.Writer.Status()

		log.Printf("[%s] %s %s %d %v",
			c.Request.Method,
			path,
			utils.HashIP(c.ClientIP()),
			status,
			latency,
		)
	}
}
