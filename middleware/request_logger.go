package middleware

import (
	"time"

	"github.com/devfolio/portfolio-backend/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request. Static asset hits
// are logged at debug level.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []interface{}{
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"bytes", c.Writer.Size(),
			RequestIDKey, c.GetString(RequestIDKey),
		}

		log := logger.GetLogger()
		switch {
		case c.Writer.Status() >= 500:
			log.Errorw("Request completed", fields...)
		case c.Writer.Status() >= 400:
			log.Warnw("Request completed", fields...)
		case c.FullPath() == "" || c.FullPath() == "/metrics":
			log.Debugw("Request completed", fields...)
		default:
			log.Infow("Request completed", fields...)
		}
	}
}
