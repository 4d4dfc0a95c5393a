package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-loans-go/circulation/shell"
)

const (
	logMsgRequestCompleted = "http request completed"
	logAttrMethod          = "method"
	logAttrPath            = "path"
	logAttrStatusCode      = "status_code"
	logAttrDurationMS      = "duration_ms"
)

func requestLogger(logger shell.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if logger == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		args := []any{
			logAttrMethod, c.Request.Method,
			logAttrPath, c.FullPath(),
			logAttrStatusCode, c.Writer.Status(),
			logAttrDurationMS, shell.ToMilliseconds(time.Since(start)),
		}

		if c.Writer.Status() >= 500 {
			logger.Warn(logMsgRequestCompleted, args...)
			return
		}

		logger.Info(logMsgRequestCompleted, args...)
	}
}
