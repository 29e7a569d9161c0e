package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// Logger пишет строку лога на каждый запрос. Запросу присваивается request id из заголовка
// X-Request-ID или новый uuid, он же возвращается клиенту.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	entry := l.WithField("component", "http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := logrus.Fields{
			"requestID": requestID,
			"method":    c.Request.Method,
			"path":      c.FullPath(),
			"uri":       c.Request.RequestURI,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"size":      c.Writer.Size(),
		}
		le := entry.WithFields(fields)
		if len(c.Errors) > 0 {
			le = le.WithError(c.Errors.Last().Err)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			le.Error("request failed")
		case status >= 400:
			le.Warn("request rejected")
		default:
			le.Info("request served")
		}
	}
}
