package middleware

import (
	"bytes"
	"io"
	"net/http"

	"parking-lot-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLoggedBody caps how much of a request body ends up in a log line.
const maxLoggedBody = 1024

// LogRequestBody reads the raw request body, logs it at debug level and
// puts it back so the handler can still bind it.
func LogRequestBody() gin.HandlerFunc {
	log := logger.WithComponent("middleware")

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if err != nil {
			log.Warn("Failed to read request body",
				zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}

		if ce := log.Check(zap.DebugLevel, "Request body"); ce != nil {
			logged := body
			truncated := false
			if len(logged) > maxLoggedBody {
				logged = logged[:maxLoggedBody]
				truncated = true
			}
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.ByteString("body", logged),
				zap.Bool("truncated", truncated),
			)
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
