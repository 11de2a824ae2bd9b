package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/domain"
	"github.com/simp-lee/photostore/internal/pkg"
)

var errPanic = domain.NewAppError(domain.CodeInternal, "internal server error", nil)

// Recovery returns a gin middleware that recovers from panics, logs the value
// with its stack trace and answers with the standard 500 envelope:
//
//	{"code": 500, "message": "internal server error", "data": {}}
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				pkg.Abort(c, errPanic)
			}
		}()
		c.Next()
	}
}
