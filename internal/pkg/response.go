package pkg

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/photostore/internal/domain"
)

// Response is the standard JSON envelope for API responses.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success sends a 200 JSON envelope with the given message and data.
func Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Error sends a JSON error envelope. An *domain.AppError supplies the status,
// message and field details; any other error is a 500 carrying its message.
func Error(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.JSON(status, body)
}

// Abort is Error for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := errorBody(err)
	c.AbortWithStatusJSON(status, body)
}

func errorBody(err error) (int, Response) {
	status := domain.HTTPStatusCode(err)

	msg := "internal error"
	data := map[string]string{}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
		if len(appErr.Fields) > 0 {
			data = appErr.Fields
		}
	} else if err != nil {
		msg = err.Error()
	}

	return status, Response{
		Code:    status,
		Message: msg,
		Data:    data,
	}
}
