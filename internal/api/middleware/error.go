package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/userservice/internal/api/dto"
	"github.com/martijn/userservice/internal/core/domain"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware recovers panics and renders the last error a
// handler attached with c.Error. Validation failures become 400 with a JSON
// body naming the field; anything else becomes 500 with the error as plain
// text.
func ErrorHandlerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic while handling request",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", GetRequestID(c)),
				)
				c.String(http.StatusInternalServerError, "Internal Server Error")
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		switch domain.KindOf(err) {
		case domain.KindValidation:
			var verr *domain.ValidationError
			errors.As(err, &verr)
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad Request",
				Message: verr.Error(),
				Code:    http.StatusBadRequest,
				Field:   verr.Field,
			})
		default:
			c.String(http.StatusInternalServerError, err.Error())
		}
	}
}
