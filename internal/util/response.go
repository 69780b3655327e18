package util

import (
	"errors"

	"github.com/Re1354/building-management-system/internal/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// business error codes, returned next to the HTTP status
const (
	CodeInvalidParam = 40001
	CodeConflict     = 40002
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Error writes the standard error body {code, message}.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// Fail turns a service error into a response. Internal failures are logged
// with their cause and answered with a generic message.
func Fail(c *gin.Context, log *zap.Logger, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(errors.Unwrap(e)),
		)
		_ = c.Error(err)
	}
	Error(c, e.Kind.HTTPStatus(), codeFor(e.Kind), e.Message)
}

func codeFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return CodeInvalidParam
	case apperr.KindConflict:
		return CodeConflict
	case apperr.KindNotFound:
		return CodeNotFound
	case apperr.KindUnauthorized:
		return CodeAuth
	default:
		return CodeServerErr
	}
}
