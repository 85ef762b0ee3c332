package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errConfirmationRequired = errors.New("this operation deletes data, repeat it with confirm=true")

// Err is the body of every error response.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Err            error  `json:"-"`
	Message        string `json:"message" example:"detailed error message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err))
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Err:            err,
		Message:        err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Err:            err,
		Message:        "wrong username or password",
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Err:            err,
		Message:        "unauthorized",
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusForbidden,
		Err:            err,
		Message:        "permission denied",
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Message:        fmt.Sprintf("%s with %s %v not found", resource, key, value),
	}
}

// ErrNothingFound is a 404 for a query that matched no records.
func ErrNothingFound(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Err:            err,
		Message:        err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Err:            err,
		Message:        err.Error(),
	}
}

func ErrConfirmationRequired() *Err {
	return ErrConflict(errConfirmationRequired)
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Err:            err,
		Message:        "internal server error",
	}
}
