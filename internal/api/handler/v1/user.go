package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/api/middleware"
	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/service"
)

var errNoUserInContext = errors.New("no authenticated user in request context")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// getUserFromContext loads the account whose token authenticated the request.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	userID := ctx.GetUint(middleware.KeyUserID)
	if userID == 0 {
		return domain.User{}, response.ErrUnauthorized(errNoUserInContext)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(err)
		}

		err = fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err)
		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// confirmed reports whether a destructive request carries confirm=true.
func confirmed(ctx *gin.Context) bool {
	ok, err := strconv.ParseBool(ctx.Query("confirm"))
	return err == nil && ok
}

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "OK"})
}
