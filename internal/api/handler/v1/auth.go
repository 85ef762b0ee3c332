package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/request"
	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/api/middleware"
	"github.com/tokobajukeren/pos-api/internal/config"
	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/pkg/jwthelper"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context, userID uint, tokenID string, expiresAt time.Time)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
	uSvc UserService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, uSvc UserService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleLogin godoc
// @Summary      Login a cashier
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, ctx.Request.UserAgent(), h.conf.TokenTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.conf.TokenTTL),
		User:      user,
	})
}

// HandleLogout godoc
// @Summary      Logout and revoke the current token
// @Description  The cashier's cart is dropped as well.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Router       /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.KeyUserID)
	tokenID := ctx.GetString(middleware.KeyTokenID)
	expiresAt := ctx.GetTime(middleware.KeyExpiresAt)

	h.svc.Logout(ctx.Request.Context(), userID, tokenID, expiresAt)

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "logged out"})
}

// HandleMe godoc
// @Summary      Get the logged-in account
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleChangePassword godoc
// @Summary      Change the logged-in account's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/password [put]
// @Security BearerAuth
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.ChangePassword(ctx.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("current password is wrong")))
			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "password updated"})
}
