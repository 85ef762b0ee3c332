package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/pkg/jwthelper"
)

// Context keys set by VerifyJWT.
const (
	KeyUserID    = "userID"
	KeyTokenID   = "tokenID"
	KeyExpiresAt = "tokenExpiresAt"
)

var (
	errMissingToken  = errors.New("missing bearer token")
	errRevokedToken  = errors.New("token has been revoked")
	errAgentMismatch = errors.New("token was issued to another client")
)

type RevocationChecker interface {
	IsRevoked(id string) bool
}

type Authenticator struct {
	key     []byte
	revoked RevocationChecker
}

func NewAuthenticator(key string, revoked RevocationChecker) *Authenticator {
	return &Authenticator{
		key:     []byte(key),
		revoked: revoked,
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.key, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if a.revoked != nil && a.revoked.IsRevoked(claims.ID) {
			response.RenderErr(ctx, response.ErrUnauthorized(errRevokedToken))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errAgentMismatch))
			return
		}

		var expiresAt time.Time
		if claims.ExpiresAt != nil {
			expiresAt = claims.ExpiresAt.Time
		}

		ctx.Set(KeyUserID, claims.UserID)
		ctx.Set(KeyTokenID, claims.ID)
		ctx.Set(KeyExpiresAt, expiresAt)

		ctx.Next()
	}
}
