package response

import (
	"time"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
