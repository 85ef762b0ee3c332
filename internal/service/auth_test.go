package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/pkg/jwthelper"
)

func TestAuthService_DefaultAdminAndLogin(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := NewAuthService(r.users, jwthelper.NewBlocklist(), NewCartService(r.products))

	created, err := svc.EnsureDefaultAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefaultAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	user, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.NotEqual(t, "admin123", user.Password)

	_, err = svc.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.CreateUser(ctx, "admin", "x1y2z3")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	svc := NewAuthService(r.users, jwthelper.NewBlocklist(), NewCartService(r.products))

	user, err := svc.CreateUser(ctx, "kasir", "rahasia1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "salah1", "baru123"), ErrWrongPassword)
	require.NoError(t, svc.ChangePassword(ctx, user.ID, "rahasia1", "baru123"))

	_, err = svc.Login(ctx, "kasir", "rahasia1")
	assert.ErrorIs(t, err, ErrWrongPassword)
	_, err = svc.Login(ctx, "kasir", "baru123")
	assert.NoError(t, err)
}

func TestAuthService_LogoutRevokesAndClearsCart(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	seedProduct(t, r, "p1", "Kaos", 1000, domain.Stock{domain.SizeM: 1})
	blocklist := jwthelper.NewBlocklist()
	carts := NewCartService(r.products)
	svc := NewAuthService(r.users, blocklist, carts)

	_, err := carts.Add(ctx, 7, "p1", "M", 1)
	require.NoError(t, err)

	svc.Logout(ctx, 7, "token-1", time.Now().Add(time.Hour))

	assert.True(t, blocklist.IsRevoked("token-1"))
	assert.True(t, carts.Get(7).IsEmpty())
}
