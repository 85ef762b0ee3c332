package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var (
	ErrUsernameExists = repository.ErrUsernameExists
	ErrWrongPassword  = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Count(ctx context.Context) (int64, error)
}

type TokenRevoker interface {
	Revoke(id string, expiresAt time.Time)
}

type CartClearer interface {
	Clear(userID uint)
}

type AuthService struct {
	repo    AuthUserRepository
	revoker TokenRevoker
	carts   CartClearer
}

func NewAuthService(repo AuthUserRepository, revoker TokenRevoker, carts CartClearer) *AuthService {
	return &AuthService{
		repo:    repo,
		revoker: revoker,
		carts:   carts,
	}
}

func (s *AuthService) CreateUser(ctx context.Context, username, password string) (domain.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	created, err := s.repo.Create(ctx, domain.User{
		Username: username,
		Password: hash,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// EnsureDefaultAdmin creates the given account when there are no users yet.
// It reports whether an account was created.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("s.repo.Count -> %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err = s.CreateUser(ctx, username, password); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return false, nil
		}
		return false, err
	}

	zap.L().Info("provisioned default admin account", zap.String("username", username))

	return true, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByUsername -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	return user, nil
}

// Logout revokes the token and drops the user's cart.
func (s *AuthService) Logout(ctx context.Context, userID uint, tokenID string, expiresAt time.Time) {
	s.revoker.Revoke(tokenID, expiresAt)
	s.carts.Clear(userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	return string(hash), nil
}
