package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/receipt"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var ErrTransactionNotFound = repository.ErrTransactionNotFound

type TransactionRepository interface {
	FindAll(ctx context.Context) ([]domain.Transaction, error)
	FindByID(ctx context.Context, id string) (domain.Transaction, error)
}

type TransactionService struct {
	repo    TransactionRepository
	members MemberFinder
	store   receipt.Store
	loc     *time.Location
}

func NewTransactionService(repo TransactionRepository, members MemberFinder, store receipt.Store, loc *time.Location) *TransactionService {
	return &TransactionService{
		repo:    repo,
		members: members,
		store:   store,
		loc:     loc,
	}
}

func (s *TransactionService) List(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return transactions, nil
}

func (s *TransactionService) Get(ctx context.Context, id string) (domain.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return transaction, nil
}

// Receipt renders the printable receipt. A member that no longer exists is
// left off.
func (s *TransactionService) Receipt(ctx context.Context, id string) (string, error) {
	transaction, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	var memberName string
	if transaction.HasMember() {
		member, err := s.members.FindByID(ctx, *transaction.MemberID)
		switch {
		case err == nil:
			memberName = member.Name
		case !errors.Is(err, ErrMemberNotFound):
			return "", fmt.Errorf("s.members.FindByID -> %w", err)
		}
	}

	var b strings.Builder
	if err = receipt.Render(&b, s.store, transaction, memberName, s.loc); err != nil {
		return "", fmt.Errorf("receipt.Render -> %w", err)
	}

	return b.String(), nil
}
