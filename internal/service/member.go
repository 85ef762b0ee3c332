package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var (
	ErrMemberNotFound  = repository.ErrMemberNotFound
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

type MemberRepository interface {
	Create(ctx context.Context, member domain.Member) (domain.Member, error)
	FindAll(ctx context.Context, query string) ([]domain.Member, error)
	FindByID(ctx context.Context, id string) (domain.Member, error)
	Update(ctx context.Context, member domain.Member) (domain.Member, error)
	UpdateNotification(ctx context.Context, id string, n domain.Notification) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type MemberNotifier interface {
	Notify(member domain.Member) *NotificationTask
}

// MemberInput carries the editable member fields. A nil Discount means the
// store default on registration and "unchanged" on update.
type MemberInput struct {
	Name     string
	Phone    string
	Email    string
	Discount *int
}

type MemberService struct {
	repo            MemberRepository
	notifier        MemberNotifier
	defaultDiscount int
}

// NewMemberService builds the service. notifier may be nil, in which case no
// welcome e-mail is sent.
func NewMemberService(repo MemberRepository, notifier MemberNotifier, defaultDiscount int) *MemberService {
	return &MemberService{
		repo:            repo,
		notifier:        notifier,
		defaultDiscount: defaultDiscount,
	}
}

// List returns every member, or those whose name or phone contains query.
func (s *MemberService) List(ctx context.Context, query string) ([]domain.Member, error) {
	members, err := s.repo.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return members, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return member, nil
}

// Register stores a new member. When the member has an e-mail address and a
// notifier is configured, a welcome e-mail task is started and returned;
// otherwise the task is nil.
func (s *MemberService) Register(ctx context.Context, in MemberInput) (domain.Member, *NotificationTask, error) {
	discount := s.defaultDiscount
	if in.Discount != nil {
		discount = *in.Discount
	}
	if discount < 0 || discount > 100 {
		return domain.Member{}, nil, ErrInvalidDiscount
	}

	member := domain.Member{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		Discount:     discount,
		Notification: domain.Notification{Status: domain.NotificationNone},
	}

	notify := s.notifier != nil && member.Email != ""
	if notify {
		member.Notification.Status = domain.NotificationPending
	}

	created, err := s.repo.Create(ctx, member)
	if err != nil {
		return domain.Member{}, nil, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("member registered", zap.String("id", created.ID), zap.Bool("notify", notify))

	var task *NotificationTask
	if notify {
		task = s.notifier.Notify(created)
	}

	return created, task, nil
}

func (s *MemberService) Update(ctx context.Context, id string, in MemberInput) (domain.Member, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Phone = strings.TrimSpace(in.Phone)
	current.Email = strings.TrimSpace(in.Email)
	if in.Discount != nil {
		if *in.Discount < 0 || *in.Discount > 100 {
			return domain.Member{}, ErrInvalidDiscount
		}
		current.Discount = *in.Discount
	}

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Member{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the member. Transactions that reference it are left as
// they are.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	zap.L().Info("member deleted", zap.String("id", id))

	return nil
}
