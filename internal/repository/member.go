package repository

import (
	"context"
	"fmt"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
)

var ErrMemberNotFound = dao.ErrMemberNotFound

type MemberDAO interface {
	Insert(ctx context.Context, member dao.Member) (dao.Member, error)
	FindAll(ctx context.Context, query string) ([]dao.Member, error)
	FindByID(ctx context.Context, id string) (dao.Member, error)
	Update(ctx context.Context, member dao.Member) (dao.Member, error)
	UpdateNotification(ctx context.Context, id, status, errMsg string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type MemberRepository struct {
	dao MemberDAO
}

func NewMemberRepository(dao MemberDAO) *MemberRepository {
	return &MemberRepository{
		dao: dao,
	}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	created, err := r.dao.Insert(ctx, memberDomainToDao(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return memberDaoToDomain(created), nil
}

func (r *MemberRepository) FindAll(ctx context.Context, query string) ([]domain.Member, error) {
	found, err := r.dao.FindAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	members := make([]domain.Member, len(found))
	for i, m := range found {
		members[i] = memberDaoToDomain(m)
	}

	return members, nil
}

func (r *MemberRepository) FindByID(ctx context.Context, id string) (domain.Member, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return memberDaoToDomain(found), nil
}

func (r *MemberRepository) Update(ctx context.Context, member domain.Member) (domain.Member, error) {
	updated, err := r.dao.Update(ctx, memberDomainToDao(member))
	if err != nil {
		return domain.Member{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return memberDaoToDomain(updated), nil
}

func (r *MemberRepository) UpdateNotification(ctx context.Context, id string, n domain.Notification) error {
	if err := r.dao.UpdateNotification(ctx, id, string(n.Status), n.Error); err != nil {
		return fmt.Errorf("r.dao.UpdateNotification -> %w", err)
	}

	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func memberDomainToDao(m domain.Member) dao.Member {
	status := m.Notification.Status
	if status == "" {
		status = domain.NotificationNone
	}

	return dao.Member{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		Discount:     m.Discount,
		NotifyStatus: string(status),
		NotifyError:  m.Notification.Error,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func memberDaoToDomain(m dao.Member) domain.Member {
	return domain.Member{
		ID:       m.ID,
		Name:     m.Name,
		Phone:    m.Phone,
		Email:    m.Email,
		Discount: m.Discount,
		Notification: domain.Notification{
			Status: domain.NotificationStatus(m.NotifyStatus),
			Error:  m.NotifyError,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
