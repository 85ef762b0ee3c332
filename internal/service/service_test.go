package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
	"github.com/tokobajukeren/pos-api/internal/testutil"
)

type repos struct {
	db           *gorm.DB
	users        *repository.UserRepository
	products     *repository.ProductRepository
	members      *repository.MemberRepository
	transactions *repository.TransactionRepository
	dataset      *repository.DatasetRepository
}

func newRepos(t *testing.T) repos {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	return repos{
		db:           gdb,
		users:        repository.NewUserRepository(dao.NewUserDAO(gdb)),
		products:     repository.NewProductRepository(dao.NewProductDAO(gdb)),
		members:      repository.NewMemberRepository(dao.NewMemberDAO(gdb)),
		transactions: repository.NewTransactionRepository(dao.NewTransactionDAO(gdb)),
		dataset:      repository.NewDatasetRepository(dao.NewDatasetDAO(gdb)),
	}
}

func seedProduct(t *testing.T, r repos, id, name string, price int64, stock domain.Stock) domain.Product {
	t.Helper()

	p, err := r.products.Create(context.Background(), domain.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func seedMember(t *testing.T, r repos, id, name string, discount int) domain.Member {
	t.Helper()

	m, err := r.members.Create(context.Background(), domain.Member{
		ID:           id,
		Name:         name,
		Phone:        "08123",
		Discount:     discount,
		Notification: domain.Notification{Status: domain.NotificationNone},
	})
	require.NoError(t, err)
	return m
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *fakeMailer) Sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]sentMail(nil), m.sent...)
}
