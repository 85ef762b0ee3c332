package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
	"github.com/tokobajukeren/pos-api/internal/testutil"
)

func TestStockDecrements(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: "p1", Size: domain.SizeM, Quantity: 2},
		{ProductID: "p2", Size: domain.SizeS, Quantity: 1},
		{ProductID: "p1", Size: domain.SizeM, Quantity: 3},
		{ProductID: "p1", Size: domain.SizeL, Quantity: 1},
	}

	want := []dao.StockDecrement{
		{ProductID: "p1", Size: "M", Quantity: 5},
		{ProductID: "p2", Size: "S", Quantity: 1},
		{ProductID: "p1", Size: "L", Quantity: 1},
	}
	if diff := cmp.Diff(want, stockDecrements(items)); diff != "" {
		t.Errorf("stockDecrements() mismatch (-want +got):\n%s", diff)
	}
}

func TestProductRepository_StockIsNormalized(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(dao.NewProductDAO(testutil.NewTestDB(t)))

	created, err := repo.Create(ctx, domain.Product{
		ID:    "p1",
		Name:  "Jaket",
		Price: decimal.NewFromInt(300000),
		Stock: domain.Stock{domain.SizeXL: 2, "XXXL": 9},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.Stock{"S": 0, "M": 0, "L": 0, "XL": 2, "XXL": 0}, created.Stock)

	found, err := repo.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, created.Stock, found.Stock)

	_, err = repo.FindByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestTransactionRepository_RecordSale(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewTestDB(t)
	products := NewProductRepository(dao.NewProductDAO(gdb))
	repo := NewTransactionRepository(dao.NewTransactionDAO(gdb))

	_, err := products.Create(ctx, domain.Product{
		ID:    "p1",
		Name:  "Kaos",
		Price: decimal.NewFromInt(50000),
		Stock: domain.Stock{domain.SizeM: 5},
	})
	require.NoError(t, err)

	memberID := "m1"
	sale := domain.Transaction{
		ID:   "TRX-1",
		Date: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Items: []domain.LineItem{
			{ProductID: "p1", Name: "Kaos", Price: decimal.NewFromInt(50000), Size: domain.SizeM, Quantity: 1, CartID: "a"},
			{ProductID: "p1", Name: "Kaos", Price: decimal.NewFromInt(50000), Size: domain.SizeM, Quantity: 1, CartID: "b"},
		},
		MemberID:      &memberID,
		Subtotal:      decimal.NewFromInt(100000),
		Discount:      decimal.NewFromInt(10000),
		Total:         decimal.NewFromInt(90000),
		PaymentMethod: domain.PaymentEWallet,
		Cashier:       "admin",
	}
	_, err = repo.RecordSale(ctx, sale)
	require.NoError(t, err)

	p1, err := products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p1.Stock[domain.SizeM])

	found, err := repo.FindByID(ctx, "TRX-1")
	require.NoError(t, err)
	assert.True(t, found.Subtotal.Equal(decimal.NewFromInt(100000)))
	assert.True(t, found.Total.Equal(decimal.NewFromInt(90000)))
	assert.Equal(t, domain.PaymentEWallet, found.PaymentMethod)
	assert.Equal(t, "admin", found.Cashier)
	require.NotNil(t, found.MemberID)
	assert.Equal(t, "m1", *found.MemberID)
	assert.True(t, found.Date.Equal(sale.Date))
	assert.Equal(t, []string{"a", "b"}, []string{found.Items[0].CartID, found.Items[1].CartID})
}

func TestDatasetRepository_ReplaceAllKeepsOrder(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewTestDB(t)
	repo := NewDatasetRepository(dao.NewDatasetDAO(gdb))
	products := NewProductRepository(dao.NewProductDAO(gdb))
	members := NewMemberRepository(dao.NewMemberDAO(gdb))

	err := repo.ReplaceAll(ctx, Dataset{
		Products: []domain.Product{
			{ID: "z", Name: "Zeta", Price: decimal.NewFromInt(1)},
			{ID: "a", Name: "Alpha", Price: decimal.NewFromInt(2)},
		},
		Members: []domain.Member{
			{ID: "m2", Name: "Dua", Phone: "2"},
			{ID: "m1", Name: "Satu", Phone: "1"},
		},
	})
	require.NoError(t, err)

	ps, err := products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "z", ps[0].ID)
	assert.Equal(t, "a", ps[1].ID)

	ms, err := members.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "m2", ms[0].ID)
	assert.Equal(t, domain.NotificationNone, ms[0].Notification.Status)
}
