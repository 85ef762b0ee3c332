package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/report"
)

func TestParseReportQuery(t *testing.T) {
	q, err := ParseReportQuery("2024-01-01", "2024-01-31", "cash", "member", "month", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, report.PeriodMonth, q.Period)
	assert.Equal(t, report.PaymentCash, q.Filter.Payment)
	assert.Equal(t, report.MemberOnly, q.Filter.Member)

	q, err = ParseReportQuery("", "", "", "", "", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, report.PeriodDay, q.Period)
	assert.True(t, q.Filter.From.IsZero())

	_, err = ParseReportQuery("2024-02-01", "2024-01-01", "", "", "", time.UTC)
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
	_, err = ParseReportQuery("", "", "crypto", "", "", time.UTC)
	assert.ErrorIs(t, err, report.ErrInvalidPayment)
	_, err = ParseReportQuery("", "", "", "", "week", time.UTC)
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}

func TestReportService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	svc := NewReportService(r.transactions, r.members, time.UTC, 5)

	q, err := ParseReportQuery("", "", "", "", "", time.UTC)
	require.NoError(t, err)

	_, err = svc.ExportCSV(ctx, q)
	assert.ErrorIs(t, err, ErrNoReportData)

	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeM: 5})
	_, err = carts.Add(ctx, cashier.ID, "p1", "M", 2)
	require.NoError(t, err)
	tx, err := checkout.Checkout(ctx, cashier, CheckoutInput{PaymentMethod: "Kartu Debit"})
	require.NoError(t, err)

	data, err := svc.ExportCSV(ctx, q)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID Transaksi"))
	assert.Contains(t, lines[1], tx.ID)
	assert.Contains(t, lines[1], "Kaos (M) x2")

	q.Period = report.PeriodYear
	data, err = svc.ExportCSV(ctx, q)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Periode")
	assert.Contains(t, string(data), tx.Date.UTC().Format("2006"))
}

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeM: 3})
	seedProduct(t, r, "p2", "Topi", 20000, domain.NewStock())
	seedMember(t, r, "m1", "Budi", 0)

	_, err := carts.Add(ctx, cashier.ID, "p1", "M", 1)
	require.NoError(t, err)
	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{})
	require.NoError(t, err)

	svc := NewDashboardService(r.products, r.members, r.transactions, time.UTC, 5, 5)
	got, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, got.ProductCount)
	assert.Equal(t, 1, got.MemberCount)
	assert.Equal(t, 1, got.TransactionsToday)
	assert.Equal(t, "50000", got.RevenueToday.String())
	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "p1", got.LowStock[0].ProductID)
	require.Len(t, got.OutOfStock, 1)
	assert.Equal(t, "p2", got.OutOfStock[0].ProductID)
}
