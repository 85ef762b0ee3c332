package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

func newCheckout(t *testing.T) (repos, *CartService, *CheckoutService) {
	t.Helper()

	r := newRepos(t)
	carts := NewCartService(r.products)
	checkout := NewCheckoutService(carts, r.members, r.transactions, NewIDGenerator())
	return r, carts, checkout
}

var cashier = domain.User{ID: 1, Username: "admin"}

func TestCheckout_MemberDiscount(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	seedProduct(t, r, "p1", "Kaos Polos", 50000, domain.Stock{domain.SizeM: 5})
	seedMember(t, r, "m1", "Budi", 10)

	_, err := carts.Add(ctx, cashier.ID, "p1", "M", 2)
	require.NoError(t, err)

	quote, err := checkout.Quote(ctx, cashier.ID, "Member", "m1")
	require.NoError(t, err)
	assert.Equal(t, "100000", quote.Subtotal.String())
	assert.Equal(t, "10000", quote.Discount.String())
	assert.Equal(t, "90000", quote.Total.String())

	tx, err := checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Member", MemberID: "m1", PaymentMethod: "Tunai"})
	require.NoError(t, err)

	assert.Regexp(t, `^TRX-\d+$`, tx.ID)
	assert.Equal(t, "90000", tx.Total.String())
	assert.Equal(t, "10000", tx.Discount.String())
	require.NotNil(t, tx.MemberID)
	assert.Equal(t, "m1", *tx.MemberID)
	assert.Equal(t, "admin", tx.Cashier)

	product, err := r.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock[domain.SizeM])

	assert.True(t, carts.Get(cashier.ID).IsEmpty())

	stored, err := r.transactions.FindByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "90000", stored.Total.String())
	require.Len(t, stored.Items, 1)
	assert.Equal(t, "Kaos Polos", stored.Items[0].Name)
}

func TestCheckout_Validation(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)

	_, err := checkout.Checkout(ctx, cashier, CheckoutInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeS: 1})
	_, err = carts.Add(ctx, cashier.ID, "p1", "S", 1)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Member"})
	assert.ErrorIs(t, err, ErrMemberRequired)

	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Member", MemberID: "ghost"})
	assert.ErrorIs(t, err, ErrMemberNotFound)

	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Guest"})
	assert.ErrorIs(t, err, ErrInvalidCustomerType)

	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{PaymentMethod: "Bitcoin"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	assert.False(t, carts.Get(cashier.ID).IsEmpty())
}

func TestCheckout_NonMemberIgnoresMemberID(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeS: 1})
	seedMember(t, r, "m1", "Budi", 50)

	_, err := carts.Add(ctx, cashier.ID, "p1", "S", 1)
	require.NoError(t, err)

	tx, err := checkout.Checkout(ctx, cashier, CheckoutInput{CustomerType: "Non-Member", MemberID: "m1", PaymentMethod: "E-Wallet"})
	require.NoError(t, err)

	assert.Nil(t, tx.MemberID)
	assert.True(t, tx.Discount.IsZero())
	assert.Equal(t, domain.PaymentEWallet, tx.PaymentMethod)
}

func TestCheckout_StockTakenSinceAddKeepsCart(t *testing.T) {
	ctx := context.Background()
	r, carts, checkout := newCheckout(t)
	seedProduct(t, r, "p1", "Kaos", 50000, domain.Stock{domain.SizeL: 2})

	_, err := carts.Add(ctx, cashier.ID, "p1", "L", 2)
	require.NoError(t, err)

	other := domain.User{ID: 2, Username: "kasir2"}
	_, err = carts.Add(ctx, other.ID, "p1", "L", 1)
	require.NoError(t, err)
	_, err = checkout.Checkout(ctx, other, CheckoutInput{})
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, cashier, CheckoutInput{})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	assert.Len(t, carts.Get(cashier.ID).Items, 1)
	product, err := r.products.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock[domain.SizeL])

	all, err := r.transactions.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestIDGenerator_Monotonic(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	g := NewIDGenerator()
	g.now = func() time.Time { return fixed }

	assert.Equal(t, "TRX-1700000000000", g.Next())
	assert.Equal(t, "TRX-1700000000001", g.Next())

	g.now = func() time.Time { return fixed.Add(-time.Second) }
	assert.Equal(t, "TRX-1700000000002", g.Next())
}
