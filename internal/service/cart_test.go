package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	seedProduct(t, r, "p1", "Hoodie", 200000, domain.Stock{domain.SizeM: 3, domain.SizeL: 0})
	carts := NewCartService(r.products)

	first, err := carts.Add(ctx, 1, "p1", "m", 2)
	require.NoError(t, err)
	assert.Equal(t, "Hoodie", first.Name)
	assert.Equal(t, "200000", first.Price.String())
	assert.Equal(t, domain.SizeM, first.Size)

	merged, err := carts.Add(ctx, 1, "p1", "M", 1)
	require.NoError(t, err)
	assert.Equal(t, first.CartID, merged.CartID)
	assert.Equal(t, 3, merged.Quantity)

	_, err = carts.Add(ctx, 1, "p1", "M", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = carts.Add(ctx, 1, "p1", "L", 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = carts.Add(ctx, 1, "p1", "XS", 1)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = carts.Add(ctx, 1, "p1", "M", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = carts.Add(ctx, 1, "nope", "M", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Another cashier has a cart of its own.
	_, err = carts.Add(ctx, 2, "p1", "M", 3)
	require.NoError(t, err)

	assert.Len(t, carts.Get(1).Items, 1)
	assert.Len(t, carts.Get(2).Items, 1)
}

func TestCartService_RemoveAndReset(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)
	seedProduct(t, r, "p1", "Hoodie", 200000, domain.Stock{domain.SizeS: 5, domain.SizeXL: 5})
	carts := NewCartService(r.products)

	a, err := carts.Add(ctx, 1, "p1", "S", 1)
	require.NoError(t, err)
	_, err = carts.Add(ctx, 1, "p1", "XL", 1)
	require.NoError(t, err)

	require.NoError(t, carts.Remove(1, a.CartID))
	assert.ErrorIs(t, carts.Remove(1, a.CartID), ErrCartItemNotFound)
	assert.ErrorIs(t, carts.Remove(9, a.CartID), ErrCartItemNotFound)
	assert.Len(t, carts.Get(1).Items, 1)

	got := carts.Get(1)
	got.Items[0].Quantity = 99
	assert.Equal(t, 1, carts.Get(1).Items[0].Quantity)

	carts.ResetAll()
	assert.True(t, carts.Get(1).IsEmpty())
	assert.NotNil(t, carts.Get(1).Items)
}
