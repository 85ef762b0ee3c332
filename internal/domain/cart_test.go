package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	items := []LineItem{{ProductID: "p1", Price: decimal.NewFromInt(50000), Size: SizeM, Quantity: 2}}

	tests := []struct {
		name     string
		member   *Member
		subtotal int64
		discount int64
		total    int64
	}{
		{name: "member with 10 percent", member: &Member{Discount: 10}, subtotal: 100000, discount: 10000, total: 90000},
		{name: "no member", member: nil, subtotal: 100000, discount: 0, total: 100000},
		{name: "member without discount", member: &Member{Discount: 0}, subtotal: 100000, discount: 0, total: 100000},
		{name: "full discount", member: &Member{Discount: 100}, subtotal: 100000, discount: 100000, total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(items, tt.member)
			assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(tt.subtotal)), "subtotal %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(decimal.NewFromInt(tt.discount)), "discount %s", got.Discount)
			assert.True(t, got.Total.Equal(decimal.NewFromInt(tt.total)), "total %s", got.Total)
			assert.True(t, got.Total.Equal(got.Subtotal.Sub(got.Discount)))
		})
	}
}

func TestComputeTotals_FractionalDiscount(t *testing.T) {
	items := []LineItem{
		{Price: decimal.NewFromInt(33333), Quantity: 1},
		{Price: decimal.RequireFromString("1500.50"), Quantity: 3},
	}

	got := ComputeTotals(items, &Member{Discount: 15})

	assert.Equal(t, "37834.5", got.Subtotal.String())
	assert.Equal(t, "5675.175", got.Discount.String())
	assert.Equal(t, "32159.325", got.Total.String())
}

func TestCart_AddMergesSameProductAndSize(t *testing.T) {
	var cart Cart

	first := cart.Add(CartItem{ProductID: "p1", Size: SizeM, Quantity: 1, Price: decimal.NewFromInt(10)})
	merged := cart.Add(CartItem{ProductID: "p1", Size: SizeM, Quantity: 2, Price: decimal.NewFromInt(10)})
	other := cart.Add(CartItem{ProductID: "p1", Size: SizeL, Quantity: 1, Price: decimal.NewFromInt(10)})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, first.CartID, merged.CartID)
	assert.Equal(t, 3, merged.Quantity)
	assert.NotEqual(t, first.CartID, other.CartID)
	assert.Equal(t, 3, cart.QuantityOf("p1", SizeM))
	assert.Equal(t, 1, cart.QuantityOf("p1", SizeL))
	assert.Equal(t, 0, cart.QuantityOf("p2", SizeL))
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(40)))
}

func TestCart_Remove(t *testing.T) {
	var cart Cart
	a := cart.Add(CartItem{ProductID: "a", Size: SizeS, Quantity: 1})
	b := cart.Add(CartItem{ProductID: "b", Size: SizeS, Quantity: 1})

	assert.True(t, cart.Remove(a.CartID))
	assert.False(t, cart.Remove(a.CartID))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.CartID, cart.Items[0].CartID)

	cart.Clear()
	assert.True(t, cart.IsEmpty())
}

func TestCart_LineItemsSnapshot(t *testing.T) {
	var cart Cart
	added := cart.Add(CartItem{ProductID: "a", Name: "Kaos", Price: decimal.NewFromInt(75000), Size: SizeXL, Quantity: 2})

	items := cart.LineItems()

	require.Len(t, items, 1)
	assert.Equal(t, LineItem{
		ProductID: "a",
		Name:      "Kaos",
		Price:     decimal.NewFromInt(75000),
		Size:      SizeXL,
		Quantity:  2,
		CartID:    added.CartID,
	}, items[0])
}
