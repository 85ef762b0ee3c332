package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	for _, in := range []string{"S", "m", " xl ", "XXL"} {
		_, ok := ParseSize(in)
		assert.True(t, ok, in)
	}
	for _, in := range []string{"", "XS", "3XL"} {
		_, ok := ParseSize(in)
		assert.False(t, ok, in)
	}
}

func TestStock_Normalize(t *testing.T) {
	got := Stock{SizeM: 4, "XS": 9}.Normalize()

	assert.Equal(t, Stock{SizeS: 0, SizeM: 4, SizeL: 0, SizeXL: 0, SizeXXL: 0}, got)
	assert.Equal(t, 4, got.Total())
}

func TestStock_LowAndSoldOut(t *testing.T) {
	stock := Stock{SizeS: 0, SizeM: 3, SizeL: 5, SizeXL: 6, SizeXXL: 0}

	assert.Equal(t, Stock{SizeM: 3, SizeL: 5}, stock.Low(5))
	assert.False(t, stock.IsSoldOut())
	assert.True(t, NewStock().IsSoldOut())
	assert.Empty(t, NewStock().Low(5))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("")
	assert.True(t, ok)
	assert.Equal(t, PaymentCash, m)
	assert.True(t, m.IsCash())

	m, ok = ParsePaymentMethod("e-wallet")
	assert.True(t, ok)
	assert.Equal(t, PaymentEWallet, m)
	assert.False(t, m.IsCash())

	_, ok = ParsePaymentMethod("Bitcoin")
	assert.False(t, ok)
}

func TestParseCustomerType(t *testing.T) {
	c, ok := ParseCustomerType("member")
	assert.True(t, ok)
	assert.Equal(t, CustomerMember, c)

	c, ok = ParseCustomerType("")
	assert.True(t, ok)
	assert.Equal(t, CustomerNonMember, c)

	_, ok = ParseCustomerType("vip")
	assert.False(t, ok)
}

func TestMember_Matches(t *testing.T) {
	m := Member{Name: "Siti Aminah", Phone: "081234567"}

	assert.True(t, m.Matches("siti"))
	assert.True(t, m.Matches("4567"))
	assert.True(t, m.Matches(""))
	assert.False(t, m.Matches("budi"))
}
