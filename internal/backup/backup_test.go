package backup

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

const legacyBackup = `{
  "products": [
    {"id": "1700000000000", "name": "Kemeja Flanel", "description": "", "price": "150000", "imageUrl": "", "stock": {"S": 2, "M": 0, "L": 4, "XL": 1, "XXL": 0}}
  ],
  "members": [
    {"id": "1700000000001", "name": "Budi", "phone": "0812", "email": "budi@example.com", "discount": 10}
  ],
  "transactions": [
    {
      "id": "TRX-1700000000002",
      "date": "2024-01-01T03:00:00.000Z",
      "items": [{"productId": "1700000000000", "name": "Kemeja Flanel", "price": 150000, "size": "L", "quantity": 2, "cartId": "1700000000000-L"}],
      "memberId": "1700000000001",
      "total": 270000,
      "discount": 30000,
      "paymentMethod": "Tunai"
    }
  ]
}`

func TestDecode_LegacyBackup(t *testing.T) {
	doc, err := Decode([]byte(legacyBackup))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Version)

	products := doc.DomainProducts()
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, domain.Stock{"S": 2, "M": 0, "L": 4, "XL": 1, "XXL": 0}, products[0].Stock)

	members := doc.DomainMembers()
	require.Len(t, members, 1)
	assert.Equal(t, 10, members[0].Discount)
	assert.Equal(t, domain.NotificationNone, members[0].Notification.Status)

	transactions := doc.DomainTransactions()
	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.True(t, tx.Date.Equal(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1700000000001", *tx.MemberID)
	assert.Equal(t, domain.PaymentCash, tx.PaymentMethod)
	assert.Equal(t, "300000", tx.Subtotal.String())
	assert.Equal(t, domain.SizeL, tx.Items[0].Size)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "not json", data: `{products:`, want: ErrMalformedBackup},
		{name: "top level array", data: `[]`, want: ErrMalformedBackup},
		{name: "missing members", data: `{"products": [], "transactions": []}`, want: ErrInvalidBackupShape},
		{name: "products is object", data: `{"products": {}, "members": [], "transactions": []}`, want: ErrInvalidBackupShape},
		{name: "products is null", data: `{"products": null, "members": [], "transactions": []}`, want: ErrInvalidBackupShape},
		{name: "future version", data: `{"version": 2, "products": [], "members": [], "transactions": []}`, want: ErrUnsupportedBackupVersion},
		{name: "product without name", data: `{"products": [{"id": "p1", "price": 1}], "members": [], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "negative price", data: `{"products": [{"id": "p1", "name": "a", "price": -1}], "members": [], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "unknown stock size", data: `{"products": [{"id": "p1", "name": "a", "price": 1, "stock": {"XS": 1}}], "members": [], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "negative stock", data: `{"products": [{"id": "p1", "name": "a", "price": 1, "stock": {"M": -1}}], "members": [], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "discount over 100", data: `{"products": [], "members": [{"id": "m1", "name": "a", "discount": 101}], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "duplicate member id", data: `{"products": [], "members": [{"id": "m1", "name": "a"}, {"id": "m1", "name": "b"}], "transactions": []}`, want: ErrInvalidBackupRecord},
		{name: "item with bad size", data: `{"products": [], "members": [], "transactions": [{"id": "t", "date": "2024-01-01T00:00:00Z", "items": [{"productId": "p", "size": "Q", "quantity": 1, "price": 1}], "total": 1, "discount": 0}]}`, want: ErrInvalidBackupRecord},
		{name: "wrong field type", data: `{"products": [{"id": 7, "name": "a"}], "members": [], "transactions": []}`, want: ErrInvalidBackupRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_RecordErrorNamesPosition(t *testing.T) {
	_, err := Decode([]byte(`{"products": [{"id": "p1", "name": "a"}, {"id": "p2"}], "members": [], "transactions": []}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "products[1]")
}

func TestNew_EncodesNumbersUnquoted(t *testing.T) {
	memberID := "m1"
	doc := New(
		[]domain.Product{{ID: "p1", Name: "Kaos", Price: decimal.RequireFromString("75000.50"), Stock: domain.Stock{domain.SizeM: 3}}},
		[]domain.Member{{ID: "m1", Name: "Sari", Discount: 5}},
		[]domain.Transaction{{
			ID:            "TRX-1",
			Date:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Items:         []domain.LineItem{{ProductID: "p1", Name: "Kaos", Price: decimal.RequireFromString("75000.50"), Size: domain.SizeM, Quantity: 1}},
			MemberID:      &memberID,
			Discount:      decimal.RequireFromString("3750.025"),
			Total:         decimal.RequireFromString("71250.475"),
			PaymentMethod: domain.PaymentEWallet,
		}},
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"version":1`)
	assert.Contains(t, s, `"price":75000.5`)
	assert.Contains(t, s, `"stock":{"L":0,"M":3,"S":0,"XL":0,"XXL":0}`)
	assert.Contains(t, s, `"memberId":"m1"`)
	assert.Contains(t, s, `"paymentMethod":"E-Wallet"`)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Products, 1)
	assert.True(t, decoded.Products[0].Price.Decimal().Equal(decimal.RequireFromString("75000.50")))
	assert.Equal(t, doc.Products[0].Stock, decoded.Products[0].Stock)
	assert.True(t, decoded.DomainTransactions()[0].Total.Equal(decimal.RequireFromString("71250.475")))
}
