package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Tunai"
	PaymentBankTransfer PaymentMethod = "Transfer Bank"
	PaymentEWallet      PaymentMethod = "E-Wallet"
	PaymentCreditCard   PaymentMethod = "Kartu Kredit"
	PaymentDebitCard    PaymentMethod = "Kartu Debit"
)

var PaymentMethods = []PaymentMethod{
	PaymentCash,
	PaymentBankTransfer,
	PaymentEWallet,
	PaymentCreditCard,
	PaymentDebitCard,
}

// ParsePaymentMethod matches s case-insensitively against the known methods.
// An empty string means cash.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PaymentCash, true
	}
	for _, m := range PaymentMethods {
		if strings.EqualFold(s, string(m)) {
			return m, true
		}
	}
	return "", false
}

func (m PaymentMethod) IsCash() bool {
	return m == PaymentCash
}

type CustomerType string

const (
	CustomerMember    CustomerType = "Member"
	CustomerNonMember CustomerType = "Non-Member"
)

func ParseCustomerType(s string) (CustomerType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "non-member", "nonmember":
		return CustomerNonMember, true
	case "member":
		return CustomerMember, true
	}
	return "", false
}

// LineItem is a sold line. Name and price are snapshots taken when the line
// entered the cart, so later catalog edits do not rewrite history.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity"`
	CartID    string          `json:"cart_id,omitempty"`
}

func (l LineItem) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Items         []LineItem      `json:"items"`
	MemberID      *string         `json:"member_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Cashier       string          `json:"cashier"`
}

func (t Transaction) HasMember() bool {
	return t.MemberID != nil && *t.MemberID != ""
}

// Quantity is the number of pieces sold across all lines.
func (t Transaction) Quantity() int {
	n := 0
	for _, item := range t.Items {
		n += item.Quantity
	}
	return n
}
