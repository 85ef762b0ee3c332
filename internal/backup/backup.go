// Package backup encodes and decodes the JSON backup document. The field
// names follow the browser edition of the shop so its backups still load.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

// CurrentVersion is written on export. Documents without a version are
// browser-era backups and are read the same way.
const CurrentVersion = 1

var (
	ErrMalformedBackup          = errors.New("backup is not valid JSON")
	ErrInvalidBackupShape       = errors.New("backup must contain products, members and transactions arrays")
	ErrUnsupportedBackupVersion = errors.New("backup version is not supported")
	ErrInvalidBackupRecord      = errors.New("backup contains an invalid record")
)

// Money is a decimal that is written as a bare JSON number. Quoted numbers are
// accepted on read.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(m).String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*m = Money(d)
	return nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

type Document struct {
	Version      int           `json:"version"`
	ExportedAt   *time.Time    `json:"exportedAt,omitempty"`
	Products     []Product     `json:"products"`
	Members      []Member      `json:"members"`
	Transactions []Transaction `json:"transactions"`
}

type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       Money          `json:"price"`
	ImageURL    string         `json:"imageUrl"`
	Stock       map[string]int `json:"stock"`
}

type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Discount int    `json:"discount"`
}

type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     Money  `json:"price"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	CartID    string `json:"cartId,omitempty"`
}

type Transaction struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Items         []Item    `json:"items"`
	MemberID      *string   `json:"memberId"`
	Total         Money     `json:"total"`
	Discount      Money     `json:"discount"`
	PaymentMethod string    `json:"paymentMethod"`
	Cashier       string    `json:"cashier,omitempty"`
}

// New builds a current-version document from the live collections.
func New(products []domain.Product, members []domain.Member, transactions []domain.Transaction, exportedAt time.Time) Document {
	doc := Document{
		Version:      CurrentVersion,
		ExportedAt:   &exportedAt,
		Products:     make([]Product, len(products)),
		Members:      make([]Member, len(members)),
		Transactions: make([]Transaction, len(transactions)),
	}

	for i, p := range products {
		stock := make(map[string]int, len(domain.Sizes))
		for _, size := range domain.Sizes {
			stock[string(size)] = p.Stock[size]
		}
		doc.Products[i] = Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       Money(p.Price),
			ImageURL:    p.ImageURL,
			Stock:       stock,
		}
	}

	for i, m := range members {
		doc.Members[i] = Member{
			ID:       m.ID,
			Name:     m.Name,
			Phone:    m.Phone,
			Email:    m.Email,
			Discount: m.Discount,
		}
	}

	for i, t := range transactions {
		items := make([]Item, len(t.Items))
		for j, item := range t.Items {
			items[j] = Item{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     Money(item.Price),
				Size:      string(item.Size),
				Quantity:  item.Quantity,
				CartID:    item.CartID,
			}
		}
		doc.Transactions[i] = Transaction{
			ID:            t.ID,
			Date:          t.Date,
			Items:         items,
			MemberID:      t.MemberID,
			Total:         Money(t.Total),
			Discount:      Money(t.Discount),
			PaymentMethod: string(t.PaymentMethod),
			Cashier:       t.Cashier,
		}
	}

	return doc
}

// Decode parses and validates a backup. Nothing is partially accepted: any
// problem fails the whole document.
func Decode(data []byte) (Document, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrMalformedBackup, err)
	}

	for _, field := range []string{"products", "members", "transactions"} {
		v, ok := raw[field]
		if !ok {
			return Document{}, fmt.Errorf("%w: %s is missing", ErrInvalidBackupShape, field)
		}
		if trimmed := bytes.TrimSpace(v); len(trimmed) == 0 || trimmed[0] != '[' {
			return Document{}, fmt.Errorf("%w: %s is not an array", ErrInvalidBackupShape, field)
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidBackupRecord, err)
	}

	if doc.Version < 0 || doc.Version > CurrentVersion {
		return Document{}, fmt.Errorf("%w: %d", ErrUnsupportedBackupVersion, doc.Version)
	}

	if err := doc.Validate(); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func (d Document) Validate() error {
	for i := range d.Products {
		if err := d.Products[i].validate(); err != nil {
			return fmt.Errorf("%w: products[%d]: %w", ErrInvalidBackupRecord, i, err)
		}
	}
	for i := range d.Members {
		if err := d.Members[i].validate(); err != nil {
			return fmt.Errorf("%w: members[%d]: %w", ErrInvalidBackupRecord, i, err)
		}
	}
	for i := range d.Transactions {
		if err := d.Transactions[i].validate(); err != nil {
			return fmt.Errorf("%w: transactions[%d]: %w", ErrInvalidBackupRecord, i, err)
		}
	}

	if err := unique("products", len(d.Products), func(i int) string { return d.Products[i].ID }); err != nil {
		return err
	}
	if err := unique("members", len(d.Members), func(i int) string { return d.Members[i].ID }); err != nil {
		return err
	}
	return unique("transactions", len(d.Transactions), func(i int) string { return d.Transactions[i].ID })
}

func unique(collection string, n int, id func(int) string) error {
	seen := make(map[string]int, n)
	for i := 0; i < n; i++ {
		if first, ok := seen[id(i)]; ok {
			return fmt.Errorf("%w: %s[%d]: duplicate id %q (first at %d)", ErrInvalidBackupRecord, collection, i, id(i), first)
		}
		seen[id(i)] = i
	}
	return nil
}

var nonNegative = validation.By(func(value interface{}) error {
	if m, ok := value.(Money); ok && m.Decimal().IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

var knownSize = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if _, ok := domain.ParseSize(s); !ok {
		return fmt.Errorf("unknown size %q", s)
	}
	return nil
})

func (p *Product) validate() error {
	if err := validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Price, nonNegative),
	); err != nil {
		return err
	}

	for size, qty := range p.Stock {
		if err := knownSize.Validate(size); err != nil {
			return fmt.Errorf("stock: %w", err)
		}
		if qty < 0 {
			return fmt.Errorf("stock: size %s must not be negative", size)
		}
	}
	return nil
}

func (m *Member) validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Discount, validation.Min(0), validation.Max(100)),
	)
}

func (t *Transaction) validate() error {
	if err := validation.ValidateStruct(t,
		validation.Field(&t.ID, validation.Required, validation.Length(1, 64)),
		validation.Field(&t.Date, validation.Required),
		validation.Field(&t.Total, nonNegative),
		validation.Field(&t.Discount, nonNegative),
	); err != nil {
		return err
	}

	for i := range t.Items {
		item := &t.Items[i]
		err := validation.ValidateStruct(item,
			validation.Field(&item.ProductID, validation.Required),
			validation.Field(&item.Size, validation.Required, knownSize),
			validation.Field(&item.Quantity, validation.Min(1)),
			validation.Field(&item.Price, nonNegative),
		)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	if t.PaymentMethod != "" {
		if _, ok := domain.ParsePaymentMethod(t.PaymentMethod); !ok {
			return fmt.Errorf("paymentMethod: unknown method %q", t.PaymentMethod)
		}
	}
	return nil
}

func (d Document) DomainProducts() []domain.Product {
	products := make([]domain.Product, len(d.Products))
	for i, p := range d.Products {
		stock := domain.NewStock()
		for label, qty := range p.Stock {
			if size, ok := domain.ParseSize(label); ok {
				stock[size] = qty
			}
		}
		products[i] = domain.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.Decimal(),
			ImageURL:    p.ImageURL,
			Stock:       stock,
		}
	}
	return products
}

func (d Document) DomainMembers() []domain.Member {
	members := make([]domain.Member, len(d.Members))
	for i, m := range d.Members {
		members[i] = domain.Member{
			ID:           m.ID,
			Name:         m.Name,
			Phone:        m.Phone,
			Email:        m.Email,
			Discount:     m.Discount,
			Notification: domain.Notification{Status: domain.NotificationNone},
		}
	}
	return members
}

func (d Document) DomainTransactions() []domain.Transaction {
	transactions := make([]domain.Transaction, len(d.Transactions))
	for i, t := range d.Transactions {
		items := make([]domain.LineItem, len(t.Items))
		for j, item := range t.Items {
			size, _ := domain.ParseSize(item.Size)
			items[j] = domain.LineItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price.Decimal(),
				Size:      size,
				Quantity:  item.Quantity,
				CartID:    item.CartID,
			}
		}
		method, _ := domain.ParsePaymentMethod(t.PaymentMethod)
		var memberID *string
		if t.MemberID != nil && *t.MemberID != "" {
			id := *t.MemberID
			memberID = &id
		}
		transactions[i] = domain.Transaction{
			ID:            t.ID,
			Date:          t.Date,
			Items:         items,
			MemberID:      memberID,
			Subtotal:      t.Total.Decimal().Add(t.Discount.Decimal()),
			Discount:      t.Discount.Decimal(),
			Total:         t.Total.Decimal(),
			PaymentMethod: method,
			Cashier:       t.Cashier,
		}
	}
	return transactions
}
