package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
)

type Transaction struct {
	ID            string            `gorm:"primaryKey;size:64"`
	Date          time.Time         `gorm:"not null;index"`
	MemberID      *string           `gorm:"size:64;index"`
	Discount      decimal.Decimal   `gorm:"type:numeric;not null"`
	Total         decimal.Decimal   `gorm:"type:numeric;not null"`
	PaymentMethod string            `gorm:"not null"`
	Cashier       string            `gorm:"not null;default:''"`
	Items         []TransactionItem `gorm:"foreignKey:TransactionID"`
	CreatedAt     time.Time
}

type TransactionItem struct {
	ID            uint            `gorm:"primaryKey"`
	TransactionID string          `gorm:"size:64;not null;index"`
	ProductID     string          `gorm:"size:64;not null"`
	Name          string          `gorm:"not null"`
	Price         decimal.Decimal `gorm:"type:numeric;not null"`
	Size          string          `gorm:"size:4;not null"`
	Quantity      int             `gorm:"not null"`
	CartID        string          `gorm:"size:64;not null;default:''"`
}

// StockDecrement is the quantity of one size of a product taken by a sale.
type StockDecrement struct {
	ProductID string
	Size      string
	Quantity  int
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

// InsertSale stores the transaction and takes the sold quantities out of
// stock in one database transaction. Products no longer in the catalog are
// skipped. If any size would go below zero nothing is written and
// ErrInsufficientStock is returned.
func (d *TransactionDAO) InsertSale(ctx context.Context, transaction Transaction, decrements []StockDecrement) (Transaction, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		for _, dec := range decrements {
			var count int64
			if err := tx.Model(&Product{}).Where("id = ?", dec.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				continue
			}

			result := tx.Model(&ProductStock{}).
				Where("product_id = ? AND size = ? AND quantity >= ?", dec.ProductID, dec.Size, dec.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", dec.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		return nil
	})
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

func (d *TransactionDAO) FindAll(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction
	result := d.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("date ASC, id ASC").
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

func (d *TransactionDAO) FindByID(ctx context.Context, id string) (Transaction, error) {
	var transaction Transaction
	result := d.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&transaction, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Transaction{}, ErrTransactionNotFound
		}

		return Transaction{}, result.Error
	}

	return transaction, nil
}
