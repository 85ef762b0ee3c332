package dao

import (
	"context"

	"gorm.io/gorm"
)

// DatasetDAO operates on the three business collections as a whole.
type DatasetDAO struct {
	db *gorm.DB
}

func NewDatasetDAO(db *gorm.DB) *DatasetDAO {
	return &DatasetDAO{
		db: db,
	}
}

// ReplaceAll deletes every product, member and transaction and inserts the
// given ones, all in one database transaction.
func (d *DatasetDAO) ReplaceAll(ctx context.Context, products []Product, members []Member, transactions []Transaction) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx); err != nil {
			return err
		}

		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		if len(members) > 0 {
			if err := tx.Create(&members).Error; err != nil {
				return err
			}
		}
		if len(transactions) > 0 {
			if err := tx.Create(&transactions).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteAll empties the business collections. Users are kept.
func (d *DatasetDAO) DeleteAll(ctx context.Context) error {
	return d.db.WithContext(ctx).Transaction(deleteAll)
}

func deleteAll(tx *gorm.DB) error {
	for _, model := range []any{&TransactionItem{}, &Transaction{}, &ProductStock{}, &Product{}, &Member{}} {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
