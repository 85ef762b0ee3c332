package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID          string          `gorm:"primaryKey;size:64"`
	Name        string          `gorm:"not null"`
	Description string          `gorm:"not null;default:''"`
	Price       decimal.Decimal `gorm:"type:numeric;not null"`
	ImageURL    string          `gorm:"not null;default:''"`
	Stock       []ProductStock  `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductStock holds the quantity on hand of one size of a product.
type ProductStock struct {
	ProductID string `gorm:"primaryKey;size:64"`
	Size      string `gorm:"primaryKey;size:4"`
	Quantity  int    `gorm:"not null"`
}

type ProductDAO struct {
	db *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{
		db: db,
	}
}

func (d *ProductDAO) Insert(ctx context.Context, product Product) (Product, error) {
	if err := d.db.WithContext(ctx).Create(&product).Error; err != nil {
		return Product{}, err
	}

	return product, nil
}

func (d *ProductDAO) FindAll(ctx context.Context) ([]Product, error) {
	var products []Product
	result := d.db.WithContext(ctx).
		Preload("Stock").
		Order("created_at ASC, id ASC").
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

func (d *ProductDAO) FindByID(ctx context.Context, id string) (Product, error) {
	var product Product
	result := d.db.WithContext(ctx).Preload("Stock").First(&product, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	return product, nil
}

// Update overwrites the product fields and replaces its stock rows.
func (d *ProductDAO) Update(ctx context.Context, product Product) (Product, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Product{ID: product.ID}).Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"image_url":   product.ImageURL,
			"updated_at":  time.Now(),
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&ProductStock{}).Error; err != nil {
			return err
		}
		if len(product.Stock) > 0 {
			if err := tx.Create(&product.Stock).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	return d.FindByID(ctx, product.ID)
}

func (d *ProductDAO) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&ProductStock{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		return nil
	})
}

func (d *ProductDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
