package request

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

var errNegativePrice = errors.New("must not be negative")

type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	ImageURL    string          `json:"image_url"`
	Stock       map[string]int  `json:"stock"`
}

func (req *ProductRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.Price, validation.By(func(any) error {
			if req.Price.IsNegative() {
				return errNegativePrice
			}
			return nil
		})),
		validation.Field(&req.ImageURL, is.URL),
	)
	if err != nil {
		return err
	}

	for size, qty := range req.Stock {
		if _, ok := domain.ParseSize(size); !ok {
			return fmt.Errorf("stock: unknown size %q", size)
		}
		if qty < 0 {
			return fmt.Errorf("stock: size %s must not be negative", size)
		}
	}

	return nil
}

// ToDomain builds the product with stock keyed by canonical size.
func (req *ProductRequest) ToDomain() domain.Product {
	stock := domain.NewStock()
	for label, qty := range req.Stock {
		if size, ok := domain.ParseSize(label); ok {
			stock[size] = qty
		}
	}

	return domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Stock:       stock,
	}
}
