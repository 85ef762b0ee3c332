package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes lists every size a product can be stocked in, in display order.
var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func ParseSize(s string) (Size, bool) {
	size := Size(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Sizes {
		if size == known {
			return size, true
		}
	}
	return "", false
}

// Stock maps a size to the quantity on hand.
type Stock map[Size]int

// NewStock returns a stock with every size present and set to zero.
func NewStock() Stock {
	stock := make(Stock, len(Sizes))
	for _, size := range Sizes {
		stock[size] = 0
	}
	return stock
}

// Normalize returns a copy holding every known size, dropping unknown ones.
func (s Stock) Normalize() Stock {
	normalized := NewStock()
	for size, qty := range s {
		if _, ok := normalized[size]; ok {
			normalized[size] = qty
		}
	}
	return normalized
}

func (s Stock) Total() int {
	total := 0
	for _, qty := range s {
		total += qty
	}
	return total
}

// IsSoldOut reports whether every size is at zero.
func (s Stock) IsSoldOut() bool {
	for _, qty := range s {
		if qty != 0 {
			return false
		}
	}
	return true
}

// Low returns the sizes whose quantity is above zero but at or under threshold.
func (s Stock) Low(threshold int) Stock {
	low := Stock{}
	for _, size := range Sizes {
		if qty, ok := s[size]; ok && qty > 0 && qty <= threshold {
			low[size] = qty
		}
	}
	return low
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       Stock           `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
