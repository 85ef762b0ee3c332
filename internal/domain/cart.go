package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CartItem is a line in a cashier's working cart. CartID is only unique
// within the cart and is used to address the line for removal.
type CartItem struct {
	CartID    string          `json:"cart_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Size      Size            `json:"size"`
	Quantity  int             `json:"quantity"`
}

func (i CartItem) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is never persisted.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges item into an existing line for the same product and size, or
// appends it as a new line with a fresh CartID. It returns the resulting line.
func (c *Cart) Add(item CartItem) CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Size == item.Size {
			c.Items[i].Quantity += item.Quantity
			return c.Items[i]
		}
	}

	item.CartID = uuid.NewString()
	c.Items = append(c.Items, item)
	return item
}

// Remove drops the line with the given CartID and reports whether it existed.
func (c *Cart) Remove(cartID string) bool {
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// QuantityOf sums the quantity already in the cart for a product and size.
func (c Cart) QuantityOf(productID string, size Size) int {
	n := 0
	for _, item := range c.Items {
		if item.ProductID == productID && item.Size == size {
			n += item.Quantity
		}
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.Amount())
	}
	return subtotal
}

// LineItems snapshots the cart into transaction lines.
func (c Cart) LineItems() []LineItem {
	items := make([]LineItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Size:      item.Size,
			Quantity:  item.Quantity,
			CartID:    item.CartID,
		}
	}
	return items
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals prices the given lines. Without a member the discount is zero.
func ComputeTotals(items []LineItem, member *Member) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}

	discount := decimal.Zero
	if member != nil {
		discount = subtotal.Mul(decimal.NewFromInt(int64(member.Discount))).Div(hundred)
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}
