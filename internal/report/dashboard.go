package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

type StockAlert struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Sizes     domain.Stock `json:"sizes,omitempty"`
}

type Dashboard struct {
	ProductCount      int             `json:"product_count"`
	MemberCount       int             `json:"member_count"`
	TransactionsToday int             `json:"transactions_today"`
	RevenueToday      decimal.Decimal `json:"revenue_today"`
	RevenueThisMonth  decimal.Decimal `json:"revenue_this_month"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	LowStock          []StockAlert    `json:"low_stock"`
	OutOfStock        []StockAlert    `json:"out_of_stock"`
	TopProducts       []ProductSales  `json:"top_products"`
}

// BuildDashboard summarizes the shop as of now. Today and this month are
// calendar periods in loc.
func BuildDashboard(products []domain.Product, memberCount int, transactions []domain.Transaction, now time.Time, loc *time.Location, threshold, top int) Dashboard {
	if loc == nil {
		loc = time.UTC
	}

	d := Dashboard{
		ProductCount:      len(products),
		MemberCount:       memberCount,
		RevenueToday:      decimal.Zero,
		RevenueThisMonth:  decimal.Zero,
		LowStockThreshold: threshold,
		LowStock:          []StockAlert{},
		OutOfStock:        []StockAlert{},
	}

	today := now.In(loc).Format(DateLayout)
	month := now.In(loc).Format("2006-01")
	var thisMonth []domain.Transaction
	for _, t := range transactions {
		date := t.Date.In(loc)
		if date.Format("2006-01") != month {
			continue
		}
		thisMonth = append(thisMonth, t)
		d.RevenueThisMonth = d.RevenueThisMonth.Add(t.Total)
		if date.Format(DateLayout) == today {
			d.TransactionsToday++
			d.RevenueToday = d.RevenueToday.Add(t.Total)
		}
	}
	d.TopProducts = TopProducts(thisMonth, top)

	for _, p := range products {
		if p.Stock.IsSoldOut() {
			d.OutOfStock = append(d.OutOfStock, StockAlert{ProductID: p.ID, Name: p.Name})
			continue
		}
		if low := p.Stock.Low(threshold); len(low) > 0 {
			d.LowStock = append(d.LowStock, StockAlert{ProductID: p.ID, Name: p.Name, Sizes: low})
		}
	}

	return d
}
