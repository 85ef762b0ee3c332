// Package report computes the read-side views over the transaction list.
// Every function is pure and recomputes from its input.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

var (
	ErrNoReportData     = errors.New("tidak ada data untuk diekspor sesuai filter yang dipilih")
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("start date is after end date")
	ErrInvalidPayment   = errors.New("invalid payment filter, expected all, cash or non-cash")
	ErrInvalidMember    = errors.New("invalid member filter, expected all, member or non-member")
	ErrInvalidPeriod    = errors.New("invalid period, expected day, month or year")
)

const DateLayout = "2006-01-02"

type PaymentClass string

const (
	PaymentAll     PaymentClass = "all"
	PaymentCash    PaymentClass = "cash"
	PaymentNonCash PaymentClass = "non-cash"
)

func ParsePaymentClass(s string) (PaymentClass, error) {
	switch c := PaymentClass(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return PaymentAll, nil
	case PaymentAll, PaymentCash, PaymentNonCash:
		return c, nil
	}
	return "", ErrInvalidPayment
}

type MemberStatus string

const (
	MemberAll       MemberStatus = "all"
	MemberOnly      MemberStatus = "member"
	MemberNonMember MemberStatus = "non-member"
)

func ParseMemberStatus(s string) (MemberStatus, error) {
	switch m := MemberStatus(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MemberAll, nil
	case MemberAll, MemberOnly, MemberNonMember:
		return m, nil
	}
	return "", ErrInvalidMember
}

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodMonth, PeriodYear:
		return p, nil
	}
	return "", ErrInvalidPeriod
}

func (p Period) layout() string {
	switch p {
	case PeriodYear:
		return "2006"
	case PeriodMonth:
		return "2006-01"
	default:
		return DateLayout
	}
}

// Filter selects transactions. From and To are calendar days in Location and
// both ends are inclusive. A zero From or To leaves that side open.
type Filter struct {
	From     time.Time
	To       time.Time
	Payment  PaymentClass
	Member   MemberStatus
	Location *time.Location
}

// NewFilter parses the day strings (YYYY-MM-DD, empty for open) in loc.
func NewFilter(from, to string, payment PaymentClass, member MemberStatus, loc *time.Location) (Filter, error) {
	f := Filter{Payment: payment, Member: member, Location: loc}

	var err error
	if f.From, err = parseDay(from, loc); err != nil {
		return Filter{}, err
	}
	if f.To, err = parseDay(to, loc); err != nil {
		return Filter{}, err
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return Filter{}, ErrInvalidDateRange
	}

	return f, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return day, nil
}

func (f Filter) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

func (f Filter) Match(t domain.Transaction) bool {
	loc := f.location()
	date := t.Date.In(loc)

	if !f.From.IsZero() {
		start := startOfDay(f.From, loc)
		if date.Before(start) {
			return false
		}
	}
	if !f.To.IsZero() {
		end := startOfDay(f.To, loc).AddDate(0, 0, 1)
		if !date.Before(end) {
			return false
		}
	}

	switch f.Payment {
	case PaymentCash:
		if !t.PaymentMethod.IsCash() {
			return false
		}
	case PaymentNonCash:
		if t.PaymentMethod.IsCash() {
			return false
		}
	}

	switch f.Member {
	case MemberOnly:
		return t.HasMember()
	case MemberNonMember:
		return !t.HasMember()
	}

	return true
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Apply returns the matching transactions sorted by date, keeping input order
// for equal dates.
func (f Filter) Apply(transactions []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Match(t) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// Bucket is the aggregate of one day, month or year.
type Bucket struct {
	Period   string          `json:"period"`
	Count    int             `json:"count"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Aggregate groups transactions by period in loc, periods ascending.
func Aggregate(transactions []domain.Transaction, period Period, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.UTC
	}

	index := make(map[string]int)
	buckets := []Bucket{}
	for _, t := range transactions {
		label := t.Date.In(loc).Format(period.layout())
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Period: label, Discount: decimal.Zero, Total: decimal.Zero})
		}
		buckets[i].Count++
		buckets[i].Discount = buckets[i].Discount.Add(t.Discount)
		buckets[i].Total = buckets[i].Total.Add(t.Total)
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Period < buckets[j].Period
	})

	return buckets
}

type ProductSales struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopProducts ranks products by quantity sold, highest first. Ties keep the
// order in which the products first appear. n <= 0 returns every product.
func TopProducts(transactions []domain.Transaction, n int) []ProductSales {
	index := make(map[string]int)
	sales := []ProductSales{}
	for _, t := range transactions {
		for _, item := range t.Items {
			i, ok := index[item.ProductID]
			if !ok {
				i = len(sales)
				index[item.ProductID] = i
				sales = append(sales, ProductSales{ProductID: item.ProductID, Name: item.Name, Revenue: decimal.Zero})
			}
			sales[i].Quantity += item.Quantity
			sales[i].Revenue = sales[i].Revenue.Add(item.Amount())
		}
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].Quantity > sales[j].Quantity
	})

	if n > 0 && len(sales) > n {
		sales = sales[:n]
	}

	return sales
}

type Summary struct {
	Count    int             `json:"count"`
	Items    int             `json:"items"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

func Summarize(transactions []domain.Transaction) Summary {
	s := Summary{Discount: decimal.Zero, Total: decimal.Zero}
	for _, t := range transactions {
		s.Count++
		s.Items += t.Quantity()
		s.Discount = s.Discount.Add(t.Discount)
		s.Total = s.Total.Add(t.Total)
	}
	return s
}

const nonMemberLabel = "Non-Member"

// Row is one transaction as shown in the report table.
type Row struct {
	ID            string               `json:"id"`
	Date          time.Time            `json:"date"`
	Products      string               `json:"products"`
	MemberStatus  domain.CustomerType  `json:"member_status"`
	MemberName    string               `json:"member_name"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Discount      decimal.Decimal      `json:"discount"`
	Total         decimal.Decimal      `json:"total"`
}

// Rows resolves member names through members. A transaction whose member is
// gone or absent is reported as Non-Member.
func Rows(transactions []domain.Transaction, members map[string]domain.Member) []Row {
	rows := make([]Row, len(transactions))
	for i, t := range transactions {
		row := Row{
			ID:            t.ID,
			Date:          t.Date,
			Products:      describeItems(t.Items),
			MemberStatus:  domain.CustomerNonMember,
			MemberName:    nonMemberLabel,
			PaymentMethod: t.PaymentMethod,
			Discount:      t.Discount,
			Total:         t.Total,
		}
		if t.HasMember() {
			if m, ok := members[*t.MemberID]; ok {
				row.MemberStatus = domain.CustomerMember
				row.MemberName = m.Name
			}
		}
		rows[i] = row
	}
	return rows
}

func describeItems(items []domain.LineItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s (%s) x%d", item.Name, item.Size, item.Quantity)
	}
	return strings.Join(parts, ", ")
}

// Report is everything the reports screen shows for one filter.
type Report struct {
	Summary     Summary        `json:"summary"`
	Buckets     []Bucket       `json:"buckets"`
	TopProducts []ProductSales `json:"top_products"`
	Rows        []Row          `json:"rows"`
}

func Build(transactions []domain.Transaction, members map[string]domain.Member, f Filter, period Period, top int) Report {
	filtered := f.Apply(transactions)

	return Report{
		Summary:     Summarize(filtered),
		Buckets:     Aggregate(filtered, period, f.location()),
		TopProducts: TopProducts(filtered, top),
		Rows:        Rows(filtered, members),
	}
}
