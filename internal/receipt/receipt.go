// Package receipt lays out a sale for an 80mm thermal printer.
package receipt

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

// Width is the number of monospace columns on an 80mm roll.
const Width = 42

type Store struct {
	Name    string
	Address string
	Phone   string
	Footer  []string
}

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var printer = message.NewPrinter(language.Indonesian)

// Amount formats money with Indonesian grouping, e.g. 90.000 or 5.675,18.
func Amount(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}

// Date formats t as "1 Januari 2024 10.00".
func Date(t time.Time) string {
	return fmt.Sprintf("%d %s %d %02d.%02d", t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// Render writes the receipt. memberName is empty for a non-member sale.
func Render(w io.Writer, store Store, t domain.Transaction, memberName string, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	rule := strings.Repeat("-", Width)

	center(&b, store.Name)
	center(&b, store.Address)
	if store.Phone != "" {
		center(&b, "Telp: "+store.Phone)
	}
	b.WriteString(rule + "\n")

	field(&b, "No. Transaksi", t.ID)
	field(&b, "Tanggal", Date(t.Date.In(loc)))
	if memberName != "" {
		field(&b, "Member", memberName)
	}
	cashier := t.Cashier
	if cashier == "" {
		cashier = "Admin"
	}
	field(&b, "Kasir", cashier)
	payment := string(t.PaymentMethod)
	if payment == "" {
		payment = string(domain.PaymentCash)
	}
	field(&b, "Pembayaran", payment)
	b.WriteString(rule + "\n")

	for _, item := range t.Items {
		b.WriteString(fmt.Sprintf("%s (%s)\n", item.Name, item.Size))
		justify(&b, fmt.Sprintf("  %d x %s", item.Quantity, Amount(item.Price)), Amount(item.Amount()))
	}
	b.WriteString(rule + "\n")

	subtotal := t.Subtotal
	if subtotal.IsZero() {
		subtotal = t.Total.Add(t.Discount)
	}
	justify(&b, "Subtotal", "Rp "+Amount(subtotal))
	if t.Discount.IsPositive() {
		justify(&b, "Diskon", "- Rp "+Amount(t.Discount))
	}
	justify(&b, "Total", "Rp "+Amount(t.Total))
	b.WriteString(rule + "\n")

	for _, line := range store.Footer {
		center(&b, line)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func center(b *strings.Builder, s string) {
	n := utf8.RuneCountInString(s)
	if n < Width {
		b.WriteString(strings.Repeat(" ", (Width-n)/2))
	}
	b.WriteString(s)
	b.WriteString("\n")
}

func field(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%-14s: %s\n", label, value))
}

// justify puts left and right on one line, right-aligned to Width, or on two
// lines when they do not fit.
func justify(b *strings.Builder, left, right string) {
	gap := Width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		b.WriteString(left + "\n")
		gap = Width - utf8.RuneCountInString(right)
		left = ""
		if gap < 0 {
			gap = 0
		}
	}
	b.WriteString(left + strings.Repeat(" ", gap) + right + "\n")
}
