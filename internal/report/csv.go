package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

// CSVDateLayout renders dates the way the shop's spreadsheets expect them.
const CSVDateLayout = "02/01/2006 15.04.05"

var (
	transactionHeader = []string{
		"ID Transaksi",
		"Tanggal",
		"Produk",
		"Status Member",
		"Nama Member",
		"Metode Pembayaran",
		"Diskon (Rp)",
		"Total (Rp)",
	}
	periodHeader = []string{
		"Periode",
		"Jumlah Transaksi",
		"Total Diskon (Rp)",
		"Total Pendapatan (Rp)",
	}
)

// WriteTransactionsCSV writes one line per row. An empty rows slice is
// ErrNoReportData.
func WriteTransactionsCSV(w io.Writer, rows []Row, loc *time.Location) error {
	if len(rows) == 0 {
		return ErrNoReportData
	}
	if loc == nil {
		loc = time.UTC
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return fmt.Errorf("cw.Write -> %w", err)
	}

	for _, row := range rows {
		memberName := row.MemberName
		if row.MemberStatus != domain.CustomerMember {
			memberName = "-"
		}
		record := []string{
			row.ID,
			row.Date.In(loc).Format(CSVDateLayout),
			row.Products,
			string(row.MemberStatus),
			memberName,
			string(row.PaymentMethod),
			row.Discount.String(),
			row.Total.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cw.Write -> %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePeriodsCSV writes one line per bucket, as used by the yearly view.
func WritePeriodsCSV(w io.Writer, buckets []Bucket) error {
	if len(buckets) == 0 {
		return ErrNoReportData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(periodHeader); err != nil {
		return fmt.Errorf("cw.Write -> %w", err)
	}

	for _, b := range buckets {
		record := []string{
			b.Period,
			strconv.Itoa(b.Count),
			b.Discount.String(),
			b.Total.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cw.Write -> %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
