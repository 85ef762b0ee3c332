package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/report"
)

var ErrNoReportData = report.ErrNoReportData

type TransactionLister interface {
	FindAll(ctx context.Context) ([]domain.Transaction, error)
}

type MemberLister interface {
	FindAll(ctx context.Context, query string) ([]domain.Member, error)
}

type ProductLister interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// ReportQuery is a parsed report filter plus the grouping to use.
type ReportQuery struct {
	Filter report.Filter
	Period report.Period
}

// ParseReportQuery reads the raw filter values. Empty values mean no limit.
func ParseReportQuery(from, to, payment, member, period string, loc *time.Location) (ReportQuery, error) {
	pc, err := report.ParsePaymentClass(payment)
	if err != nil {
		return ReportQuery{}, err
	}
	ms, err := report.ParseMemberStatus(member)
	if err != nil {
		return ReportQuery{}, err
	}
	p, err := report.ParsePeriod(period)
	if err != nil {
		return ReportQuery{}, err
	}
	f, err := report.NewFilter(from, to, pc, ms, loc)
	if err != nil {
		return ReportQuery{}, err
	}

	return ReportQuery{Filter: f, Period: p}, nil
}

type ReportService struct {
	transactions TransactionLister
	members      MemberLister
	loc          *time.Location
	top          int
}

func NewReportService(transactions TransactionLister, members MemberLister, loc *time.Location, top int) *ReportService {
	return &ReportService{
		transactions: transactions,
		members:      members,
		loc:          loc,
		top:          top,
	}
}

func (s *ReportService) Location() *time.Location {
	return s.loc
}

func (s *ReportService) Generate(ctx context.Context, q ReportQuery) (report.Report, error) {
	transactions, members, err := s.load(ctx)
	if err != nil {
		return report.Report{}, err
	}

	return report.Build(transactions, members, q.Filter, q.Period, s.top), nil
}

// ExportCSV renders the filtered report. The yearly view is exported as one
// line per year, every other view as one line per transaction.
func (s *ReportService) ExportCSV(ctx context.Context, q ReportQuery) ([]byte, error) {
	transactions, members, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := q.Filter.Apply(transactions)

	var buf bytes.Buffer
	if q.Period == report.PeriodYear {
		err = report.WritePeriodsCSV(&buf, report.Aggregate(filtered, q.Period, s.loc))
	} else {
		err = report.WriteTransactionsCSV(&buf, report.Rows(filtered, members), s.loc)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *ReportService) load(ctx context.Context) ([]domain.Transaction, map[string]domain.Member, error) {
	transactions, err := s.transactions.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s.transactions.FindAll -> %w", err)
	}

	list, err := s.members.FindAll(ctx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("s.members.FindAll -> %w", err)
	}

	members := make(map[string]domain.Member, len(list))
	for _, m := range list {
		members[m.ID] = m
	}

	return transactions, members, nil
}

type DashboardService struct {
	products     ProductLister
	members      MemberLister
	transactions TransactionLister
	loc          *time.Location
	threshold    int
	top          int
	now          func() time.Time
}

func NewDashboardService(products ProductLister, members MemberLister, transactions TransactionLister, loc *time.Location, threshold, top int) *DashboardService {
	return &DashboardService{
		products:     products,
		members:      members,
		transactions: transactions,
		loc:          loc,
		threshold:    threshold,
		top:          top,
		now:          time.Now,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (report.Dashboard, error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("s.products.FindAll -> %w", err)
	}
	members, err := s.members.FindAll(ctx, "")
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("s.members.FindAll -> %w", err)
	}
	transactions, err := s.transactions.FindAll(ctx)
	if err != nil {
		return report.Dashboard{}, fmt.Errorf("s.transactions.FindAll -> %w", err)
	}

	return report.BuildDashboard(products, len(members), transactions, s.now(), s.loc, s.threshold, s.top), nil
}
