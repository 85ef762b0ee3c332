package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
)

type DatasetDAO interface {
	ReplaceAll(ctx context.Context, products []dao.Product, members []dao.Member, transactions []dao.Transaction) error
	DeleteAll(ctx context.Context) error
}

// Dataset is the full set of business records, as carried by a backup.
type Dataset struct {
	Products     []domain.Product
	Members      []domain.Member
	Transactions []domain.Transaction
}

type DatasetRepository struct {
	dao DatasetDAO
	now func() time.Time
}

func NewDatasetRepository(dao DatasetDAO) *DatasetRepository {
	return &DatasetRepository{
		dao: dao,
		now: time.Now,
	}
}

// ReplaceAll swaps every product, member and transaction for the given ones.
// Records without a creation time are stamped in slice order so listings keep
// the order of the dataset.
func (r *DatasetRepository) ReplaceAll(ctx context.Context, data Dataset) error {
	base := r.now()

	products := make([]dao.Product, len(data.Products))
	for i, p := range data.Products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			p.UpdatedAt = p.CreatedAt
		}
		products[i] = productDomainToDao(p)
	}

	members := make([]dao.Member, len(data.Members))
	for i, m := range data.Members {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			m.UpdatedAt = m.CreatedAt
		}
		members[i] = memberDomainToDao(m)
	}

	transactions := make([]dao.Transaction, len(data.Transactions))
	for i, t := range data.Transactions {
		transactions[i] = transactionDomainToDao(t)
	}

	if err := r.dao.ReplaceAll(ctx, products, members, transactions); err != nil {
		return fmt.Errorf("r.dao.ReplaceAll -> %w", err)
	}

	return nil
}

func (r *DatasetRepository) DeleteAll(ctx context.Context) error {
	if err := r.dao.DeleteAll(ctx); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}
