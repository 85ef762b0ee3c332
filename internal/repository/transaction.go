package repository

import (
	"context"
	"fmt"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
)

var (
	ErrTransactionNotFound = dao.ErrTransactionNotFound
	ErrInsufficientStock   = dao.ErrInsufficientStock
)

type TransactionDAO interface {
	InsertSale(ctx context.Context, transaction dao.Transaction, decrements []dao.StockDecrement) (dao.Transaction, error)
	FindAll(ctx context.Context) ([]dao.Transaction, error)
	FindByID(ctx context.Context, id string) (dao.Transaction, error)
}

type TransactionRepository struct {
	dao TransactionDAO
}

func NewTransactionRepository(dao TransactionDAO) *TransactionRepository {
	return &TransactionRepository{
		dao: dao,
	}
}

// RecordSale stores the transaction and decrements stock by the summed
// quantity of its lines per product and size.
func (r *TransactionRepository) RecordSale(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	created, err := r.dao.InsertSale(ctx, transactionDomainToDao(transaction), stockDecrements(transaction.Items))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.InsertSale -> %w", err)
	}

	return transactionDaoToDomain(created), nil
}

func (r *TransactionRepository) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	transactions := make([]domain.Transaction, len(found))
	for i, t := range found {
		transactions[i] = transactionDaoToDomain(t)
	}

	return transactions, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (domain.Transaction, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return transactionDaoToDomain(found), nil
}

// stockDecrements sums line quantities per product and size, keeping the
// order in which each pair first appears.
func stockDecrements(items []domain.LineItem) []dao.StockDecrement {
	type key struct {
		productID string
		size      domain.Size
	}

	index := make(map[key]int)
	var decrements []dao.StockDecrement
	for _, item := range items {
		k := key{item.ProductID, item.Size}
		if i, ok := index[k]; ok {
			decrements[i].Quantity += item.Quantity
			continue
		}
		index[k] = len(decrements)
		decrements = append(decrements, dao.StockDecrement{
			ProductID: item.ProductID,
			Size:      string(item.Size),
			Quantity:  item.Quantity,
		})
	}

	return decrements
}

func transactionDomainToDao(t domain.Transaction) dao.Transaction {
	items := make([]dao.TransactionItem, len(t.Items))
	for i, item := range t.Items {
		items[i] = dao.TransactionItem{
			TransactionID: t.ID,
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         item.Price,
			Size:          string(item.Size),
			Quantity:      item.Quantity,
			CartID:        item.CartID,
		}
	}

	var memberID *string
	if t.HasMember() {
		id := *t.MemberID
		memberID = &id
	}

	return dao.Transaction{
		ID:            t.ID,
		Date:          t.Date.UTC(),
		MemberID:      memberID,
		Discount:      t.Discount,
		Total:         t.Total,
		PaymentMethod: string(t.PaymentMethod),
		Cashier:       t.Cashier,
		Items:         items,
	}
}

func transactionDaoToDomain(t dao.Transaction) domain.Transaction {
	items := make([]domain.LineItem, len(t.Items))
	for i, item := range t.Items {
		items[i] = domain.LineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Size:      domain.Size(item.Size),
			Quantity:  item.Quantity,
			CartID:    item.CartID,
		}
	}

	return domain.Transaction{
		ID:            t.ID,
		Date:          t.Date.UTC(),
		Items:         items,
		MemberID:      t.MemberID,
		Subtotal:      t.Total.Add(t.Discount),
		Discount:      t.Discount,
		Total:         t.Total,
		PaymentMethod: domain.PaymentMethod(t.PaymentMethod),
		Cashier:       t.Cashier,
	}
}
