package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrInvalidProduct  = errors.New("invalid product")
)

type ProductRepository interface {
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ProductService struct {
	repo ProductRepository
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return product, nil
}

func (s *ProductService) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := checkProduct(product); err != nil {
		return domain.Product{}, err
	}
	product.ID = uuid.NewString()
	product.Stock = product.Stock.Normalize()

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("product created", zap.String("id", created.ID), zap.String("name", created.Name))

	return created, nil
}

// Update overwrites every editable field of the product, stock included.
func (s *ProductService) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := checkProduct(product); err != nil {
		return domain.Product{}, err
	}
	product.Stock = product.Stock.Normalize()

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete removes the product. Past transactions keep their own copy of the
// name and price.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	zap.L().Info("product deleted", zap.String("id", id))

	return nil
}

func checkProduct(p domain.Product) error {
	if p.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	for size, qty := range p.Stock {
		if qty < 0 {
			return fmt.Errorf("%w: stock for size %s must not be negative", ErrInvalidProduct, size)
		}
	}
	return nil
}
