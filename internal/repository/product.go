package repository

import (
	"context"
	"fmt"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository/dao"
)

var ErrProductNotFound = dao.ErrProductNotFound

type ProductDAO interface {
	Insert(ctx context.Context, product dao.Product) (dao.Product, error)
	FindAll(ctx context.Context) ([]dao.Product, error)
	FindByID(ctx context.Context, id string) (dao.Product, error)
	Update(ctx context.Context, product dao.Product) (dao.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.Insert(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return productDaoToDomain(created), nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	products := make([]domain.Product, len(found))
	for i, p := range found {
		products[i] = productDaoToDomain(p)
	}

	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return productDaoToDomain(found), nil
}

func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.Update(ctx, productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return count, nil
}

func productDomainToDao(p domain.Product) dao.Product {
	stock := p.Stock.Normalize()
	rows := make([]dao.ProductStock, 0, len(domain.Sizes))
	for _, size := range domain.Sizes {
		rows = append(rows, dao.ProductStock{
			ProductID: p.ID,
			Size:      string(size),
			Quantity:  stock[size],
		})
	}

	return dao.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       rows,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productDaoToDomain(p dao.Product) domain.Product {
	stock := domain.NewStock()
	for _, row := range p.Stock {
		if size, ok := domain.ParseSize(row.Size); ok {
			stock[size] = row.Quantity
		}
	}

	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Stock:       stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
