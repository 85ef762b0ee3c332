package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/repository"
)

var (
	ErrInvalidSize       = errors.New("invalid size, expected one of S, M, L, XL, XXL")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = repository.ErrInsufficientStock
	ErrCartItemNotFound  = errors.New("cart item not found")
)

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
}

// CartService keeps one in-memory cart per cashier. Carts are never stored.
type CartService struct {
	products ProductFinder

	mu    sync.Mutex
	carts map[uint]*domain.Cart
}

func NewCartService(products ProductFinder) *CartService {
	return &CartService{
		products: products,
		carts:    make(map[uint]*domain.Cart),
	}
}

// Get returns a copy of the user's cart.
func (s *CartService) Get(userID uint) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok {
		return domain.Cart{Items: []domain.CartItem{}}
	}

	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return domain.Cart{Items: items}
}

// Add puts quantity pieces of one size of a product in the cart. Name and
// price are copied from the catalog now. The quantity already in the cart
// counts against the available stock.
func (s *CartService) Add(ctx context.Context, userID uint, productID, sizeLabel string, quantity int) (domain.CartItem, error) {
	size, ok := domain.ParseSize(sizeLabel)
	if !ok {
		return domain.CartItem{}, ErrInvalidSize
	}
	if quantity < 1 {
		return domain.CartItem{}, ErrInvalidQuantity
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("s.products.FindByID -> %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	if cart == nil {
		cart = &domain.Cart{}
		s.carts[userID] = cart
	}

	if cart.QuantityOf(product.ID, size)+quantity > product.Stock[size] {
		return domain.CartItem{}, fmt.Errorf("%w: %s size %s has %d left", ErrInsufficientStock, product.Name, size, product.Stock[size])
	}

	return cart.Add(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Size:      size,
		Quantity:  quantity,
	}), nil
}

func (s *CartService) Remove(userID uint, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[userID]
	if !ok || !cart.Remove(cartID) {
		return ErrCartItemNotFound
	}

	return nil
}

func (s *CartService) Clear(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

// ResetAll drops every cart, as needed after the catalog is replaced.
func (s *CartService) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts = make(map[uint]*domain.Cart)
}
