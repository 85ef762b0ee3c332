package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tokobajukeren/pos-api/internal/domain"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrMemberRequired       = errors.New("a member must be selected for customer type Member")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidCustomerType  = errors.New("invalid customer type, expected Member or Non-Member")
)

type SaleRecorder interface {
	RecordSale(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
}

type MemberFinder interface {
	FindByID(ctx context.Context, id string) (domain.Member, error)
}

type CartStore interface {
	Get(userID uint) domain.Cart
	Clear(userID uint)
}

// IDGenerator hands out TRX-<unix millis> ids that never repeat within the
// process, even for two sales in the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return "TRX-" + strconv.FormatInt(ms, 10)
}

type CheckoutInput struct {
	CustomerType  string
	MemberID      string
	PaymentMethod string
}

// Quote is the priced cart as the cashier sees it before confirming.
type Quote struct {
	Items  []domain.CartItem `json:"items"`
	Member *domain.Member    `json:"member,omitempty"`
	domain.Totals
}

type CheckoutService struct {
	carts   CartStore
	members MemberFinder
	sales   SaleRecorder
	ids     *IDGenerator
	now     func() time.Time
}

func NewCheckoutService(carts CartStore, members MemberFinder, sales SaleRecorder, ids *IDGenerator) *CheckoutService {
	return &CheckoutService{
		carts:   carts,
		members: members,
		sales:   sales,
		ids:     ids,
		now:     time.Now,
	}
}

// Quote prices the user's cart for the given customer. An empty cart is not
// an error here.
func (s *CheckoutService) Quote(ctx context.Context, userID uint, customerType, memberID string) (Quote, error) {
	cart := s.carts.Get(userID)

	member, err := s.resolveMember(ctx, customerType, memberID)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Items:  cart.Items,
		Member: member,
		Totals: domain.ComputeTotals(cart.LineItems(), member),
	}, nil
}

// Checkout turns the user's cart into a transaction. Stock is taken in the
// same database transaction; if any size ran out since the line was added,
// nothing is recorded, ErrInsufficientStock is returned and the cart is kept.
func (s *CheckoutService) Checkout(ctx context.Context, cashier domain.User, in CheckoutInput) (domain.Transaction, error) {
	cart := s.carts.Get(cashier.ID)
	if cart.IsEmpty() {
		return domain.Transaction{}, ErrEmptyCart
	}

	method, ok := domain.ParsePaymentMethod(in.PaymentMethod)
	if !ok {
		return domain.Transaction{}, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, in.PaymentMethod)
	}

	member, err := s.resolveMember(ctx, in.CustomerType, in.MemberID)
	if err != nil {
		return domain.Transaction{}, err
	}

	items := cart.LineItems()
	totals := domain.ComputeTotals(items, member)

	transaction := domain.Transaction{
		ID:            s.ids.Next(),
		Date:          s.now(),
		Items:         items,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Total:         totals.Total,
		PaymentMethod: method,
		Cashier:       cashier.Username,
	}
	if member != nil {
		id := member.ID
		transaction.MemberID = &id
	}

	recorded, err := s.sales.RecordSale(ctx, transaction)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.sales.RecordSale -> %w", err)
	}

	s.carts.Clear(cashier.ID)

	zap.L().Info("checkout completed",
		zap.String("transaction_id", recorded.ID),
		zap.String("cashier", cashier.Username),
		zap.String("total", recorded.Total.String()),
		zap.Int("lines", len(recorded.Items)))

	return recorded, nil
}

// resolveMember returns nil for a non-member sale; any member id is ignored
// in that case.
func (s *CheckoutService) resolveMember(ctx context.Context, customerType, memberID string) (*domain.Member, error) {
	ct, ok := domain.ParseCustomerType(customerType)
	if !ok {
		return nil, ErrInvalidCustomerType
	}
	if ct == domain.CustomerNonMember {
		return nil, nil
	}
	if memberID == "" {
		return nil, ErrMemberRequired
	}

	member, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("s.members.FindByID -> %w", err)
	}

	return &member, nil
}
