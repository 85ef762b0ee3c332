package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/request"
	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/api/middleware"
	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type CartService interface {
	Get(userID uint) domain.Cart
	Add(ctx context.Context, userID uint, productID, size string, quantity int) (domain.CartItem, error)
	Remove(userID uint, cartID string) error
	Clear(userID uint)
}

type CheckoutService interface {
	Quote(ctx context.Context, userID uint, customerType, memberID string) (service.Quote, error)
	Checkout(ctx context.Context, cashier domain.User, in service.CheckoutInput) (domain.Transaction, error)
}

type CartHandler struct {
	carts    CartService
	checkout CheckoutService
	uSvc     UserService
}

func NewCartHandler(carts CartService, checkout CheckoutService, uSvc UserService) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		uSvc:     uSvc,
	}
}

// HandleGetCart godoc
// @Summary      Price the cashier's cart
// @Description  Without customer_type the cart is priced for a non-member.
// @Tags         cart
// @Produce      json
// @Param        customer_type  query     string  false  "Member or Non-Member"
// @Param        member_id      query     string  false  "member id when customer_type is Member"
// @Success      200  {object}  service.Quote
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /cart [get]
// @Security BearerAuth
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	userID := ctx.GetUint(middleware.KeyUserID)
	memberID := ctx.Query("member_id")

	quote, err := h.checkout.Quote(ctx.Request.Context(), userID, ctx.Query("customer_type"), memberID)
	if err != nil {
		renderCheckoutErr(ctx, "v1.HandleGetCart -> h.checkout.Quote", memberID, err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}

// HandleAddCartItem godoc
// @Summary      Add pieces of one size of a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        input  body      request.AddCartItemRequest  true  "line"
// @Success      201    {object}  domain.CartItem
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /cart/items [post]
// @Security BearerAuth
func (h *CartHandler) HandleAddCartItem(ctx *gin.Context) {
	var req request.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	userID := ctx.GetUint(middleware.KeyUserID)
	item, err := h.carts.Add(ctx.Request.Context(), userID, req.ProductID, req.Size, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "id", req.ProductID))
		case errors.Is(err, service.ErrInvalidSize), errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleAddCartItem -> h.carts.Add -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

// HandleRemoveCartItem godoc
// @Summary      Remove a line from the cart
// @Tags         cart
// @Produce      json
// @Param        cartID  path      string  true  "cart line id"
// @Success      204
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Router       /cart/items/{cartID} [delete]
// @Security BearerAuth
func (h *CartHandler) HandleRemoveCartItem(ctx *gin.Context) {
	cartID := ctx.Param("cartID")

	if err := h.carts.Remove(ctx.GetUint(middleware.KeyUserID), cartID); err != nil {
		response.RenderErr(ctx, response.ErrNotFound("cart item", "id", cartID))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleClearCart godoc
// @Summary      Empty the cart
// @Tags         cart
// @Success      204
// @Failure      401    {object}  response.Err
// @Router       /cart [delete]
// @Security BearerAuth
func (h *CartHandler) HandleClearCart(ctx *gin.Context) {
	h.carts.Clear(ctx.GetUint(middleware.KeyUserID))

	ctx.Status(http.StatusNoContent)
}

// HandleCheckout godoc
// @Summary      Complete the sale
// @Description  Records the transaction, takes the stock and empties the cart.
// @Description  If stock ran out in the meantime nothing is recorded and the cart is kept.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        input  body      request.CheckoutRequest  true  "checkout"
// @Success      201    {object}  domain.Transaction
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /checkout [post]
// @Security BearerAuth
func (h *CartHandler) HandleCheckout(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transaction, err := h.checkout.Checkout(ctx.Request.Context(), user, service.CheckoutInput{
		CustomerType:  req.CustomerType,
		MemberID:      req.MemberID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		renderCheckoutErr(ctx, "v1.HandleCheckout -> h.checkout.Checkout", req.MemberID, err)
		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

func renderCheckoutErr(ctx *gin.Context, op, memberID string, err error) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		response.RenderErr(ctx, response.ErrNotFound("member", "id", memberID))
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrMemberRequired),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidCustomerType):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}
