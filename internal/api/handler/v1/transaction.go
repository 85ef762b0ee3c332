package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type TransactionService interface {
	List(ctx context.Context) ([]domain.Transaction, error)
	Get(ctx context.Context, id string) (domain.Transaction, error)
	Receipt(ctx context.Context, id string) (string, error)
}

type TransactionHandler struct {
	svc TransactionService
}

func NewTransactionHandler(svc TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: svc,
	}
}

// HandleListTransactions godoc
// @Summary      List every transaction, oldest first
// @Tags         transactions
// @Produce      json
// @Success      200  {array}   domain.Transaction
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transactions [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleListTransactions(ctx *gin.Context) {
	transactions, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListTransactions -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}

// HandleGetTransaction godoc
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        transactionID  path      string  true  "transaction id"
// @Success      200  {object}  domain.Transaction
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transactions/{transactionID} [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleGetTransaction(ctx *gin.Context) {
	id := ctx.Param("transactionID")

	transaction, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("transaction", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetTransaction -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transaction)
}

// HandleGetReceipt godoc
// @Summary      Printable receipt
// @Description  Plain text laid out for an 80mm receipt printer.
// @Tags         transactions
// @Produce      plain
// @Param        transactionID  path      string  true  "transaction id"
// @Success      200  {string}  string
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transactions/{transactionID}/receipt [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleGetReceipt(ctx *gin.Context) {
	id := ctx.Param("transactionID")

	text, err := h.svc.Receipt(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("transaction", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetReceipt -> h.svc.Receipt -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}
