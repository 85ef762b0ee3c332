package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/request"
	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/domain"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, product domain.Product) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	svc ProductService
}

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleListProducts godoc
// @Summary      List the catalog
// @Tags         products
// @Produce      json
// @Success      200  {array}   domain.Product
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /products [get]
// @Security BearerAuth
func (h *ProductHandler) HandleListProducts(ctx *gin.Context) {
	products, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListProducts -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleGetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        productID  path      string  true  "product id"
// @Success      200  {object}  domain.Product
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /products/{productID} [get]
// @Security BearerAuth
func (h *ProductHandler) HandleGetProduct(ctx *gin.Context) {
	id := ctx.Param("productID")

	product, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetProduct -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleCreateProduct godoc
// @Summary      Add a product to the catalog
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        input  body      request.ProductRequest  true  "product"
// @Success      201    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products [post]
// @Security BearerAuth
func (h *ProductHandler) HandleCreateProduct(ctx *gin.Context) {
	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateProduct -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateProduct godoc
// @Summary      Replace a product's details and stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        productID  path      string                  true  "product id"
// @Param        input      body      request.ProductRequest  true  "product"
// @Success      200    {object}  domain.Product
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID} [put]
// @Security BearerAuth
func (h *ProductHandler) HandleUpdateProduct(ctx *gin.Context) {
	id := ctx.Param("productID")

	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product := req.ToDomain()
	product.ID = id

	updated, err := h.svc.Update(ctx.Request.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "id", id))
		case errors.Is(err, service.ErrInvalidProduct):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteProduct godoc
// @Summary      Remove a product from the catalog
// @Description  Past transactions keep their copy of the product. Requires confirm=true.
// @Tags         products
// @Produce      json
// @Param        productID  path      string  true  "product id"
// @Param        confirm    query     bool    true  "must be true"
// @Success      204
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /products/{productID} [delete]
// @Security BearerAuth
func (h *ProductHandler) HandleDeleteProduct(ctx *gin.Context) {
	if !confirmed(ctx) {
		response.RenderErr(ctx, response.ErrConfirmationRequired())
		return
	}

	id := ctx.Param("productID")
	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteProduct -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
