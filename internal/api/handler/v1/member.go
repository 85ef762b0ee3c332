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

type MemberService interface {
	List(ctx context.Context, query string) ([]domain.Member, error)
	Get(ctx context.Context, id string) (domain.Member, error)
	Register(ctx context.Context, in service.MemberInput) (domain.Member, *service.NotificationTask, error)
	Update(ctx context.Context, id string, in service.MemberInput) (domain.Member, error)
	Delete(ctx context.Context, id string) error
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{
		svc: svc,
	}
}

func memberInput(req request.MemberRequest) service.MemberInput {
	return service.MemberInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Discount: req.Discount,
	}
}

// HandleListMembers godoc
// @Summary      List or search members
// @Tags         members
// @Produce      json
// @Param        q    query     string  false  "name or phone fragment"
// @Success      200  {array}   domain.Member
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members [get]
// @Security BearerAuth
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	members, err := h.svc.List(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetMember godoc
// @Summary      Get a member
// @Description  The notification field reports the welcome e-mail outcome.
// @Tags         members
// @Produce      json
// @Param        memberID  path      string  true  "member id"
// @Success      200  {object}  domain.Member
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /members/{memberID} [get]
// @Security BearerAuth
func (h *MemberHandler) HandleGetMember(ctx *gin.Context) {
	id := ctx.Param("memberID")

	member, err := h.svc.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetMember -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleRegisterMember godoc
// @Summary      Register a member
// @Description  With an e-mail address a welcome mail is sent in the background.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        input  body      request.MemberRequest  true  "member"
// @Success      201    {object}  domain.Member
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /members [post]
// @Security BearerAuth
func (h *MemberHandler) HandleRegisterMember(ctx *gin.Context) {
	var req request.MemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, _, err := h.svc.Register(ctx.Request.Context(), memberInput(req))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDiscount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegisterMember -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// HandleUpdateMember godoc
// @Summary      Update a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        memberID  path      string                 true  "member id"
// @Param        input     body      request.MemberRequest  true  "member"
// @Success      200    {object}  domain.Member
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /members/{memberID} [put]
// @Security BearerAuth
func (h *MemberHandler) HandleUpdateMember(ctx *gin.Context) {
	id := ctx.Param("memberID")

	var req request.MemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, err := h.svc.Update(ctx.Request.Context(), id, memberInput(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound("member", "id", id))
		case errors.Is(err, service.ErrInvalidDiscount):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateMember -> h.svc.Update -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleDeleteMember godoc
// @Summary      Delete a member
// @Description  Transactions of the member are kept and reported as Non-Member. Requires confirm=true.
// @Tags         members
// @Produce      json
// @Param        memberID  path      string  true  "member id"
// @Param        confirm   query     bool    true  "must be true"
// @Success      204
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /members/{memberID} [delete]
// @Security BearerAuth
func (h *MemberHandler) HandleDeleteMember(ctx *gin.Context) {
	if !confirmed(ctx) {
		response.RenderErr(ctx, response.ErrConfirmationRequired())
		return
	}

	id := ctx.Param("memberID")
	if err := h.svc.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMember -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
