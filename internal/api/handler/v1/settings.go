package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/service"
)

const maxBackupSize = 32 << 20

type BackupService interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	Restore(ctx context.Context, data []byte) (service.RestoreResult, error)
	Reset(ctx context.Context) error
}

type SettingsHandler struct {
	svc BackupService
}

func NewSettingsHandler(svc BackupService) *SettingsHandler {
	return &SettingsHandler{
		svc: svc,
	}
}

// HandleExportBackup godoc
// @Summary      Download a JSON backup of products, members and transactions
// @Tags         settings
// @Produce      json
// @Success      200  {file}    file
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /settings/backup [get]
// @Security BearerAuth
func (h *SettingsHandler) HandleExportBackup(ctx *gin.Context) {
	data, err := h.svc.ExportJSON(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleExportBackup -> h.svc.ExportJSON -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("backup-toko-%s.json", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// HandleRestoreBackup godoc
// @Summary      Replace all data with a backup
// @Description  The request body is the backup document. Open carts are emptied. Requires confirm=true.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        confirm  query     bool    true  "must be true"
// @Success      200  {object}  service.RestoreResult
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /settings/restore [post]
// @Security BearerAuth
func (h *SettingsHandler) HandleRestoreBackup(ctx *gin.Context) {
	if !confirmed(ctx) {
		response.RenderErr(ctx, response.ErrConfirmationRequired())
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxBackupSize))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Restore(ctx.Request.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedBackup),
			errors.Is(err, service.ErrInvalidBackupShape),
			errors.Is(err, service.ErrUnsupportedBackupVersion),
			errors.Is(err, service.ErrInvalidBackupRecord):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleRestoreBackup -> h.svc.Restore -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleResetData godoc
// @Summary      Delete all products, members and transactions
// @Description  User accounts are kept. Requires confirm=true.
// @Tags         settings
// @Produce      json
// @Param        confirm  query     bool    true  "must be true"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /settings/reset [post]
// @Security BearerAuth
func (h *SettingsHandler) HandleResetData(ctx *gin.Context) {
	if !confirmed(ctx) {
		response.RenderErr(ctx, response.ErrConfirmationRequired())
		return
	}

	if err := h.svc.Reset(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleResetData -> h.svc.Reset -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
