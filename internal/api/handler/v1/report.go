package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokobajukeren/pos-api/internal/api/handler/v1/response"
	"github.com/tokobajukeren/pos-api/internal/report"
	"github.com/tokobajukeren/pos-api/internal/service"
)

type ReportService interface {
	Location() *time.Location
	Generate(ctx context.Context, q service.ReportQuery) (report.Report, error)
	ExportCSV(ctx context.Context, q service.ReportQuery) ([]byte, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (report.Dashboard, error)
}

type ReportHandler struct {
	svc       ReportService
	dashboard DashboardService
}

func NewReportHandler(svc ReportService, dashboard DashboardService) *ReportHandler {
	return &ReportHandler{
		svc:       svc,
		dashboard: dashboard,
	}
}

func (h *ReportHandler) parseQuery(ctx *gin.Context) (service.ReportQuery, *response.Err) {
	q, err := service.ParseReportQuery(
		ctx.Query("from"),
		ctx.Query("to"),
		ctx.Query("payment"),
		ctx.Query("member"),
		ctx.Query("period"),
		h.svc.Location(),
	)
	if err != nil {
		return service.ReportQuery{}, response.ErrBadRequest(err)
	}

	return q, nil
}

// HandleGetReport godoc
// @Summary      Sales report
// @Tags         reports
// @Produce      json
// @Param        from     query     string  false  "first day, YYYY-MM-DD"
// @Param        to       query     string  false  "last day, YYYY-MM-DD"
// @Param        payment  query     string  false  "all, cash or non-cash"
// @Param        member   query     string  false  "all, member or non-member"
// @Param        period   query     string  false  "day, month or year"
// @Success      200  {object}  report.Report
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports [get]
// @Security BearerAuth
func (h *ReportHandler) HandleGetReport(ctx *gin.Context) {
	q, respErr := h.parseQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	rep, err := h.svc.Generate(ctx.Request.Context(), q)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetReport -> h.svc.Generate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, rep)
}

// HandleExportReport godoc
// @Summary      Download the sales report as CSV
// @Description  The yearly period exports one line per year, other periods one line per transaction.
// @Tags         reports
// @Produce      text/csv
// @Param        from     query     string  false  "first day, YYYY-MM-DD"
// @Param        to       query     string  false  "last day, YYYY-MM-DD"
// @Param        payment  query     string  false  "all, cash or non-cash"
// @Param        member   query     string  false  "all, member or non-member"
// @Param        period   query     string  false  "day, month or year"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reports/export [get]
// @Security BearerAuth
func (h *ReportHandler) HandleExportReport(ctx *gin.Context) {
	q, respErr := h.parseQuery(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	data, err := h.svc.ExportCSV(ctx.Request.Context(), q)
	if err != nil {
		if errors.Is(err, service.ErrNoReportData) {
			response.RenderErr(ctx, response.ErrNothingFound(err))
			return
		}

		err = fmt.Errorf("v1.HandleExportReport -> h.svc.ExportCSV -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	filename := fmt.Sprintf("laporan-%s-%s.csv", q.Period, time.Now().In(h.svc.Location()).Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// HandleGetDashboard godoc
// @Summary      Shop summary for the home screen
// @Tags         reports
// @Produce      json
// @Success      200  {object}  report.Dashboard
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard [get]
// @Security BearerAuth
func (h *ReportHandler) HandleGetDashboard(ctx *gin.Context) {
	summary, err := h.dashboard.Summary(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboard -> h.dashboard.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
