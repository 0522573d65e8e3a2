package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to the dashboard views.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.getDashboard)
	}
}

// parseMonthParam reads the optional month=YYYY-MM query parameter,
// defaulting to the current month.
func parseMonthParam(c *gin.Context) (time.Time, bool) {
	monthStr := c.DefaultQuery("month", time.Now().Format("2006-01"))
	month, err := time.ParseInLocation("2006-01", monthStr, time.Local)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid month format", slog.String("month", monthStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month format. Use YYYY-MM"})
		return time.Time{}, false
	}
	return month, true
}

// getDashboard godoc
// @Summary Month dashboard
// @Description Returns every derived view for the month: summary, daily and category breakdowns, six month trend, prior month comparison, top transactions and notable dates.
// @Tags reports
// @Produce json
// @Param month query string false "Reference month (YYYY-MM)" default(current month)
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	month, ok := parseMonthParam(c)
	if !ok {
		return
	}

	dashboard, err := h.reportingService.Dashboard(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
