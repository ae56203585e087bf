package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ticksy/internal/middleware"
	"ticksy/internal/models"
	"ticksy/internal/services"
	"ticksy/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

func (h *ReportHandler) AdminDashboard(c *gin.Context) {
	dashboard, err := h.reportService.AdminDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to build dashboard", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Dashboard retrieved", dashboard))
}

func (h *ReportHandler) OrderReport(c *gin.Context) {
	filter := models.ReportFilter{
		EventName: c.Query("event_name"),
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid start_date, expected YYYY-MM-DD", raw))
			return
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid end_date, expected YYYY-MM-DD", raw))
			return
		}
		// Inclusive end of day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}

	report, err := h.reportService.OrderReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to build report", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Report retrieved", report))
}

func (h *ReportHandler) OrganizerDashboard(c *gin.Context) {
	overview, err := h.reportService.OrganizerDashboard(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to build dashboard", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Dashboard retrieved", overview))
}

func (h *ReportHandler) OrganizerEventStats(c *gin.Context) {
	stats, err := h.reportService.OrganizerEventStats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to build event stats", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Event stats retrieved", stats))
}

func (h *ReportHandler) RecentAuditLogs(c *gin.Context) {
	logs, err := h.reportService.RecentAuditLogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse("Failed to list audit logs", err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse("Audit logs retrieved", logs))
}
