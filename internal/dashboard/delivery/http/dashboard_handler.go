package http

import (
	"errors"
	"net/http"

	"mood-journal/internal/dashboard/service"
	"mood-journal/internal/dto"
	"mood-journal/internal/statistics"
	"mood-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles HTTP requests for journal entries and their statistics.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, logger: logger}
}

// RegisterRoutes registers the dashboard routes to the Echo group.
func (h *DashboardHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/entries", h.GetEntries)
	g.GET("/statistics", h.GetStatistics)
	g.GET("/summary", h.GetSummary)
	g.GET("/keywords", h.GetKeywords)
}

// GetEntries returns the entries matching the start, end, mood, q and range
// query parameters, newest first.
func (h *DashboardHandler) GetEntries(c echo.Context) error {
	var q dto.EntryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	records, err := h.dashboardService.ListEntries(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "Failed to get entries")
	}
	return c.JSON(http.StatusOK, records)
}

// GetStatistics returns the aggregate statistics over the whole store.
func (h *DashboardHandler) GetStatistics(c echo.Context) error {
	stats, err := h.dashboardService.GetStatistics(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to get statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

// GetSummary returns the overview metrics of the filtered entries.
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	var q dto.EntryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	summary, err := h.dashboardService.GetSummary(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "Failed to get summary")
	}
	return c.JSON(http.StatusOK, summary)
}

// GetKeywords returns the n most frequent keywords of the filtered entries.
func (h *DashboardHandler) GetKeywords(c echo.Context) error {
	var q dto.KeywordQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters"})
	}

	keywords, err := h.dashboardService.GetTopKeywords(c.Request().Context(), q)
	if err != nil {
		return h.fail(c, err, "Failed to get keywords")
	}
	return c.JSON(http.StatusOK, keywords)
}

// fail maps filter errors to 400 and everything else to 500.
func (h *DashboardHandler) fail(c echo.Context, err error, msg string) error {
	if errors.Is(err, statistics.ErrInvalidFilter) {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	}
	h.logger.Error(msg, logger.ErrorField(err), logger.StringField("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msg})
}
