package http

import (
	"net/http"
	"strconv"

	"mood-journal/internal/dto"
	ingestion "mood-journal/internal/ingestion/service"
	"mood-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultRunLimit = 50

// RunHandler handles HTTP requests for ingestion runs.
type RunHandler struct {
	ingestionService ingestion.IngestionService
	logger           *logger.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(ingestionService ingestion.IngestionService, logger *logger.Logger) *RunHandler {
	return &RunHandler{ingestionService: ingestionService, logger: logger}
}

// RegisterRoutes registers the run routes to the Echo group.
func (h *RunHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRuns)
}

// GetRuns returns the most recent ingestion runs, newest first. The limit
// query parameter defaults to 50.
func (h *RunHandler) GetRuns(c echo.Context) error {
	limit := defaultRunLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		}
		limit = n
	}

	runs, err := h.ingestionService.ListRuns(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get ingestion runs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get ingestion runs"})
	}
	return c.JSON(http.StatusOK, runs)
}
