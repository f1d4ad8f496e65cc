package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/domain/models"
	"github.com/aruizdev/tablero/internal/repository/sheets"
	"github.com/aruizdev/tablero/internal/service/insights"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
)

// OccupancyHandler serves the occupancy KPI surface of the dashboard.
type OccupancyHandler struct {
	svc      *occupancysvc.Service
	insights *insights.Service
	exporter sheets.Exporter
	cfg      config.OccupancyConfig
	logger   *zap.Logger
}

// NewOccupancyHandler constructs the HTTP handler adapter.
func NewOccupancyHandler(svc *occupancysvc.Service, insightSvc *insights.Service, exporter sheets.Exporter, cfg config.OccupancyConfig, logger *zap.Logger) *OccupancyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OccupancyHandler{
		svc:      svc,
		insights: insightSvc,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// filterFromQuery builds the validated filter from request query params.
// The capacity ceiling defaults from configuration and can be overridden
// per request.
func (h *OccupancyHandler) filterFromQuery(c *gin.Context) (models.Filter, bool) {
	shift, err := models.ParseShift(c.Query("shift"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Filter{}, false
	}

	capacity := h.cfg.CapacityMax
	if raw := c.Query("capacity"); raw != "" {
		capacity, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "capacity must be an integer"})
			return models.Filter{}, false
		}
	}

	filter, err := models.NewFilter(c.Query("date_start"), c.Query("date_end"), shift, capacity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Filter{}, false
	}

	return filter, true
}

// Metrics evaluates the filter and returns the full snapshot: aggregated
// metrics, per-KPI statuses, the alert list and the headline status.
// Datastore failures degrade to empty metrics plus a fetch_error string;
// they are never an HTTP error, so the dashboard always has something to
// render.
func (h *OccupancyHandler) Metrics(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	snapshot := h.svc.Evaluate(c.Request.Context(), filter)
	c.JSON(http.StatusOK, snapshot)
}

// Alerts returns the full-list alert variant for the filter.
func (h *OccupancyHandler) Alerts(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	snapshot := h.svc.Evaluate(c.Request.Context(), filter)
	c.JSON(http.StatusOK, gin.H{
		"alerts":      snapshot.Alerts,
		"fetch_error": snapshot.FetchError,
	})
}

// Headline returns the single highest-priority status for the filter.
func (h *OccupancyHandler) Headline(c *gin.Context) {
	filter, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	snapshot := h.svc.Evaluate(c.Request.Context(), filter)
	c.JSON(http.StatusOK, gin.H{
		"headline":    snapshot.Headline,
		"fetch_error": snapshot.FetchError,
	})
}

// Export appends the evaluated period report to the configured spreadsheet.
func (h *OccupancyHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report export not configured"})
		return
	}

	filter, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	snapshot := h.svc.Evaluate(c.Request.Context(), filter)
	if snapshot.FetchError != "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": snapshot.FetchError})
		return
	}

	if err := h.exporter.AppendOccupancyReport(c.Request.Context(), filter, snapshot.Metrics); err != nil {
		h.logger.Error("failed exporting occupancy report", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export report"})
		return
	}

	c.Status(http.StatusAccepted)
}

// Insight generates the LLM reading of the evaluated period.
func (h *OccupancyHandler) Insight(c *gin.Context) {
	if h.insights == nil || !h.insights.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "insight generation not configured"})
		return
	}

	filter, ok := h.filterFromQuery(c)
	if !ok {
		return
	}

	snapshot := h.svc.Evaluate(c.Request.Context(), filter)
	if snapshot.FetchError != "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": snapshot.FetchError})
		return
	}

	insight, err := h.insights.GenerateOccupancyInsight(c.Request.Context(), snapshot)
	if err != nil {
		h.logger.Error("failed generating insight", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate insight"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insight": insight})
}
