package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/service/notifications"
	"github.com/aruizdev/tablero/internal/service/treasury"
)

// DashboardHandler serves the notification center and treasury cards.
type DashboardHandler struct {
	bus      *notifications.Bus
	treasury *treasury.Service
	logger   *zap.Logger
}

// NewDashboardHandler constructs the HTTP handler adapter. The treasury
// service may be nil when no banking aggregator is configured.
func NewDashboardHandler(bus *notifications.Bus, treasurySvc *treasury.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{bus: bus, treasury: treasurySvc, logger: logger}
}

// Notifications returns the retained notification history, newest last.
func (h *DashboardHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.bus.Recent()})
}

// TreasurySummary returns the reduced view of the last bank sync.
func (h *DashboardHandler) TreasurySummary(c *gin.Context) {
	if h.treasury == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "treasury integration not configured"})
		return
	}

	summary, ok := h.treasury.Summary()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync has completed yet"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// TreasurySync triggers an on-demand aggregator sync.
func (h *DashboardHandler) TreasurySync(c *gin.Context) {
	if h.treasury == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "treasury integration not configured"})
		return
	}

	summary, err := h.treasury.Sync(c.Request.Context())
	if err != nil {
		h.logger.Error("failed syncing treasury", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to sync bank data"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
