package restapi

import (
	"net/http"

	"holo_vault_analyzer/internal/app/port"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the composed dashboard page and the analytics read.
type DashboardHandler struct {
	dashboard port.DashboardService
	analytics port.AnalyticsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboard port.DashboardService, analytics port.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, analytics: analytics}
}

// Page renders the dashboard as HTML.
func (h *DashboardHandler) Page(c *gin.Context) {
	sess := sessionFrom(c)
	view := h.dashboard.Build(c.Request.Context(), sess.Wallet())
	c.HTML(http.StatusOK, dashboardTemplateName, gin.H{"View": view, "SessionID": sess.ID})
}

// GetDashboard returns the dashboard view model as JSON.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view := h.dashboard.Build(c.Request.Context(), sessionFrom(c).Wallet())
	c.JSON(http.StatusOK, view)
}

// GetAnalytics returns the current analytics snapshot. It never fails; an
// unresolved read reports loading.
func (h *DashboardHandler) GetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Snapshot(c.Request.Context()))
}

// RefreshAnalytics performs one synchronous analytics read.
func (h *DashboardHandler) RefreshAnalytics(c *gin.Context) {
	if err := h.analytics.Load(c.Request.Context()); err != nil {
		respondError(c, err, http.StatusBadGateway)
		return
	}
	c.JSON(http.StatusOK, h.analytics.Snapshot(c.Request.Context()))
}
