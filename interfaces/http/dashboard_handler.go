package http

import (
	"errors"
	"net/http"

	"github.com/Karthikk7293/social-media-handler/domain/model"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
	"github.com/Karthikk7293/social-media-handler/infrastructure/metrics"
	"github.com/Karthikk7293/social-media-handler/usecase"

	"github.com/gin-gonic/gin"
)

// ILookupRecorder counts platform lookups by outcome
type ILookupRecorder interface {
	IncLookup(outcome string)
}

// IDashboardHandler defines the dashboard HTTP handlers
type IDashboardHandler interface {
	GetOverview(ctx *gin.Context)
	GetChart(ctx *gin.Context)
	GetTabs(ctx *gin.Context)
	GetPlatforms(ctx *gin.Context)
	GetPlatform(ctx *gin.Context)
	GetPlatformSeries(ctx *gin.Context)
}

type DashboardHandler struct {
	dashboardUsecase usecase.IDashboardUsecase
	lookups          ILookupRecorder
}

func NewDashboardHandler(dashboardUsecase usecase.IDashboardUsecase, lookups ILookupRecorder) IDashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase, lookups: lookups}
}

// GetOverview handles GET /api/dashboard/overview
func (h *DashboardHandler) GetOverview(ctx *gin.Context) {
	view, err := h.dashboardUsecase.Overview(ctx.Request.Context())
	if err != nil {
		respondError(ctx, "Failed to get dashboard overview", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// GetChart handles GET /api/dashboard/chart
func (h *DashboardHandler) GetChart(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": h.dashboardUsecase.Chart(ctx.Request.Context())})
}

// GetTabs handles GET /api/dashboard/tabs
func (h *DashboardHandler) GetTabs(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": h.dashboardUsecase.Tabs(ctx.Request.Context())})
}

// GetPlatforms handles GET /api/dashboard/platforms
func (h *DashboardHandler) GetPlatforms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": h.dashboardUsecase.Platforms(ctx.Request.Context())})
}

// GetPlatform handles GET /api/dashboard/platforms/:platform
func (h *DashboardHandler) GetPlatform(ctx *gin.Context) {
	platform := ctx.Param("platform")
	view, err := h.dashboardUsecase.PlatformView(ctx.Request.Context(), platform)
	h.recordLookup(err)
	if err != nil {
		respondError(ctx, "Failed to get platform", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// GetPlatformSeries handles GET /api/dashboard/platforms/:platform/series
func (h *DashboardHandler) GetPlatformSeries(ctx *gin.Context) {
	platform := ctx.Param("platform")
	series, err := h.dashboardUsecase.Series(ctx.Request.Context(), platform)
	h.recordLookup(err)
	if err != nil {
		respondError(ctx, "Failed to get platform series", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": series})
}

func (h *DashboardHandler) recordLookup(err error) {
	if h.lookups == nil {
		return
	}
	switch {
	case err == nil:
		h.lookups.IncLookup(metrics.LookupFound)
	case errors.Is(err, model.ErrNotFound):
		h.lookups.IncLookup(metrics.LookupNotFound)
	}
}

// respondError maps domain errors onto HTTP status codes
func respondError(ctx *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrValidation):
		status = http.StatusUnprocessableEntity
	default:
		logger.GetLogger().WithField("error", err).WithField("path", ctx.FullPath()).Error(message)
	}
	ctx.JSON(status, gin.H{
		"error":   message,
		"message": err.Error(),
	})
}
