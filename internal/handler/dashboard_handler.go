package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dgallego/incendios-backend-go/internal/models"
	"github.com/dgallego/incendios-backend-go/internal/service"
	"github.com/dgallego/incendios-backend-go/pkg/response"
)

// DashboardHandler handles HTTP requests for the dashboard
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// bindFilter binds and validates the shared filter query parameters. On
// failure it writes the 400 response and reports false.
func bindFilter(c *gin.Context) (models.IncidentFilter, bool) {
	var filter models.IncidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return filter, false
	}
	if err := filter.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return filter, false
	}
	return filter, true
}

// GetSummary handles GET /api/v1/dashboard/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, summary)
}

// GetMap handles GET /api/v1/dashboard/map
func (h *DashboardHandler) GetMap(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	view, err := h.dashboardService.GetMap(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}

// GetNearby handles GET /api/v1/dashboard/map/near
func (h *DashboardHandler) GetNearby(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat parameter")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lng parameter")
		return
	}
	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radiusKm", "0"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid radiusKm parameter")
		return
	}

	view, err := h.dashboardService.GetNearby(filter, lat, lng, radiusKm)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, view)
}

// GetTimeseries handles GET /api/v1/dashboard/timeseries
func (h *DashboardHandler) GetTimeseries(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	series, err := h.dashboardService.GetTimeseries(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, series)
}

// GetCauses handles GET /api/v1/dashboard/causes
func (h *DashboardHandler) GetCauses(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	slices, err := h.dashboardService.GetCauses(filter, limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, slices)
}

// GetOptions handles GET /api/v1/dashboard/options
func (h *DashboardHandler) GetOptions(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	options, err := h.dashboardService.GetOptions(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, options)
}
