package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/service/dashboard"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/stats", h.GetStats)
		dash.GET("/weekly-followups", h.GetWeeklyFollowUps)
		dash.GET("/activity", h.GetRecentActivity)
	}
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}

func (h *Handler) GetWeeklyFollowUps(c *gin.Context) {
	weekly, err := h.service.WeeklyFollowUps(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(weekly))
}

func (h *Handler) GetRecentActivity(c *gin.Context) {
	activity, err := h.service.RecentActivity(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(activity))
}
