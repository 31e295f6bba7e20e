package meeting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/service/meeting"
)

type Handler struct {
	service meeting.Service
}

func NewHandler(service meeting.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	meetings := r.Group("/meetings")
	{
		meetings.GET("", h.ListScheduled)
		meetings.POST("", h.Schedule)
	}
}

func (h *Handler) Schedule(c *gin.Context) {
	var req model.ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	scheduled, err := h.service.Schedule(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(scheduled))
}

func (h *Handler) ListScheduled(c *gin.Context) {
	meetings, err := h.service.ListScheduled(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(meetings))
}
