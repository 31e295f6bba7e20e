package followup

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/service/lead"
)

type Handler struct {
	service lead.Service
}

func NewHandler(service lead.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	followups := r.Group("/followups")
	{
		followups.GET("", h.ListFollowUps)
		followups.PUT("/:id", h.Reschedule)
		followups.POST("/:id/complete", h.Complete)
	}
}

func (h *Handler) ListFollowUps(c *gin.Context) {
	due := model.FollowUpDue(c.DefaultQuery("due", "all"))
	switch due {
	case model.FollowUpDueAll, model.FollowUpDueToday, model.FollowUpDueOverdue, model.FollowUpDueUpcoming:
	default:
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid due filter"))
		return
	}

	leads, err := h.service.ListFollowUps(c.Request.Context(), due)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(leads))
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lead ID"))
		return
	}

	var req model.RescheduleFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.RescheduleFollowUp(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lead ID"))
		return
	}

	// An empty body is fine: completion needs no notes.
	var req model.CompleteFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.CompleteFollowUp(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
