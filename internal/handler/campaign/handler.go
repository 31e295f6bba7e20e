package campaign

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadtrackhq/leadtrack-api/internal/handler"
	"github.com/leadtrackhq/leadtrack-api/internal/model"
	"github.com/leadtrackhq/leadtrack-api/internal/service/campaign"
)

type Handler struct {
	service campaign.Service
}

func NewHandler(service campaign.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("", h.ListCampaigns)
		campaigns.POST("", h.CreateCampaign)
		campaigns.POST("/preview", h.PreviewRecipients)
		campaigns.GET("/templates", h.ListTemplates)
	}
}

func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.service.List(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(campaigns))
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req model.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) PreviewRecipients(c *gin.Context) {
	var filters model.CampaignFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	recipients, err := h.service.PreviewRecipients(c.Request.Context(), &filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":      len(recipients),
		"recipients": recipients,
	}))
}

func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.service.Templates()))
}
