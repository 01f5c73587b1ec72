package handler

import (
	"context"
	"log/slog"
	"net/http"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// InteractionHandler serves the engagement endpoints: toggles, views,
// ratings and the caller's history.
type InteractionHandler struct {
	interactions service.InteractionService
	ratings      service.RatingService
	resources    service.ResourceService
	logger       *slog.Logger
}

func NewInteractionHandler(interactions service.InteractionService, ratings service.RatingService, resources service.ResourceService, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
		ratings:      ratings,
		resources:    resources,
		logger:       logger,
	}
}

// RegisterRoutes expects rg to be mounted at /resources behind AuthMiddleware.
func (h *InteractionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/interactions", h.History)
	rg.POST("/:id/interact", h.Interact)
	rg.POST("/:id/view", h.View)
	rg.POST("/:id/rate", h.Rate)
}

type interactResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Interacted bool               `json:"interacted"`
	Engagement *models.Engagement `json:"engagement,omitempty"`
}

func (h *InteractionHandler) Interact(c *gin.Context) {
	var in dto.InteractRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBindError(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resourceID := c.Param("id")
	interacted, err := h.interactions.Toggle(ctx, c.GetString("userID"), resourceID, in.InteractionType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	resp := interactResponse{
		Success:    true,
		Message:    toggleMessage(in.InteractionType, interacted),
		Interacted: interacted,
	}

	// counters after the toggle; the toggle already succeeded so a failed
	// read only drops the snapshot
	r, err := h.resources.GetByID(ctx, resourceID)
	if err != nil {
		h.logger.Warn("engagement_read_failed", "resource_id", resourceID, "error", err)
	} else {
		resp.Engagement = &r.Engagement
	}
	c.JSON(http.StatusOK, resp)
}

func toggleMessage(interactionType string, on bool) string {
	switch interactionType {
	case models.InteractionBookmark:
		if on {
			return "Resource bookmarked"
		}
		return "Bookmark removed"
	case models.InteractionShare:
		if on {
			return "Resource shared"
		}
		return "Share removed"
	}
	if on {
		return "Resource liked"
	}
	return "Resource unliked"
}

func (h *InteractionHandler) View(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	recorded, err := h.interactions.RecordView(ctx, c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"recorded": recorded})
}

func (h *InteractionHandler) History(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	list, err := h.interactions.History(ctx, c.GetString("userID"), c.Query("type"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, dto.FromInteractionModels(list))
}

type rateResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Rating  *models.RatingSummary `json:"rating,omitempty"`
}

func (h *InteractionHandler) Rate(c *gin.Context) {
	var in dto.RateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondFail(c, http.StatusBadRequest, "Rating must be between 1 and 5")
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summary, err := h.ratings.Submit(ctx, c.GetString("userID"), c.Param("id"), *in.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, rateResponse{Success: true, Message: "Rating submitted successfully", Rating: summary})
}
