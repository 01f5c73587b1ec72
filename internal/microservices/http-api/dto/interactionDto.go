package dto

import (
	"time"

	"mindwell/internal/microservices/http-api/models"
)

// InteractRequest is the body of POST /resources/:id/interact.
// The type is validated by the service so the error message stays uniform.
type InteractRequest struct {
	InteractionType string `json:"interactionType"`
}

// RateRequest is the body of POST /resources/:id/rate. A pointer keeps a
// missing rating distinct from zero.
type RateRequest struct {
	Rating *int `json:"rating" binding:"required"`
}

type ResourceSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Type     string `json:"type"`
	URL      string `json:"url"`
}

// InteractionResponse is one entry of the caller's interaction history.
type InteractionResponse struct {
	ID              string           `json:"id"`
	ResourceID      string           `json:"resourceId"`
	InteractionType string           `json:"interactionType"`
	CreatedAt       time.Time        `json:"createdAt"`
	Resource        *ResourceSummary `json:"resource,omitempty"`
}

func FromInteractionModel(i models.UserInteraction) InteractionResponse {
	out := InteractionResponse{
		ID:              i.ID,
		ResourceID:      i.ResourceID,
		InteractionType: i.InteractionType,
		CreatedAt:       i.CreatedAt,
	}
	if i.Resource != nil {
		out.Resource = &ResourceSummary{
			ID:       i.Resource.ID,
			Title:    i.Resource.Title,
			Category: i.Resource.Category,
			Type:     i.Resource.Type,
			URL:      i.Resource.URL,
		}
	}
	return out
}

func FromInteractionModels(list []models.UserInteraction) []InteractionResponse {
	out := make([]InteractionResponse, 0, len(list))
	for _, i := range list {
		out = append(out, FromInteractionModel(i))
	}
	return out
}
