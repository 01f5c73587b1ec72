package service

import (
	"context"
	"errors"
	"log/slog"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
)

const (
	MinRating = 1
	MaxRating = 5
)

type RatingService interface {
	Submit(ctx context.Context, userID, resourceID string, rating int) (*models.RatingSummary, error)
}

type ratingService struct {
	resources repository.ResourceRepository
	logger    *slog.Logger
}

func NewRatingService(resources repository.ResourceRepository, logger *slog.Logger) RatingService {
	return &ratingService{resources: resources, logger: logger}
}

// Submit folds one rating into the resource's running mean. Ratings are
// not deduplicated per user.
func (s *ratingService) Submit(ctx context.Context, userID, resourceID string, rating int) (*models.RatingSummary, error) {
	if userID == "" {
		return nil, errAuthRequired
	}
	if rating < MinRating || rating > MaxRating {
		return nil, errRatingOutOfRange
	}

	summary, err := s.resources.ApplyRating(ctx, resourceID, rating)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, errResourceNotFound
		}
		return nil, err
	}

	s.logger.Debug("rating_submitted",
		"user_id", userID,
		"resource_id", resourceID,
		"rating", rating,
		"average", summary.Average,
		"count", summary.Count,
	)
	return summary, nil
}
