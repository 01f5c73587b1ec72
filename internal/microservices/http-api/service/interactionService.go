package service

import (
	"context"
	"errors"
	"log/slog"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
)

type InteractionService interface {
	Toggle(ctx context.Context, userID, resourceID, interactionType string) (bool, error)
	RecordView(ctx context.Context, userID, resourceID string) (bool, error)
	History(ctx context.Context, userID, interactionType string) ([]models.UserInteraction, error)
}

type interactionService struct {
	repo   repository.InteractionRepository
	logger *slog.Logger
}

func NewInteractionService(repo repository.InteractionRepository, logger *slog.Logger) InteractionService {
	return &interactionService{repo: repo, logger: logger}
}

// Toggle flips the caller's like, bookmark or share on a resource and
// reports whether the interaction is now present.
func (s *interactionService) Toggle(ctx context.Context, userID, resourceID, interactionType string) (bool, error) {
	if userID == "" {
		return false, errAuthRequired
	}
	if !models.IsOneOf(interactionType, models.ToggleableInteractions) {
		return false, errInvalidInteraction
	}

	interacted, err := s.repo.Toggle(ctx, userID, resourceID, interactionType)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return false, errResourceNotFound
		}
		return false, err
	}

	s.logger.Debug("interaction_toggled",
		"user_id", userID,
		"resource_id", resourceID,
		"type", interactionType,
		"interacted", interacted,
	)
	return interacted, nil
}

func (s *interactionService) RecordView(ctx context.Context, userID, resourceID string) (bool, error) {
	if userID == "" {
		return false, errAuthRequired
	}
	recorded, err := s.repo.RecordView(ctx, userID, resourceID)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return false, errResourceNotFound
		}
		return false, err
	}
	return recorded, nil
}

// History lists the caller's ledger, newest first. An empty type means all.
func (s *interactionService) History(ctx context.Context, userID, interactionType string) ([]models.UserInteraction, error) {
	if userID == "" {
		return nil, errAuthRequired
	}
	if interactionType != "" && !models.IsOneOf(interactionType, models.InteractionTypes) {
		return nil, errInvalidInteraction
	}
	return s.repo.ListByUser(ctx, userID, interactionType)
}
