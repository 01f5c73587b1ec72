package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/google/uuid"
)

type interactionRepository struct {
	s *Store
}

func NewInteractionRepository(s *Store) repository.InteractionRepository {
	return &interactionRepository{s: s}
}

func (r *interactionRepository) Toggle(ctx context.Context, userID, resourceID, interactionType string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.activeResource(resourceID)
	if !ok {
		return false, repository.ErrResourceNotFound
	}
	counter := res.Engagement.CounterFor(interactionType)
	if counter == nil {
		return false, fmt.Errorf("toggle interaction: no counter for type %q", interactionType)
	}

	now := time.Now().UTC()
	key := interactionKey{userID, resourceID, interactionType}
	res.UpdatedAt = now

	if _, exists := r.s.interactions[key]; exists {
		delete(r.s.interactions, key)
		if *counter > 0 {
			*counter--
		}
		return false, nil
	}

	r.s.interactions[key] = &models.UserInteraction{
		ID:              uuid.New().String(),
		UserID:          userID,
		ResourceID:      resourceID,
		InteractionType: interactionType,
		CreatedAt:       now,
	}
	*counter++
	return true, nil
}

func (r *interactionRepository) RecordView(ctx context.Context, userID, resourceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.activeResource(resourceID); !ok {
		return false, repository.ErrResourceNotFound
	}
	key := interactionKey{userID, resourceID, models.InteractionView}
	if _, exists := r.s.interactions[key]; exists {
		return false, nil
	}
	r.s.interactions[key] = &models.UserInteraction{
		ID:              uuid.New().String(),
		UserID:          userID,
		ResourceID:      resourceID,
		InteractionType: models.InteractionView,
		CreatedAt:       time.Now().UTC(),
	}
	return true, nil
}

func (r *interactionRepository) ListByUser(ctx context.Context, userID, interactionType string) ([]models.UserInteraction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []models.UserInteraction{}
	for key, row := range r.s.interactions {
		if key.userID != userID {
			continue
		}
		if interactionType != "" && key.interactionType != interactionType {
			continue
		}
		c := *row
		if res, ok := r.s.resources[row.ResourceID]; ok {
			rc := cloneResource(res)
			c.Resource = &rc
		}
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
