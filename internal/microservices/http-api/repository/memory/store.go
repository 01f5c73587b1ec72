// Package memory is an in-process storage driver implementing the
// repository interfaces. One mutex guards every collection, so a toggle's
// ledger write and counter change are observed together, as they are
// under the Postgres row lock.
package memory

import (
	"math"
	"sync"

	"mindwell/internal/microservices/http-api/models"
)

type interactionKey struct {
	userID, resourceID, interactionType string
}

type Store struct {
	mu sync.Mutex

	resources    map[string]*models.Resource
	nextSeq      int64
	interactions map[interactionKey]*models.UserInteraction
	bookings     map[string]*models.BookingRequest
	notes        []*models.Notification
	nextNoteID   int64
}

func NewStore() *Store {
	return &Store{
		resources:    make(map[string]*models.Resource),
		interactions: make(map[interactionKey]*models.UserInteraction),
		bookings:     make(map[string]*models.BookingRequest),
	}
}

// activeResource must be called with mu held.
func (s *Store) activeResource(id string) (*models.Resource, bool) {
	r, ok := s.resources[id]
	if !ok || !r.IsActive {
		return nil, false
	}
	return r, true
}

func cloneResource(r *models.Resource) models.Resource {
	c := *r
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	return c
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
