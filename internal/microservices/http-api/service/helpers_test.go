package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
	"mindwell/internal/microservices/http-api/repository/memory"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store         *memory.Store
	resources     repository.ResourceRepository
	interactions  repository.InteractionRepository
	bookings      repository.BookingRepository
	notifications repository.NotificationRepository
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{
		store:         s,
		resources:     memory.NewResourceRepository(s),
		interactions:  memory.NewInteractionRepository(s),
		bookings:      memory.NewBookingRepository(s),
		notifications: memory.NewNotificationRepository(s),
	}
}

// seedResource stores an active resource, letting mutate adjust it first.
func (f *fixture) seedResource(t *testing.T, mutate func(*models.Resource)) *models.Resource {
	t.Helper()
	r := &models.Resource{
		Title:       "Breathing basics",
		Description: "A short guide to box breathing",
		Category:    "anxiety",
		Type:        "article",
		URL:         "https://example.org/breathing",
		Author:      "Dr. Rivera",
		IsActive:    true,
	}
	r.ApplyDefaults()
	if mutate != nil {
		mutate(r)
	}
	require.NoError(t, f.resources.Create(context.Background(), r))
	return r
}
