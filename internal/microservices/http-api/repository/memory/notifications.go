package memory

import (
	"context"
	"time"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
)

type notificationRepository struct {
	s *Store
}

func NewNotificationRepository(s *Store) repository.NotificationRepository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextNoteID++
	n.ID = r.s.nextNoteID
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	stored := *n
	r.s.notes = append(r.s.notes, &stored)
	return nil
}

func (r *notificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []models.Notification{}
	// newest first
	for i := len(r.s.notes) - 1; i >= 0; i-- {
		n := r.s.notes[i]
		if n.UserID == userID && !n.Read {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range r.s.notes {
		if n.ID == notificationID && n.UserID == userID && !n.Read {
			n.Read = true
			return nil
		}
	}
	return repository.ErrNotificationNotFound
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range r.s.notes {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}
