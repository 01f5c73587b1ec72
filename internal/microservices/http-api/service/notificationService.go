package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
)

type NotificationService interface {
	GetUnread(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) error

	NotifyBookingRequested(ctx context.Context, b *models.BookingRequest)
	NotifyBookingDecided(ctx context.Context, b *models.BookingRequest)
}

type notificationService struct {
	repo   repository.NotificationRepository
	logger *slog.Logger
}

func NewNotificationService(repo repository.NotificationRepository, logger *slog.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

func (s *notificationService) GetUnread(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, errAuthRequired
	}
	return s.repo.GetUnreadByUser(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, notificationID int64) error {
	if userID == "" {
		return errAuthRequired
	}
	if err := s.repo.MarkAsRead(ctx, userID, notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return newError(ErrNotFound, "Notification not found or already read")
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if userID == "" {
		return errAuthRequired
	}
	return s.repo.MarkAllAsRead(ctx, userID)
}

// NotifyBookingRequested tells the counsellor about a new request.
func (s *notificationService) NotifyBookingRequested(ctx context.Context, b *models.BookingRequest) {
	s.create(ctx, &models.Notification{
		UserID:    b.CounsellorID,
		Type:      models.NotificationBookingRequested,
		BookingID: &b.ID,
		Title:     "New session request",
		Message:   fmt.Sprintf("%s requested a %s session on %s at %s", b.Student.Name, b.SessionType, b.RequestedDate, b.RequestedTime),
	})
}

// NotifyBookingDecided tells the student how the counsellor responded.
func (s *notificationService) NotifyBookingDecided(ctx context.Context, b *models.BookingRequest) {
	s.create(ctx, &models.Notification{
		UserID:    b.Student.ID,
		Type:      models.NotificationBookingDecided,
		BookingID: &b.ID,
		Title:     "Session request " + string(b.Status),
		Message:   fmt.Sprintf("Your session on %s at %s was %s", b.RequestedDate, b.RequestedTime, b.Status),
	})
}

// create is best-effort; a failed notification never fails the booking flow.
func (s *notificationService) create(ctx context.Context, n *models.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("notification_create_failed",
			"user_id", n.UserID,
			"type", n.Type,
			"error", err,
		)
	}
}
