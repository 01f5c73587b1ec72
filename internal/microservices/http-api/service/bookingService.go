package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
	"mindwell/internal/middleware/auth"
	"mindwell/internal/sanitize"
)

const (
	DefaultSessionMinutes = 60
	MinSessionMinutes     = 15
	MaxSessionMinutes     = 240
)

// Caller is the authenticated identity acting on a booking.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == auth.RoleAdmin }

type BookingService interface {
	Submit(ctx context.Context, studentID string, req dto.CreateBookingDTO) (*models.BookingRequest, error)
	Decide(ctx context.Context, caller Caller, bookingID, action string) (*models.BookingRequest, error)
	Get(ctx context.Context, caller Caller, bookingID string) (*models.BookingRequest, error)
	ListForCounsellor(ctx context.Context, counsellorID, status string) ([]models.BookingRequest, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.BookingRequest, error)
}

type bookingService struct {
	repo          repository.BookingRepository
	notifications NotificationService
	logger        *slog.Logger
	now           func() time.Time
}

func NewBookingService(repo repository.BookingRepository, notifications NotificationService, logger *slog.Logger) BookingService {
	return &bookingService{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Submit records a pending request from the authenticated student.
func (s *bookingService) Submit(ctx context.Context, studentID string, req dto.CreateBookingDTO) (*models.BookingRequest, error) {
	if studentID == "" {
		return nil, errAuthRequired
	}

	duration := req.Duration
	if duration == 0 {
		duration = DefaultSessionMinutes
	}
	if duration < MinSessionMinutes || duration > MaxSessionMinutes {
		return nil, newError(ErrInvalidArgument, "Duration must be between 15 and 240 minutes")
	}
	if _, err := time.Parse("2006-01-02", req.RequestedDate); err != nil {
		return nil, newError(ErrInvalidArgument, "requestedDate must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.RequestedTime); err != nil {
		return nil, newError(ErrInvalidArgument, "requestedTime must be HH:MM")
	}

	b := &models.BookingRequest{
		CounsellorID: strings.TrimSpace(req.CounsellorID),
		Student: models.StudentInfo{
			ID:    studentID,
			Name:  sanitize.Text(req.StudentName),
			Email: strings.TrimSpace(req.StudentEmail),
			Phone: sanitize.Text(req.StudentPhone),
		},
		RequestedDate: req.RequestedDate,
		RequestedTime: req.RequestedTime,
		Duration:      duration,
		SessionType:   sanitize.Text(req.SessionType),
		Notes:         sanitize.OptionalText(req.Notes),
		Status:        models.BookingPending,
	}
	if b.CounsellorID == "" {
		return nil, newError(ErrInvalidArgument, "counsellorId is required")
	}
	if b.Student.Name == "" || b.SessionType == "" {
		return nil, newError(ErrInvalidArgument, "studentName and sessionType cannot be empty")
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking_submitted",
		"booking_id", b.ID,
		"counsellor_id", b.CounsellorID,
		"student_id", studentID,
	)
	s.notifications.NotifyBookingRequested(ctx, b)
	return b, nil
}

// Decide moves a pending booking to the status the action names. Only the
// booking's counsellor or an admin may decide, and only once.
func (s *bookingService) Decide(ctx context.Context, caller Caller, bookingID, action string) (*models.BookingRequest, error) {
	if caller.ID == "" {
		return nil, errAuthRequired
	}
	to, ok := models.BookingAction(action).TargetStatus()
	if !ok {
		return nil, newError(ErrInvalidArgument, "Action must be one of accept, reschedule, cancel")
	}

	current, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapBookingError(err)
	}
	if current.CounsellorID != caller.ID && !caller.IsAdmin() {
		return nil, newError(ErrForbidden, "Booking belongs to another counsellor")
	}

	updated, err := s.repo.TransitionFromPending(ctx, bookingID, to, s.now())
	if err != nil {
		return nil, mapBookingError(err)
	}

	s.logger.Info("booking_decided",
		"booking_id", updated.ID,
		"counsellor_id", updated.CounsellorID,
		"decided_by", caller.ID,
		"status", updated.Status,
	)
	s.notifications.NotifyBookingDecided(ctx, updated)
	return updated, nil
}

// Get returns a booking to its student, its counsellor or an admin.
func (s *bookingService) Get(ctx context.Context, caller Caller, bookingID string) (*models.BookingRequest, error) {
	if caller.ID == "" {
		return nil, errAuthRequired
	}
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapBookingError(err)
	}
	if b.Student.ID != caller.ID && b.CounsellorID != caller.ID && !caller.IsAdmin() {
		return nil, newError(ErrForbidden, "You do not have access to this booking")
	}
	return b, nil
}

// ListForCounsellor returns the counsellor's queue, pending only unless
// another status is asked for. "all" lifts the filter.
func (s *bookingService) ListForCounsellor(ctx context.Context, counsellorID, status string) ([]models.BookingRequest, error) {
	if counsellorID == "" {
		return nil, errAuthRequired
	}
	var st models.BookingStatus
	switch status {
	case "":
		st = models.BookingPending
	case "all":
	default:
		st = models.BookingStatus(status)
		if !st.Valid() {
			return nil, newError(ErrInvalidArgument, "Invalid booking status")
		}
	}
	return s.repo.ListByCounsellor(ctx, counsellorID, st)
}

func (s *bookingService) ListForStudent(ctx context.Context, studentID string) ([]models.BookingRequest, error) {
	if studentID == "" {
		return nil, errAuthRequired
	}
	return s.repo.ListByStudent(ctx, studentID)
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return errBookingNotFound
	case errors.Is(err, repository.ErrBookingNotPending):
		return newError(ErrInvalidState, "Booking has already been decided")
	}
	return err
}
