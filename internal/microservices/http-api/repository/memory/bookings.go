package memory

import (
	"context"
	"sort"
	"time"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	s *Store
}

func NewBookingRepository(s *Store) repository.BookingRepository {
	return &bookingRepository{s: s}
}

func cloneBooking(b *models.BookingRequest) models.BookingRequest {
	c := *b
	if b.Notes != nil {
		n := *b.Notes
		c.Notes = &n
	}
	if b.DecidedAt != nil {
		t := *b.DecidedAt
		c.DecidedAt = &t
	}
	return c
}

func (r *bookingRepository) Create(ctx context.Context, b *models.BookingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if _, dup := r.s.bookings[b.ID]; dup {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	b.Status = models.BookingPending
	b.CreatedAt = now
	b.UpdatedAt = now

	stored := cloneBooking(b)
	r.s.bookings[b.ID] = &stored
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	c := cloneBooking(b)
	return &c, nil
}

func (r *bookingRepository) collect(keep func(*models.BookingRequest) bool, newestFirst bool) []models.BookingRequest {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []models.BookingRequest{}
	for _, b := range r.s.bookings {
		if keep(b) {
			list = append(list, cloneBooking(b))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if newestFirst {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

func (r *bookingRepository) ListByCounsellor(ctx context.Context, counsellorID string, status models.BookingStatus) ([]models.BookingRequest, error) {
	return r.collect(func(b *models.BookingRequest) bool {
		return b.CounsellorID == counsellorID && (status == "" || b.Status == status)
	}, false), nil
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID string) ([]models.BookingRequest, error) {
	return r.collect(func(b *models.BookingRequest) bool {
		return b.Student.ID == studentID
	}, true), nil
}

func (r *bookingRepository) TransitionFromPending(ctx context.Context, id string, to models.BookingStatus, at time.Time) (*models.BookingRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	if b.Status != models.BookingPending {
		return nil, repository.ErrBookingNotPending
	}
	b.Status = to
	b.DecidedAt = &at
	b.UpdatedAt = at

	c := cloneBooking(b)
	return &c, nil
}
