package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindwell/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *models.BookingRequest) error {
	b.Status = models.BookingPending
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return translatePgError("create booking", err)
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.BookingRequest, error) {
	if !validUUID(id) {
		return nil, ErrBookingNotFound
	}
	var b models.BookingRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListByCounsellor returns the counsellor's queue oldest first; an empty
// status lists every state.
func (r *bookingRepository) ListByCounsellor(ctx context.Context, counsellorID string, status models.BookingStatus) ([]models.BookingRequest, error) {
	var list []models.BookingRequest
	q := r.db.WithContext(ctx).Where("counsellor_id = ?", counsellorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list counsellor bookings: %w", err)
	}
	return list, nil
}

func (r *bookingRepository) ListByStudent(ctx context.Context, studentID string) ([]models.BookingRequest, error) {
	var list []models.BookingRequest
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list student bookings: %w", err)
	}
	return list, nil
}

// TransitionFromPending is a compare-and-set on status: of two concurrent
// decisions only the first matches "status = pending".
func (r *bookingRepository) TransitionFromPending(ctx context.Context, id string, to models.BookingStatus, at time.Time) (*models.BookingRequest, error) {
	if !validUUID(id) {
		return nil, ErrBookingNotFound
	}
	var b models.BookingRequest
	res := r.db.WithContext(ctx).
		Model(&b).
		Clauses(clause.Returning{}).
		Where("id = ? AND status = ?", id, models.BookingPending).
		Updates(map[string]any{"status": to, "decided_at": at, "updated_at": at})
	if res.Error != nil {
		return nil, translatePgError("decide booking", res.Error)
	}
	if res.RowsAffected == 1 {
		return &b, nil
	}

	// Nothing matched: either the id is unknown or it was already decided.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, ErrBookingNotPending
}
