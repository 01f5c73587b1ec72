package repository

import (
	"context"
	"errors"
	"time"

	"mindwell/internal/microservices/http-api/models"
)

var (
	ErrResourceNotFound     = errors.New("resource not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingNotPending    = errors.New("booking is not pending")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDuplicate            = errors.New("duplicate record")
)

// ResourceFilter narrows a catalog listing; empty fields are ignored and
// the rest combine with AND.
type ResourceFilter struct {
	Category       string
	Type           string
	Difficulty     string
	Language       string
	TargetAudience string
	Search         string
}

// Page is a 1-based page window.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortTitle     = "title"
	SortRating    = "rating"
	SortLikes     = "likes"
	SortBookmarks = "bookmarks"
	SortShares    = "shares"
)

// sortColumns whitelists sortable fields and maps them to SQL columns.
var sortColumns = map[string]string{
	SortCreatedAt: "created_at",
	SortUpdatedAt: "updated_at",
	SortTitle:     "title",
	SortRating:    "rating_average",
	SortLikes:     "likes",
	SortBookmarks: "bookmarks",
	SortShares:    "shares",
}

// Sort orders a listing. Ties always fall back to creation order.
type Sort struct {
	Field string
	Desc  bool
}

// NormalizeSort returns s with an unknown field replaced by createdAt.
func NormalizeSort(s Sort) Sort {
	if _, ok := sortColumns[s.Field]; !ok {
		s.Field = SortCreatedAt
	}
	return s
}

type ResourceRepository interface {
	List(ctx context.Context, filter ResourceFilter, page Page, sort Sort) ([]models.Resource, int64, error)
	Featured(ctx context.Context, limit int) ([]models.Resource, error)
	GetActiveByID(ctx context.Context, id string) (*models.Resource, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctTypes(ctx context.Context) ([]string, error)
	Create(ctx context.Context, r *models.Resource) error
	UpdateContent(ctx context.Context, r *models.Resource) error
	Deactivate(ctx context.Context, id string) error
	// ApplyRating folds one rating into the running mean in a single atomic step.
	ApplyRating(ctx context.Context, id string, rating int) (*models.RatingSummary, error)
}

type InteractionRepository interface {
	// Toggle flips the ledger row and adjusts the matching counter atomically.
	Toggle(ctx context.Context, userID, resourceID, interactionType string) (bool, error)
	// RecordView inserts a view row once; recorded is false when it already existed.
	RecordView(ctx context.Context, userID, resourceID string) (bool, error)
	ListByUser(ctx context.Context, userID, interactionType string) ([]models.UserInteraction, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *models.BookingRequest) error
	GetByID(ctx context.Context, id string) (*models.BookingRequest, error)
	ListByCounsellor(ctx context.Context, counsellorID string, status models.BookingStatus) ([]models.BookingRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.BookingRequest, error)
	// TransitionFromPending sets status only while the booking is still pending.
	TransitionFromPending(ctx context.Context, id string, to models.BookingStatus, at time.Time) (*models.BookingRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID string) error
}
