package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResource(t *testing.T, repo repository.ResourceRepository, title string) *models.Resource {
	t.Helper()
	r := &models.Resource{
		Title:    title,
		Category: "stress",
		Type:     "video",
		URL:      "https://example.org/" + title,
		Author:   "Campus Wellbeing",
		IsActive: true,
	}
	r.ApplyDefaults()
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}

func TestResourceRepository_ReturnsCopies(t *testing.T) {
	repo := NewResourceRepository(NewStore())
	r := newResource(t, repo, "walk")

	got, err := repo.GetActiveByID(context.Background(), r.ID)
	require.NoError(t, err)
	got.Title = "changed"
	got.Tags = append(got.Tags, "leak")

	again, err := repo.GetActiveByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "walk", again.Title)
	assert.Empty(t, again.Tags)
}

func TestResourceRepository_DeactivateHidesEverywhere(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewResourceRepository(store)
	r := newResource(t, repo, "gone")

	require.NoError(t, repo.Deactivate(ctx, r.ID))
	assert.ErrorIs(t, repo.Deactivate(ctx, r.ID), repository.ErrResourceNotFound)

	_, err := repo.GetActiveByID(ctx, r.ID)
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)

	list, total, err := repo.List(ctx, repository.ResourceFilter{}, repository.Page{Page: 1, Limit: 10}, repository.Sort{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	cats, err := repo.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = NewInteractionRepository(store).Toggle(ctx, "u1", r.ID, models.InteractionLike)
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)
	_, err = repo.ApplyRating(ctx, r.ID, 4)
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)
}

func TestResourceRepository_UnknownSortFallsBackToCreation(t *testing.T) {
	repo := NewResourceRepository(NewStore())
	newResource(t, repo, "b")
	newResource(t, repo, "a")

	list, _, err := repo.List(context.Background(), repository.ResourceFilter{}, repository.Page{Page: 1, Limit: 10}, repository.Sort{Field: "password"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].Title)

	list, _, err = repo.List(context.Background(), repository.ResourceFilter{}, repository.Page{Page: 1, Limit: 10}, repository.Sort{Field: repository.SortTitle})
	require.NoError(t, err)
	assert.Equal(t, "a", list[0].Title)
}

func TestInteractionRepository_ToggleKeepsCounterInStep(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	resources := NewResourceRepository(store)
	interactions := NewInteractionRepository(store)
	r := newResource(t, resources, "shared")

	var wg sync.WaitGroup
	for i := 0; i < 21; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := interactions.Toggle(ctx, "u1", r.ID, models.InteractionShare)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := resources.GetActiveByID(ctx, r.ID)
	require.NoError(t, err)
	rows, err := interactions.ListByUser(ctx, "u1", models.InteractionShare)
	require.NoError(t, err)
	assert.Equal(t, int64(len(rows)), got.Engagement.Shares)
	assert.Equal(t, int64(1), got.Engagement.Shares)

	_, err = interactions.Toggle(ctx, "u1", r.ID, models.InteractionView)
	assert.Error(t, err)
}

func TestInteractionRepository_RecordViewOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	r := newResource(t, NewResourceRepository(store), "viewed")
	interactions := NewInteractionRepository(store)

	recorded, err := interactions.RecordView(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.True(t, recorded)

	recorded, err = interactions.RecordView(ctx, "u1", r.ID)
	require.NoError(t, err)
	assert.False(t, recorded)

	rows, err := interactions.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Resource)
	assert.Equal(t, "viewed", rows[0].Resource.Title)
}

func TestBookingRepository_TransitionFromPending(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(NewStore())
	b := &models.BookingRequest{
		CounsellorID:  "c1",
		Student:       models.StudentInfo{ID: "s1", Name: "Sam", Email: "sam@example.org"},
		RequestedDate: "2026-11-02",
		RequestedTime: "10:00",
		Duration:      60,
		SessionType:   "Check-in",
		Status:        models.BookingAccepted,
	}
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, models.BookingPending, b.Status, "create always starts pending")

	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	got, err := repo.TransitionFromPending(ctx, b.ID, models.BookingCancelled, at)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	require.NotNil(t, got.DecidedAt)
	assert.True(t, got.DecidedAt.Equal(at))

	_, err = repo.TransitionFromPending(ctx, b.ID, models.BookingAccepted, at)
	assert.ErrorIs(t, err, repository.ErrBookingNotPending)
	_, err = repo.TransitionFromPending(ctx, "missing", models.BookingAccepted, at)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)

	pending, err := repo.ListByCounsellor(ctx, "c1", models.BookingPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
	all, err := repo.ListByCounsellor(ctx, "c1", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNotificationRepository_ScopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(NewStore())
	mine := &models.Notification{UserID: "u1", Type: models.NotificationBookingDecided, Title: "Booking accepted"}
	theirs := &models.Notification{UserID: "u2", Type: models.NotificationBookingDecided, Title: "Booking cancelled"}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, theirs))
	assert.NotEqual(t, mine.ID, theirs.ID)

	assert.ErrorIs(t, repo.MarkAsRead(ctx, "u1", theirs.ID), repository.ErrNotificationNotFound)
	require.NoError(t, repo.MarkAsRead(ctx, "u1", mine.ID))
	assert.ErrorIs(t, repo.MarkAsRead(ctx, "u1", mine.ID), repository.ErrNotificationNotFound)

	unread, err := repo.GetUnreadByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	require.NoError(t, repo.MarkAllAsRead(ctx, "u2"))
	unread, err = repo.GetUnreadByUser(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, unread)
}
