package service

import (
	"context"
	"sync"
	"testing"

	"mindwell/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingService_IncrementalMean(t *testing.T) {
	tests := []struct {
		name   string
		before models.RatingSummary
		rating int
		want   models.RatingSummary
	}{
		// 50/11 = 4.545...
		{"ten ratings at 4.5 plus a 5", models.RatingSummary{Average: 4.5, Count: 10}, 5, models.RatingSummary{Average: 4.5, Count: 11}},
		{"second rating", models.RatingSummary{Average: 4.0, Count: 1}, 5, models.RatingSummary{Average: 4.5, Count: 2}},
		{"rounds to one decimal", models.RatingSummary{Average: 4.2, Count: 2}, 5, models.RatingSummary{Average: 4.5, Count: 3}},
		{"low rating pulls mean down", models.RatingSummary{Average: 5, Count: 3}, 1, models.RatingSummary{Average: 4, Count: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			svc := NewRatingService(f.resources, discardLogger())
			res := f.seedResource(t, func(r *models.Resource) { r.Rating = tt.before })

			summary, err := svc.Submit(context.Background(), "user-1", res.ID, tt.rating)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *summary)
		})
	}
}

func TestRatingService_FirstRating(t *testing.T) {
	f := newFixture()
	svc := NewRatingService(f.resources, discardLogger())
	res := f.seedResource(t, nil)

	summary, err := svc.Submit(context.Background(), "user-1", res.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Average: 3, Count: 1}, *summary)
}

func TestRatingService_RejectsOutOfRange(t *testing.T) {
	f := newFixture()
	svc := NewRatingService(f.resources, discardLogger())
	res := f.seedResource(t, nil)
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(ctx, "user-1", res.ID, rating)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.EqualError(t, err, "Rating must be between 1 and 5")
	}

	got, err := f.resources.GetActiveByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{}, got.Rating)
}

func TestRatingService_Errors(t *testing.T) {
	f := newFixture()
	svc := NewRatingService(f.resources, discardLogger())
	inactive := f.seedResource(t, func(r *models.Resource) { r.IsActive = false })
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-1", "missing", 4)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Submit(ctx, "user-1", inactive.ID, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Submit(ctx, "", inactive.ID, 4)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRatingService_ConcurrentSubmissionsCountEveryRating(t *testing.T) {
	f := newFixture()
	svc := NewRatingService(f.resources, discardLogger())
	res := f.seedResource(t, nil)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Submit(ctx, "user-1", res.ID, 4)
		}()
	}
	wg.Wait()

	got, err := f.resources.GetActiveByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n), got.Rating.Count)
	assert.Equal(t, 4.0, got.Rating.Average)
}
