package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceService_ListPaginatesFilteredItems(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	for i := 0; i < 7; i++ {
		f.seedResource(t, func(r *models.Resource) { r.Title = fmt.Sprintf("Anxiety %d", i) })
	}
	f.seedResource(t, func(r *models.Resource) { r.Category = "stress" })

	items, total, err := svc.List(context.Background(),
		repository.ResourceFilter{Category: "anxiety"},
		repository.Page{Page: 2, Limit: 5},
		repository.Sort{Field: repository.SortCreatedAt},
	)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, dto.NewPagination(2, 5, total).Pages)
}

func TestResourceService_ListSearchAndSort(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	f.seedResource(t, func(r *models.Resource) {
		r.Title = "Sleep hygiene"
		r.Engagement.Likes = 3
		r.Tags = []string{"insomnia"}
	})
	f.seedResource(t, func(r *models.Resource) {
		r.Title = "Grounding exercise"
		r.Engagement.Likes = 9
	})
	f.seedResource(t, func(r *models.Resource) {
		r.Title = "Evening routine"
		r.Description = "Wind down for better SLEEP"
		r.Engagement.Likes = 3
	})
	ctx := context.Background()

	items, total, err := svc.List(ctx, repository.ResourceFilter{Search: "sleep"}, repository.Page{}, repository.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	items, _, err = svc.List(ctx, repository.ResourceFilter{Search: "INSOM"}, repository.Page{}, repository.Sort{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Sleep hygiene", items[0].Title)

	// equal like counts keep creation order
	items, _, err = svc.List(ctx, repository.ResourceFilter{}, repository.Page{}, repository.Sort{Field: repository.SortLikes, Desc: true})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Grounding exercise", "Sleep hygiene", "Evening routine"},
		[]string{items[0].Title, items[1].Title, items[2].Title})

	// unknown sort fields fall back to createdAt
	items, _, err = svc.List(ctx, repository.ResourceFilter{}, repository.Page{}, repository.Sort{Field: "password", Desc: false})
	require.NoError(t, err)
	assert.Equal(t, "Sleep hygiene", items[0].Title)
}

func TestResourceService_ListBeyondLastPageIsEmpty(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	f.seedResource(t, nil)

	items, total, err := svc.List(context.Background(), repository.ResourceFilter{}, repository.Page{Page: 5, Limit: 10}, repository.Sort{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Empty(t, items)
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, repository.Page{Page: 1, Limit: DefaultPageLimit}, NormalizePage(repository.Page{}))
	assert.Equal(t, repository.Page{Page: 1, Limit: MaxPageLimit}, NormalizePage(repository.Page{Page: -3, Limit: 1000}))
	assert.Equal(t, repository.Page{Page: 4, Limit: 20}, NormalizePage(repository.Page{Page: 4, Limit: 20}))
}

func TestResourceService_FeaturedOrdering(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	featured := func(title string, avg float64, likes int64) {
		f.seedResource(t, func(r *models.Resource) {
			r.Title = title
			r.IsFeatured = true
			r.Rating = models.RatingSummary{Average: avg, Count: 1}
			r.Engagement.Likes = likes
		})
	}
	featured("B", 4.0, 10)
	featured("A", 4.8, 1)
	featured("C", 4.0, 2)
	featured("D", 4.0, 10)
	f.seedResource(t, func(r *models.Resource) { r.Title = "not featured"; r.Rating.Average = 5 })
	f.seedResource(t, func(r *models.Resource) { r.Title = "inactive"; r.IsFeatured = true; r.IsActive = false })

	items, err := svc.Featured(context.Background(), 0)
	require.NoError(t, err)
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"A", "B", "D", "C"}, titles)

	items, err = svc.Featured(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestResourceService_DistinctMetaLists(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	f.seedResource(t, func(r *models.Resource) { r.Category = "stress"; r.Type = "video" })
	f.seedResource(t, func(r *models.Resource) { r.Category = "anxiety"; r.Type = "podcast" })
	f.seedResource(t, func(r *models.Resource) { r.Category = "anxiety"; r.Type = "video" })
	f.seedResource(t, func(r *models.Resource) { r.Category = "therapy"; r.Type = "book"; r.IsActive = false })
	ctx := context.Background()

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"anxiety", "stress"}, cats)

	types, err := svc.Types(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"podcast", "video"}, types)
}

func TestResourceService_GetByID(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	active := f.seedResource(t, nil)
	inactive := f.seedResource(t, func(r *models.Resource) { r.IsActive = false })
	ctx := context.Background()

	got, err := svc.GetByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, active.Title, got.Title)

	_, err = svc.GetByID(ctx, inactive.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Resource not found")
}

func TestResourceService_ContentLifecycle(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	ctx := context.Background()

	r := &models.Resource{
		Title:       "  Journaling for stress  ",
		Description: "Prompts to get started",
		Category:    "stress",
		Type:        "tool",
		URL:         "https://example.org/journal",
		Author:      "Sam Lee",
		Tags:        []string{"Writing", " writing ", "STRESS", ""},
	}
	require.NoError(t, svc.Create(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Journaling for stress", r.Title)
	assert.Equal(t, []string{"writing", "stress"}, []string(r.Tags))
	assert.Equal(t, models.DefaultLanguage, r.Language)
	assert.True(t, r.IsActive)

	title := "Journaling for exam stress"
	featured := true
	updated, err := svc.Update(ctx, r.ID, dto.UpdateResourceDTO{Title: &title, IsFeatured: &featured})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, "stress", updated.Category)

	blank := "   "
	_, err = svc.Update(ctx, r.ID, dto.UpdateResourceDTO{Title: &blank})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	require.NoError(t, svc.Deactivate(ctx, r.ID))
	_, err = svc.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Deactivate(ctx, r.ID), ErrNotFound)
}

func TestResourceService_UpdateKeepsAggregates(t *testing.T) {
	f := newFixture()
	svc := NewResourceService(f.resources, nil, discardLogger())
	res := f.seedResource(t, func(r *models.Resource) {
		r.Rating = models.RatingSummary{Average: 3.5, Count: 2}
		r.Engagement.Likes = 4
	})
	before := res.UpdatedAt
	time.Sleep(time.Millisecond)

	desc := "Updated description"
	_, err := svc.Update(context.Background(), res.ID, dto.UpdateResourceDTO{Description: &desc})
	require.NoError(t, err)

	got, err := f.resources.GetActiveByID(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, desc, got.Description)
	assert.Equal(t, models.RatingSummary{Average: 3.5, Count: 2}, got.Rating)
	assert.Equal(t, int64(4), got.Engagement.Likes)
	assert.True(t, got.UpdatedAt.After(before))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"calm", "sleep"}, []string(NormalizeTags([]string{" Calm", "SLEEP", "calm", ""})))
	assert.Empty(t, NormalizeTags(nil))
}
