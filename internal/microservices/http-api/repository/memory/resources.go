package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type resourceRepository struct {
	s *Store
}

func NewResourceRepository(s *Store) repository.ResourceRepository {
	return &resourceRepository{s: s}
}

func matches(r *models.Resource, f repository.ResourceFilter) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Difficulty != "" && r.Difficulty != f.Difficulty {
		return false
	}
	if f.Language != "" && r.Language != f.Language {
		return false
	}
	if f.TargetAudience != "" && r.TargetAudience != f.TargetAudience {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), search) ||
		strings.Contains(strings.ToLower(r.Description), search) ||
		strings.Contains(strings.ToLower(r.Author), search) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// compareBy returns -1, 0 or 1 comparing a and b on a sort field.
func compareBy(field string, a, b *models.Resource) int {
	cmpInt := func(x, y int64) int {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	switch field {
	case repository.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case repository.SortTitle:
		return strings.Compare(a.Title, b.Title)
	case repository.SortRating:
		switch {
		case a.Rating.Average < b.Rating.Average:
			return -1
		case a.Rating.Average > b.Rating.Average:
			return 1
		}
		return 0
	case repository.SortLikes:
		return cmpInt(a.Engagement.Likes, b.Engagement.Likes)
	case repository.SortBookmarks:
		return cmpInt(a.Engagement.Bookmarks, b.Engagement.Bookmarks)
	case repository.SortShares:
		return cmpInt(a.Engagement.Shares, b.Engagement.Shares)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// activeSorted must be called with mu held; it returns active rows in creation order.
func (r *resourceRepository) activeSorted() []*models.Resource {
	out := make([]*models.Resource, 0, len(r.s.resources))
	for _, res := range r.s.resources {
		if res.IsActive {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func (r *resourceRepository) List(ctx context.Context, f repository.ResourceFilter, page repository.Page, s repository.Sort) ([]models.Resource, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s = repository.NormalizeSort(s)
	var hits []*models.Resource
	for _, res := range r.activeSorted() {
		if matches(res, f) {
			hits = append(hits, res)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		c := compareBy(s.Field, hits[i], hits[j])
		if s.Desc {
			return c > 0
		}
		return c < 0
	})

	total := int64(len(hits))
	start := page.Offset()
	if start > len(hits) {
		start = len(hits)
	}
	end := start + page.Limit
	if end > len(hits) {
		end = len(hits)
	}

	list := make([]models.Resource, 0, end-start)
	for _, res := range hits[start:end] {
		list = append(list, cloneResource(res))
	}
	return list, total, nil
}

func (r *resourceRepository) Featured(ctx context.Context, limit int) ([]models.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var hits []*models.Resource
	for _, res := range r.activeSorted() {
		if res.IsFeatured {
			hits = append(hits, res)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Rating.Average != hits[j].Rating.Average {
			return hits[i].Rating.Average > hits[j].Rating.Average
		}
		return hits[i].Engagement.Likes > hits[j].Engagement.Likes
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	list := make([]models.Resource, 0, len(hits))
	for _, res := range hits {
		list = append(list, cloneResource(res))
	}
	return list, nil
}

func (r *resourceRepository) GetActiveByID(ctx context.Context, id string) (*models.Resource, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.activeResource(id)
	if !ok {
		return nil, repository.ErrResourceNotFound
	}
	c := cloneResource(res)
	return &c, nil
}

func (r *resourceRepository) distinct(pick func(*models.Resource) string) []string {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[string]struct{})
	out := []string{}
	for _, res := range r.s.resources {
		if !res.IsActive {
			continue
		}
		v := pick(res)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *resourceRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(func(res *models.Resource) string { return res.Category }), nil
}

func (r *resourceRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return r.distinct(func(res *models.Resource) string { return res.Type }), nil
}

func (r *resourceRepository) Create(ctx context.Context, m *models.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if _, dup := r.s.resources[m.ID]; dup {
		return repository.ErrDuplicate
	}
	now := time.Now().UTC()
	r.s.nextSeq++
	m.Seq = r.s.nextSeq
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if m.Tags == nil {
		m.Tags = pq.StringArray{}
	}

	stored := cloneResource(m)
	r.s.resources[m.ID] = &stored
	return nil
}

func (r *resourceRepository) UpdateContent(ctx context.Context, m *models.Resource) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.activeResource(m.ID)
	if !ok {
		return repository.ErrResourceNotFound
	}
	cur.Title = m.Title
	cur.Description = m.Description
	cur.Category = m.Category
	cur.Type = m.Type
	cur.URL = m.URL
	cur.Author = m.Author
	cur.AuthorCredentials = m.AuthorCredentials
	cur.Duration = m.Duration
	cur.Difficulty = m.Difficulty
	cur.Tags = append(pq.StringArray(nil), m.Tags...)
	cur.Thumbnail = m.Thumbnail
	cur.Language = m.Language
	cur.TargetAudience = m.TargetAudience
	cur.IsFeatured = m.IsFeatured
	cur.UpdatedAt = time.Now().UTC()
	m.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *resourceRepository) Deactivate(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.activeResource(id)
	if !ok {
		return repository.ErrResourceNotFound
	}
	cur.IsActive = false
	cur.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *resourceRepository) ApplyRating(ctx context.Context, id string, rating int) (*models.RatingSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.activeResource(id)
	if !ok {
		return nil, repository.ErrResourceNotFound
	}
	count := cur.Rating.Count
	cur.Rating.Average = round1((cur.Rating.Average*float64(count) + float64(rating)) / float64(count+1))
	cur.Rating.Count = count + 1
	cur.UpdatedAt = time.Now().UTC()

	summary := cur.Rating
	return &summary, nil
}
