package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mindwell/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

// contentColumns are the fields an admin edit may touch; aggregates are
// only ever changed by their own atomic statements.
var contentColumns = []string{
	"title", "description", "category", "type", "url", "author", "author_credentials",
	"duration", "difficulty", "tags", "thumbnail", "language", "target_audience",
	"is_featured", "updated_at",
}

func (r *resourceRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Resource{}).Where("is_active = ?", true)
}

// applyFilter adds one AND clause per non-empty filter field.
// Search matches title, description, author or any tag, case-insensitively.
func applyFilter(q *gorm.DB, f ResourceFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Language != "" {
		q = q.Where("language = ?", f.Language)
	}
	if f.TargetAudience != "" {
		q = q.Where("target_audience = ?", f.TargetAudience)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := "%" + escapeLike(s) + "%"
		q = q.Where(
			"(title ILIKE ? OR description ILIKE ? OR author ILIKE ? OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE ?))",
			p, p, p, p,
		)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *resourceRepository) List(ctx context.Context, f ResourceFilter, page Page, sort Sort) ([]models.Resource, int64, error) {
	var list []models.Resource
	var total int64

	if err := applyFilter(r.active(ctx), f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}
	if total == 0 {
		return []models.Resource{}, 0, nil
	}

	sort = NormalizeSort(sort)
	err := applyFilter(r.active(ctx), f).
		Order(clause.OrderByColumn{Column: clause.Column{Name: sortColumns[sort.Field]}, Desc: sort.Desc}).
		Order("seq ASC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list resources: %w", err)
	}
	return list, total, nil
}

func (r *resourceRepository) Featured(ctx context.Context, limit int) ([]models.Resource, error) {
	var list []models.Resource
	err := r.active(ctx).
		Where("is_featured = ?", true).
		Order("rating_average DESC").
		Order("likes DESC").
		Order("seq ASC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list featured resources: %w", err)
	}
	return list, nil
}

func (r *resourceRepository) GetActiveByID(ctx context.Context, id string) (*models.Resource, error) {
	if !validUUID(id) {
		return nil, ErrResourceNotFound
	}
	var m models.Resource
	if err := r.active(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &m, nil
}

func (r *resourceRepository) distinct(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.active(ctx).Distinct(column).Order(column).Pluck(column, &values).Error
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	return values, nil
}

func (r *resourceRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

func (r *resourceRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "type")
}

func (r *resourceRepository) Create(ctx context.Context, m *models.Resource) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translatePgError("create resource", err)
	}
	// GORM populates ID and timestamps; seq is database-assigned
	return nil
}

func (r *resourceRepository) UpdateContent(ctx context.Context, m *models.Resource) error {
	if !validUUID(m.ID) {
		return ErrResourceNotFound
	}
	m.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(m).
		Where("is_active = ?", true).
		Select(contentColumns).
		Updates(m)
	if res.Error != nil {
		return translatePgError("update resource", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) Deactivate(ctx context.Context, id string) error {
	if !validUUID(id) {
		return ErrResourceNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.Resource{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("deactivate resource: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// ApplyRating recomputes the mean inside one UPDATE so concurrent
// submissions serialize on the row instead of losing updates.
func (r *resourceRepository) ApplyRating(ctx context.Context, id string, rating int) (*models.RatingSummary, error) {
	if !validUUID(id) {
		return nil, ErrResourceNotFound
	}
	var m models.Resource
	res := r.db.WithContext(ctx).
		Model(&m).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "rating_average"}, {Name: "rating_count"}}}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{
			"rating_average": gorm.Expr("ROUND(((rating_average * rating_count + ?) / (rating_count + 1))::numeric, 1)", rating),
			"rating_count":   gorm.Expr("rating_count + 1"),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, translatePgError("apply rating", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrResourceNotFound
	}
	return &m.Rating, nil
}
