package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"mindwell/internal/cache"
	"mindwell/internal/microservices/http-api/dto"
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"

	"github.com/lib/pq"
)

const (
	DefaultPageLimit     = 12
	MaxPageLimit         = 100
	DefaultFeaturedLimit = 6
	MaxFeaturedLimit     = 50
)

var resourceCachePrefix = cache.Key("resources")

type ResourceService interface {
	List(ctx context.Context, filter repository.ResourceFilter, page repository.Page, sort repository.Sort) ([]models.Resource, int64, error)
	Featured(ctx context.Context, limit int) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	Categories(ctx context.Context) ([]string, error)
	Types(ctx context.Context) ([]string, error)

	// content management
	Create(ctx context.Context, r *models.Resource) error
	Update(ctx context.Context, id string, patch dto.UpdateResourceDTO) (*models.Resource, error)
	Deactivate(ctx context.Context, id string) error
}

type resourceService struct {
	repo   repository.ResourceRepository
	cache  *cache.Cache
	logger *slog.Logger
}

func NewResourceService(repo repository.ResourceRepository, c *cache.Cache, logger *slog.Logger) ResourceService {
	return &resourceService{repo: repo, cache: c, logger: logger}
}

// NormalizePage clamps page to ≥1 and limit to [1, MaxPageLimit].
func NormalizePage(p repository.Page) repository.Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (s *resourceService) List(ctx context.Context, filter repository.ResourceFilter, page repository.Page, sort repository.Sort) ([]models.Resource, int64, error) {
	return s.repo.List(ctx, filter, NormalizePage(page), repository.NormalizeSort(sort))
}

func (s *resourceService) Featured(ctx context.Context, limit int) ([]models.Resource, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}
	key := cache.Key("resources", "featured", strconv.Itoa(limit))
	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]models.Resource, error) {
		return s.repo.Featured(ctx, limit)
	})
}

func (s *resourceService) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	r, err := s.repo.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, errResourceNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *resourceService) Categories(ctx context.Context) ([]string, error) {
	return cache.Remember(ctx, s.cache, cache.Key("resources", "meta", "categories"), s.repo.DistinctCategories)
}

func (s *resourceService) Types(ctx context.Context) ([]string, error) {
	return cache.Remember(ctx, s.cache, cache.Key("resources", "meta", "types"), s.repo.DistinctTypes)
}

func (s *resourceService) Create(ctx context.Context, r *models.Resource) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	if r.Title == "" {
		return newError(ErrInvalidArgument, "title is required")
	}
	r.ApplyDefaults()
	r.Tags = NormalizeTags(r.Tags)
	r.IsActive = true
	r.Rating = models.RatingSummary{}
	r.Engagement = models.Engagement{}

	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return newError(ErrInvalidArgument, "resource already exists")
		}
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("resource_created", "resource_id", r.ID, "category", r.Category, "type", r.Type)
	return nil
}

func (s *resourceService) Update(ctx context.Context, id string, patch dto.UpdateResourceDTO) (*models.Resource, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(existing)
	existing.Tags = NormalizeTags(existing.Tags)
	if strings.TrimSpace(existing.Title) == "" {
		return nil, newError(ErrInvalidArgument, "title cannot be empty")
	}

	if err := s.repo.UpdateContent(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return nil, errResourceNotFound
		}
		return nil, err
	}
	s.invalidate(ctx)
	s.logger.Info("resource_updated", "resource_id", id)
	return existing, nil
}

func (s *resourceService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrResourceNotFound) {
			return errResourceNotFound
		}
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("resource_deactivated", "resource_id", id)
	return nil
}

// invalidate drops cached catalog lists after a content change. Failure
// only delays freshness until the TTL expires.
func (s *resourceService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidatePrefix(ctx, resourceCachePrefix); err != nil {
		s.logger.Warn("cache_invalidate_failed", "prefix", resourceCachePrefix, "error", err)
	}
}

// NormalizeTags lowercases, trims and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
