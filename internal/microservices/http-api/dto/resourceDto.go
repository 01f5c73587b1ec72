package dto

import (
	"mindwell/internal/microservices/http-api/models"
	"mindwell/internal/microservices/http-api/repository"
)

// CreateResourceDTO used for POST /api/v1/resources
type CreateResourceDTO struct {
	Title             string   `json:"title" binding:"required,max=200"`
	Description       string   `json:"description" binding:"required,max=1000"`
	Category          string   `json:"category" binding:"required,oneof=anxiety depression stress mindfulness therapy self-care relationships general"`
	Type              string   `json:"type" binding:"required,oneof=article video podcast tool app book"`
	URL               string   `json:"url" binding:"required,url"`
	Author            string   `json:"author" binding:"required,max=200"`
	AuthorCredentials *string  `json:"authorCredentials,omitempty"`
	Duration          *string  `json:"duration,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags              []string `json:"tags,omitempty" binding:"omitempty,dive,max=50"`
	Thumbnail         *string  `json:"thumbnail,omitempty" binding:"omitempty,url"`
	Language          string   `json:"language,omitempty" binding:"omitempty,oneof=en es fr de hi zh ar pt ru ja"`
	TargetAudience    string   `json:"targetAudience,omitempty" binding:"omitempty,oneof=students professionals parents teens adults all"`
	IsFeatured        bool     `json:"isFeatured"`
}

// UpdateResourceDTO used for PUT /api/v1/resources/:id (partial updates allowed)
type UpdateResourceDTO struct {
	Title             *string   `json:"title,omitempty" binding:"omitempty,max=200"`
	Description       *string   `json:"description,omitempty" binding:"omitempty,max=1000"`
	Category          *string   `json:"category,omitempty" binding:"omitempty,oneof=anxiety depression stress mindfulness therapy self-care relationships general"`
	Type              *string   `json:"type,omitempty" binding:"omitempty,oneof=article video podcast tool app book"`
	URL               *string   `json:"url,omitempty" binding:"omitempty,url"`
	Author            *string   `json:"author,omitempty" binding:"omitempty,max=200"`
	AuthorCredentials *string   `json:"authorCredentials,omitempty"`
	Duration          *string   `json:"duration,omitempty"`
	Difficulty        *string   `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Tags              *[]string `json:"tags,omitempty"`
	Thumbnail         *string   `json:"thumbnail,omitempty" binding:"omitempty,url"`
	Language          *string   `json:"language,omitempty" binding:"omitempty,oneof=en es fr de hi zh ar pt ru ja"`
	TargetAudience    *string   `json:"targetAudience,omitempty" binding:"omitempty,oneof=students professionals parents teens adults all"`
	IsFeatured        *bool     `json:"isFeatured,omitempty"`
}

// ResourceListQuery binds GET /api/v1/resources query parameters.
type ResourceListQuery struct {
	Category       string `form:"category"`
	Type           string `form:"type"`
	Difficulty     string `form:"difficulty"`
	Language       string `form:"language"`
	TargetAudience string `form:"targetAudience"`
	Search         string `form:"search"`
	Page           int    `form:"page"`
	Limit          int    `form:"limit"`
	SortBy         string `form:"sortBy"`
	SortOrder      string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func (q ResourceListQuery) Filter() repository.ResourceFilter {
	return repository.ResourceFilter{
		Category:       q.Category,
		Type:           q.Type,
		Difficulty:     q.Difficulty,
		Language:       q.Language,
		TargetAudience: q.TargetAudience,
		Search:         q.Search,
	}
}

func (q ResourceListQuery) Window() repository.Page {
	return repository.Page{Page: q.Page, Limit: q.Limit}
}

// Sort defaults to descending unless sortOrder=asc.
func (q ResourceListQuery) Sort() repository.Sort {
	return repository.Sort{Field: q.SortBy, Desc: q.SortOrder != "asc"}
}

// Converters
func (d CreateResourceDTO) ToModel() models.Resource {
	return models.Resource{
		Title:             d.Title,
		Description:       d.Description,
		Category:          d.Category,
		Type:              d.Type,
		URL:               d.URL,
		Author:            d.Author,
		AuthorCredentials: d.AuthorCredentials,
		Duration:          d.Duration,
		Difficulty:        d.Difficulty,
		Tags:              d.Tags,
		Thumbnail:         d.Thumbnail,
		Language:          d.Language,
		TargetAudience:    d.TargetAudience,
		IsFeatured:        d.IsFeatured,
	}
}

func (d UpdateResourceDTO) ApplyTo(r *models.Resource) {
	if d.Title != nil {
		r.Title = *d.Title
	}
	if d.Description != nil {
		r.Description = *d.Description
	}
	if d.Category != nil {
		r.Category = *d.Category
	}
	if d.Type != nil {
		r.Type = *d.Type
	}
	if d.URL != nil {
		r.URL = *d.URL
	}
	if d.Author != nil {
		r.Author = *d.Author
	}
	if d.AuthorCredentials != nil {
		r.AuthorCredentials = d.AuthorCredentials
	}
	if d.Duration != nil {
		r.Duration = d.Duration
	}
	if d.Difficulty != nil {
		r.Difficulty = *d.Difficulty
	}
	if d.Tags != nil {
		r.Tags = *d.Tags
	}
	if d.Thumbnail != nil {
		r.Thumbnail = d.Thumbnail
	}
	if d.Language != nil {
		r.Language = *d.Language
	}
	if d.TargetAudience != nil {
		r.TargetAudience = *d.TargetAudience
	}
	if d.IsFeatured != nil {
		r.IsFeatured = *d.IsFeatured
	}
}
