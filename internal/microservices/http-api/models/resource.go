package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ResourceCategories = []string{"anxiety", "depression", "stress", "mindfulness", "therapy", "self-care", "relationships", "general"}
	ResourceTypes      = []string{"article", "video", "podcast", "tool", "app", "book"}
	Difficulties       = []string{"beginner", "intermediate", "advanced"}
	Languages          = []string{"en", "es", "fr", "de", "hi", "zh", "ar", "pt", "ru", "ja"}
	TargetAudiences    = []string{"students", "professionals", "parents", "teens", "adults", "all"}
)

const (
	DefaultDifficulty     = "beginner"
	DefaultLanguage       = "en"
	DefaultTargetAudience = "all"
)

// RatingSummary is the incremental mean of submitted ratings.
type RatingSummary struct {
	Average float64 `json:"average" gorm:"column:average;type:double precision;not null;default:0"`
	Count   int64   `json:"count" gorm:"column:count;not null;default:0"`
}

// Engagement counters mirror the interaction ledger.
type Engagement struct {
	Likes     int64 `json:"likes" gorm:"column:likes;not null;default:0"`
	Bookmarks int64 `json:"bookmarks" gorm:"column:bookmarks;not null;default:0"`
	Shares    int64 `json:"shares" gorm:"column:shares;not null;default:0"`
}

type Resource struct {
	ID                string         `json:"id" gorm:"primaryKey;type:uuid"`
	Seq               int64          `json:"-" gorm:"column:seq;->"`
	Title             string         `json:"title" gorm:"size:200;not null"`
	Description       string         `json:"description" gorm:"size:1000;not null"`
	Category          string         `json:"category" gorm:"not null;index"`
	Type              string         `json:"type" gorm:"not null;index"`
	URL               string         `json:"url" gorm:"not null"`
	Author            string         `json:"author" gorm:"not null"`
	AuthorCredentials *string        `json:"authorCredentials,omitempty"`
	Duration          *string        `json:"duration,omitempty"`
	Difficulty        string         `json:"difficulty" gorm:"not null;default:'beginner'"`
	Tags              pq.StringArray `json:"tags" gorm:"type:text[];not null;default:'{}'"`
	Thumbnail         *string        `json:"thumbnail,omitempty"`
	Language          string         `json:"language" gorm:"not null;default:'en'"`
	TargetAudience    string         `json:"targetAudience" gorm:"not null;default:'all'"`
	IsActive          bool           `json:"isActive" gorm:"not null;default:true;index"`
	IsFeatured        bool           `json:"isFeatured" gorm:"not null;default:false"`
	Rating            RatingSummary  `json:"rating" gorm:"embedded;embeddedPrefix:rating_"`
	Engagement        Engagement     `json:"engagement" gorm:"embedded"`
	CreatedAt         time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate hook to set UUID before creating a Resource
func (r *Resource) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

func (Resource) TableName() string {
	return "resources"
}

// ApplyDefaults fills enum fields left empty by the caller.
func (r *Resource) ApplyDefaults() {
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.TargetAudience == "" {
		r.TargetAudience = DefaultTargetAudience
	}
	if r.Tags == nil {
		r.Tags = pq.StringArray{}
	}
}

// CounterFor returns a pointer to the engagement counter for an interaction type,
// or nil for types without a counter (view).
func (e *Engagement) CounterFor(interactionType string) *int64 {
	switch interactionType {
	case InteractionLike:
		return &e.Likes
	case InteractionBookmark:
		return &e.Bookmarks
	case InteractionShare:
		return &e.Shares
	}
	return nil
}

// CounterColumn maps a toggleable interaction type to its resources column.
func CounterColumn(interactionType string) (string, bool) {
	switch interactionType {
	case InteractionLike:
		return "likes", true
	case InteractionBookmark:
		return "bookmarks", true
	case InteractionShare:
		return "shares", true
	}
	return "", false
}

// IsOneOf reports whether v is in allowed.
func IsOneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
