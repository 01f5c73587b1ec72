package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InteractionLike     = "like"
	InteractionBookmark = "bookmark"
	InteractionShare    = "share"
	InteractionView     = "view"
)

// ToggleableInteractions are the types that flip on and off and carry a counter.
var ToggleableInteractions = []string{InteractionLike, InteractionBookmark, InteractionShare}

// InteractionTypes lists every ledger type.
var InteractionTypes = []string{InteractionLike, InteractionBookmark, InteractionShare, InteractionView}

// UserInteraction is one ledger row; (user_id, resource_id, interaction_type) is unique.
type UserInteraction struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID          string    `json:"userId" gorm:"not null;uniqueIndex:idx_interaction_unique"`
	ResourceID      string    `json:"resourceId" gorm:"type:uuid;not null;uniqueIndex:idx_interaction_unique"`
	InteractionType string    `json:"interactionType" gorm:"not null;uniqueIndex:idx_interaction_unique"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`

	// Associations
	Resource *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}

func (i *UserInteraction) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return
}

func (UserInteraction) TableName() string {
	return "user_interactions"
}
