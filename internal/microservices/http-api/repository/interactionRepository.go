package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindwell/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// lockActiveResource takes a row lock on the resource for the rest of tx.
// Every toggle against the same resource queues behind it, so the ledger
// delete/insert and the counter change are observed as one step.
func lockActiveResource(tx *gorm.DB, resourceID string) error {
	var m models.Resource
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND is_active = ?", resourceID, true).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrResourceNotFound
	}
	return err
}

func (r *interactionRepository) Toggle(ctx context.Context, userID, resourceID, interactionType string) (bool, error) {
	column, ok := models.CounterColumn(interactionType)
	if !ok {
		return false, fmt.Errorf("toggle interaction: no counter for type %q", interactionType)
	}
	if !validUUID(resourceID) {
		return false, ErrResourceNotFound
	}

	var interacted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockActiveResource(tx, resourceID); err != nil {
			return err
		}

		now := time.Now().UTC()
		del := tx.Where("user_id = ? AND resource_id = ? AND interaction_type = ?", userID, resourceID, interactionType).
			Delete(&models.UserInteraction{})
		if del.Error != nil {
			return del.Error
		}

		if del.RowsAffected > 0 {
			interacted = false
			return tx.Model(&models.Resource{}).
				Where("id = ?", resourceID).
				Updates(map[string]any{
					column:       gorm.Expr("GREATEST(" + column + " - 1, 0)"),
					"updated_at": now,
				}).Error
		}

		row := &models.UserInteraction{
			UserID:          userID,
			ResourceID:      resourceID,
			InteractionType: interactionType,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		interacted = true
		return tx.Model(&models.Resource{}).
			Where("id = ?", resourceID).
			Updates(map[string]any{
				column:       gorm.Expr(column + " + 1"),
				"updated_at": now,
			}).Error
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, err
		}
		return false, translatePgError("toggle interaction", err)
	}
	return interacted, nil
}

func (r *interactionRepository) RecordView(ctx context.Context, userID, resourceID string) (bool, error) {
	if !validUUID(resourceID) {
		return false, ErrResourceNotFound
	}

	var recorded bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Resource{}).Where("id = ? AND is_active = ?", resourceID, true).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrResourceNotFound
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserInteraction{
			UserID:          userID,
			ResourceID:      resourceID,
			InteractionType: models.InteractionView,
		})
		if res.Error != nil {
			return res.Error
		}
		recorded = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, err
		}
		return false, translatePgError("record view", err)
	}
	return recorded, nil
}

// ListByUser returns the caller's ledger newest first with each resource attached.
func (r *interactionRepository) ListByUser(ctx context.Context, userID, interactionType string) ([]models.UserInteraction, error) {
	var list []models.UserInteraction
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if interactionType != "" {
		q = q.Where("interaction_type = ?", interactionType)
	}
	err := q.Preload("Resource").
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	return list, nil
}
