package repository

import (
	"context"

	"trenai/internal/models"

	"gorm.io/gorm"
)

// ContentRepository persists generation results. History is append-only.
type ContentRepository interface {
	Create(ctx context.Context, content *models.GeneratedContent) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.GeneratedContent, error)
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository returns a new ContentRepository implementation.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, content *models.GeneratedContent) error {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByUser returns a user's generation history newest-first.
func (r *contentRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.GeneratedContent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	var history []models.GeneratedContent
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return history, nil
}
