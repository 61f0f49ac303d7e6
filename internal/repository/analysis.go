package repository

import (
	"context"

	"trenai/internal/models"

	"gorm.io/gorm"
)

// AnalysisRepository persists profile-analysis results, append-only per user.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.UserAnalysis) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.UserAnalysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository returns a new AnalysisRepository implementation.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *models.UserAnalysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *analysisRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.UserAnalysis, error) {
	if limit <= 0 {
		limit = 50
	}

	var analyses []models.UserAnalysis
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return analyses, nil
}
