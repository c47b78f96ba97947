package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/models"
)

const defaultPredictionListLimit = 20

// PredictionRepository persists interview predictions. Rows are insert-only.
type PredictionRepository interface {
	Create(ctx context.Context, prediction *models.InterviewPrediction) error
	Latest(ctx context.Context, interviewID uint, userID uint) (models.InterviewPrediction, error)
	ListByInterview(ctx context.Context, interviewID uint, userID uint, limit int) ([]models.InterviewPrediction, error)
}

// NewPredictionRepository constructs a prediction repository.
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

type predictionRepository struct {
	db *gorm.DB
}

func (r *predictionRepository) Create(ctx context.Context, prediction *models.InterviewPrediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

func (r *predictionRepository) Latest(ctx context.Context, interviewID uint, userID uint) (models.InterviewPrediction, error) {
	var prediction models.InterviewPrediction
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&prediction).Error
	if err != nil {
		return models.InterviewPrediction{}, err
	}
	return prediction, nil
}

func (r *predictionRepository) ListByInterview(ctx context.Context, interviewID uint, userID uint, limit int) ([]models.InterviewPrediction, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultPredictionListLimit
	}

	var predictions []models.InterviewPrediction
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}
