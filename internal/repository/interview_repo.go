package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/models"
)

// InterviewRepository exposes read helpers for interviews and their outcomes.
type InterviewRepository interface {
	GetForUser(ctx context.Context, id uint, userID uint) (models.Interview, error)
	ListOutcomes(ctx context.Context, userID uint, excludeID uint) ([]string, error)
}

// NewInterviewRepository constructs an interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

type interviewRepository struct {
	db *gorm.DB
}

func (r *interviewRepository) GetForUser(ctx context.Context, id uint, userID uint) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		First(&interview, id).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

// ListOutcomes returns the recorded outcomes of the user's other interviews,
// newest first.
func (r *interviewRepository) ListOutcomes(ctx context.Context, userID uint, excludeID uint) ([]string, error) {
	var outcomes []string
	query := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("user_id = ? AND outcome <> ''", userID)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	err := query.
		Order("scheduled_at DESC").
		Order("id DESC").
		Pluck("outcome", &outcomes).Error
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}
