package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/models"
)

// PreparationRepository loads the optional preparation records of an
// interview. Missing single records are returned as nil without error.
type PreparationRepository interface {
	FindMatchAnalysis(ctx context.Context, jobID uint, userID uint) (*models.JobMatchAnalysis, error)
	FindCompanyResearch(ctx context.Context, jobID uint, userID uint) (*models.CompanyResearch, error)
	FindInsight(ctx context.Context, interviewID uint, userID uint) (*models.InterviewInsight, error)
	ListMockSessions(ctx context.Context, interviewID uint, userID uint) ([]models.MockInterviewSession, error)
	ListQuestionResponses(ctx context.Context, interviewID uint, userID uint) ([]models.QuestionResponse, error)
}

// NewPreparationRepository constructs a preparation repository.
func NewPreparationRepository(db *gorm.DB) PreparationRepository {
	return &preparationRepository{db: db}
}

type preparationRepository struct {
	db *gorm.DB
}

func (r *preparationRepository) FindMatchAnalysis(ctx context.Context, jobID uint, userID uint) (*models.JobMatchAnalysis, error) {
	var analysis models.JobMatchAnalysis
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Order("updated_at DESC").
		First(&analysis).Error
	return optional(&analysis, err)
}

func (r *preparationRepository) FindCompanyResearch(ctx context.Context, jobID uint, userID uint) (*models.CompanyResearch, error) {
	var research models.CompanyResearch
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Order("updated_at DESC").
		First(&research).Error
	return optional(&research, err)
}

func (r *preparationRepository) FindInsight(ctx context.Context, interviewID uint, userID uint) (*models.InterviewInsight, error) {
	var insight models.InterviewInsight
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at DESC").
		First(&insight).Error
	return optional(&insight, err)
}

func (r *preparationRepository) ListMockSessions(ctx context.Context, interviewID uint, userID uint) ([]models.MockInterviewSession, error) {
	var sessions []models.MockInterviewSession
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *preparationRepository) ListQuestionResponses(ctx context.Context, interviewID uint, userID uint) ([]models.QuestionResponse, error) {
	var responses []models.QuestionResponse
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func optional[T any](record *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
