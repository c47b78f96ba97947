package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/dto"
	"github.com/noah-isme/career-prep-api/internal/repository"
	"github.com/noah-isme/career-prep-api/pkg/scoring"
)

// ReadinessService previews interview scores without narrative or persistence.
type ReadinessService interface {
	Preview(ctx context.Context, userID uint, interviewID uint) (dto.ReadinessResponse, error)
}

type readinessService struct {
	loader preparationLoader
	logger zerolog.Logger
}

// NewReadinessService constructs the readiness preview service.
func NewReadinessService(interviews repository.InterviewRepository, prep repository.PreparationRepository, logger zerolog.Logger) ReadinessService {
	return &readinessService{
		loader: preparationLoader{interviews: interviews, preparation: prep},
		logger: logger.With().Str("component", "readiness_service").Logger(),
	}
}

func (s *readinessService) Preview(ctx context.Context, userID uint, interviewID uint) (dto.ReadinessResponse, error) {
	prep, err := s.loader.load(ctx, userID, interviewID)
	if err != nil {
		return dto.ReadinessResponse{}, err
	}

	result := scoring.Evaluate(prep.inputs())

	s.logger.Debug().
		Uint("interview_id", interviewID).
		Int("overall_probability", result.OverallProbability).
		Str("confidence", string(result.Confidence)).
		Msg("readiness previewed")

	return dto.ReadinessResponse{
		InterviewID:           prep.interview.ID,
		JobID:                 prep.interview.JobID,
		OverallProbability:    result.OverallProbability,
		ConfidenceLevel:       string(result.Confidence),
		PreparationScore:      result.Preparation,
		BaseProbability:       result.Base,
		TaskCompletionScore:   result.SubScores.TaskCompletion,
		MockInterviewScore:    result.SubScores.MockInterview,
		QuestionPracticeScore: result.SubScores.QuestionPractice,
		PracticeHoursScore:    result.SubScores.PracticeHours,
		CompanyResearchScore:  result.SubScores.CompanyResearch,
		RoleMatchScore:        result.SubScores.RoleMatch,
		HistoricalSuccessRate: roundRate(result.History.Rate),
		RecentSuccessRate:     roundRate(result.History.RecentRate),
		PerformanceTrend:      string(result.History.TrendLabel),
		PresentSources:        result.PresentSources,
		PendingTasks:          prep.interview.PendingTasks(),
	}, nil
}

// roundRate keeps two decimals for display and storage.
func roundRate(rate float64) float64 {
	return math.Round(rate*100) / 100
}
