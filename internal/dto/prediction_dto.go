package dto

import (
	"time"

	"github.com/noah-isme/career-prep-api/internal/models"
)

// PredictionRequest asks for a new prediction of an interview.
type PredictionRequest struct {
	InterviewID uint `json:"interview_id" validate:"required,gt=0"`
	JobID       uint `json:"job_id" validate:"required,gt=0"`
}

// PredictionResponse describes a stored interview prediction.
type PredictionResponse struct {
	ID                         uint      `json:"id"`
	InterviewID                uint      `json:"interview_id"`
	JobID                      uint      `json:"job_id"`
	OverallProbability         int       `json:"overall_probability"`
	ConfidenceLevel            string    `json:"confidence_level"`
	PreparationScore           int       `json:"preparation_score"`
	RoleMatchScore             int       `json:"role_match_score"`
	CompanyResearchScore       int       `json:"company_research_score"`
	PracticeHoursScore         int       `json:"practice_hours_score"`
	HistoricalSuccessRate      float64   `json:"historical_success_rate"`
	PerformanceTrend           string    `json:"performance_trend"`
	ImprovementRecommendations []string  `json:"improvement_recommendations"`
	PrioritizedActions         []string  `json:"prioritized_actions"`
	StrengthAreas              []string  `json:"strength_areas"`
	WeaknessAreas              []string  `json:"weakness_areas"`
	PredictedOutcome           string    `json:"predicted_outcome"`
	Provider                   string    `json:"provider,omitempty"`
	CreatedAt                  time.Time `json:"created_at"`
}

// NewPredictionResponse converts a prediction model into a DTO.
func NewPredictionResponse(prediction models.InterviewPrediction) PredictionResponse {
	return PredictionResponse{
		ID:                         prediction.ID,
		InterviewID:                prediction.InterviewID,
		JobID:                      prediction.JobID,
		OverallProbability:         prediction.OverallProbability,
		ConfidenceLevel:            prediction.ConfidenceLevel,
		PreparationScore:           prediction.PreparationScore,
		RoleMatchScore:             prediction.RoleMatchScore,
		CompanyResearchScore:       prediction.CompanyResearchScore,
		PracticeHoursScore:         prediction.PracticeHoursScore,
		HistoricalSuccessRate:      prediction.HistoricalSuccessRate,
		PerformanceTrend:           prediction.PerformanceTrend,
		ImprovementRecommendations: nonNil(prediction.ImprovementRecommendations),
		PrioritizedActions:         nonNil(prediction.PrioritizedActions),
		StrengthAreas:              nonNil(prediction.StrengthAreas),
		WeaknessAreas:              nonNil(prediction.WeaknessAreas),
		PredictedOutcome:           prediction.PredictedOutcome,
		Provider:                   prediction.Provider,
		CreatedAt:                  prediction.CreatedAt,
	}
}

// NewPredictionResponseSlice converts a list of predictions.
func NewPredictionResponseSlice(predictions []models.InterviewPrediction) []PredictionResponse {
	responses := make([]PredictionResponse, 0, len(predictions))
	for _, prediction := range predictions {
		responses = append(responses, NewPredictionResponse(prediction))
	}
	return responses
}

// ReadinessResponse previews the scores of an interview without persisting.
type ReadinessResponse struct {
	InterviewID           uint     `json:"interview_id"`
	JobID                 uint     `json:"job_id"`
	OverallProbability    int      `json:"overall_probability"`
	ConfidenceLevel       string   `json:"confidence_level"`
	PreparationScore      int      `json:"preparation_score"`
	BaseProbability       int      `json:"base_probability"`
	TaskCompletionScore   int      `json:"task_completion_score"`
	MockInterviewScore    int      `json:"mock_interview_score"`
	QuestionPracticeScore int      `json:"question_practice_score"`
	PracticeHoursScore    int      `json:"practice_hours_score"`
	CompanyResearchScore  int      `json:"company_research_score"`
	RoleMatchScore        int      `json:"role_match_score"`
	HistoricalSuccessRate float64  `json:"historical_success_rate"`
	RecentSuccessRate     float64  `json:"recent_success_rate"`
	PerformanceTrend      string   `json:"performance_trend"`
	PresentSources        int      `json:"present_sources"`
	PendingTasks          []string `json:"pending_tasks"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
