package models

import (
	"time"

	"gorm.io/datatypes"
)

// InterviewPrediction is an immutable record of one prediction run. Several
// may exist per interview; the newest one is current.
type InterviewPrediction struct {
	ID                         uint                        `gorm:"primaryKey" json:"id"`
	InterviewID                uint                        `gorm:"not null;index:idx_prediction_interview_created,priority:1" json:"interview_id"`
	JobID                      uint                        `gorm:"not null;index" json:"job_id"`
	UserID                     uint                        `gorm:"not null;index" json:"user_id"`
	OverallProbability         int                         `gorm:"not null" json:"overall_probability"`
	ConfidenceLevel            string                      `gorm:"size:16;not null" json:"confidence_level"`
	PreparationScore           int                         `gorm:"not null" json:"preparation_score"`
	RoleMatchScore             int                         `gorm:"not null" json:"role_match_score"`
	CompanyResearchScore       int                         `gorm:"not null" json:"company_research_score"`
	PracticeHoursScore         int                         `gorm:"not null" json:"practice_hours_score"`
	TaskCompletionScore        int                         `gorm:"not null" json:"task_completion_score"`
	MockInterviewScore         int                         `gorm:"not null" json:"mock_interview_score"`
	QuestionPracticeScore      int                         `gorm:"not null" json:"question_practice_score"`
	HistoricalSuccessRate      float64                     `gorm:"not null" json:"historical_success_rate"`
	PerformanceTrend           string                      `gorm:"size:16;not null" json:"performance_trend"`
	ImprovementRecommendations datatypes.JSONSlice[string] `gorm:"type:json" json:"improvement_recommendations"`
	PrioritizedActions         datatypes.JSONSlice[string] `gorm:"type:json" json:"prioritized_actions"`
	StrengthAreas              datatypes.JSONSlice[string] `gorm:"type:json" json:"strength_areas"`
	WeaknessAreas              datatypes.JSONSlice[string] `gorm:"type:json" json:"weakness_areas"`
	PredictedOutcome           string                      `gorm:"size:16;not null" json:"predicted_outcome"`
	Features                   datatypes.JSONMap           `gorm:"type:json" json:"features"`
	Raw                        datatypes.JSONMap           `gorm:"type:json" json:"raw"`
	Provider                   string                      `gorm:"size:32" json:"provider"`
	CreatedAt                  time.Time                   `gorm:"index:idx_prediction_interview_created,priority:2" json:"created_at"`
}
