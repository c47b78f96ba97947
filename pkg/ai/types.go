package ai

import (
	"context"
	"errors"
)

// Predicted outcome labels the narrator may return.
const (
	OutcomeLikely    = "likely"
	OutcomePossible  = "possible"
	OutcomeUncertain = "uncertain"
)

// ErrNarrativeUnavailable indicates the reasoning service could not be reached
// or returned no usable content.
var ErrNarrativeUnavailable = errors.New("narrative service unavailable")

// ErrInvalidNarrative indicates the reasoning service replied with content that
// does not match the narrative schema.
var ErrInvalidNarrative = errors.New("invalid narrative response")

// NarrativeInput carries the computed scores that must be echoed verbatim.
type NarrativeInput struct {
	JobTitle              string
	Company               string
	InterviewType         string
	OverallProbability    int
	ConfidenceLevel       string
	PreparationScore      int
	RoleMatchScore        int
	CompanyResearchScore  int
	PracticeHoursScore    int
	TaskCompletionScore   int
	MockInterviewScore    int
	QuestionPracticeScore int
	HistoricalSuccessRate float64
	PerformanceTrend      string
	PendingTasks          []string
}

// Narrative is the qualitative guidance authored by the reasoning service.
type Narrative struct {
	ImprovementRecommendations []string               `json:"improvement_recommendations"`
	PrioritizedActions         []string               `json:"prioritized_actions"`
	StrengthAreas              []string               `json:"strength_areas"`
	WeaknessAreas              []string               `json:"weakness_areas"`
	PredictedOutcome           string                 `json:"predicted_outcome"`
	Raw                        map[string]interface{} `json:"-"`
}

// Narrator generates recommendations around a finished score computation.
type Narrator interface {
	Narrate(ctx context.Context, input NarrativeInput) (Narrative, error)
}
