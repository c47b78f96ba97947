package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/dto"
	"github.com/noah-isme/career-prep-api/internal/models"
	"github.com/noah-isme/career-prep-api/internal/observability"
	"github.com/noah-isme/career-prep-api/internal/repository"
	"github.com/noah-isme/career-prep-api/pkg/ai"
	"github.com/noah-isme/career-prep-api/pkg/scoring"
)

// InterviewPredictionService generates and reads interview success predictions.
type InterviewPredictionService interface {
	Predict(ctx context.Context, userID uint, payload dto.PredictionRequest) (dto.PredictionResponse, error)
	Latest(ctx context.Context, userID uint, interviewID uint) (dto.PredictionResponse, error)
	List(ctx context.Context, userID uint, interviewID uint, limit int) ([]dto.PredictionResponse, error)
}

// ErrPredictionNotFound indicates no prediction exists for the interview.
var ErrPredictionNotFound = errors.New("prediction not found")

// ErrJobMismatch indicates the job does not belong to the interview.
var ErrJobMismatch = errors.New("job does not match interview")

// ErrNarratorUnavailable indicates no reasoning service is configured.
var ErrNarratorUnavailable = errors.New("narrator unavailable")

// ErrPredictionFailed indicates the reasoning service failed or replied with
// malformed content. Nothing is persisted in that case.
var ErrPredictionFailed = errors.New("could not generate prediction")

// ErrPredictionTimeout indicates the reasoning service did not answer in time.
var ErrPredictionTimeout = errors.New("prediction timed out")

// EventPublisher publishes domain events. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// PredictionConfig tunes the prediction pipeline.
type PredictionConfig struct {
	NarrativeTimeout time.Duration
	CacheTTL         time.Duration
	EventSubject     string
	Provider         string
}

// PredictionCreatedEvent is published after a prediction is stored.
type PredictionCreatedEvent struct {
	PredictionID       uint      `json:"prediction_id"`
	InterviewID        uint      `json:"interview_id"`
	JobID              uint      `json:"job_id"`
	UserID             uint      `json:"user_id"`
	OverallProbability int       `json:"overall_probability"`
	ConfidenceLevel    string    `json:"confidence_level"`
	PredictedOutcome   string    `json:"predicted_outcome"`
	CreatedAt          time.Time `json:"created_at"`
}

type interviewPredictionService struct {
	loader      preparationLoader
	predictions repository.PredictionRepository
	narrator    ai.Narrator
	cache       *redis.Client
	events      EventPublisher
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	tracer      trace.Tracer
	logger      zerolog.Logger
	config      PredictionConfig
	now         func() time.Time
}

// NewInterviewPredictionService constructs the prediction service. cache and
// events are optional.
func NewInterviewPredictionService(interviews repository.InterviewRepository, prep repository.PreparationRepository, predictions repository.PredictionRepository, narrator ai.Narrator, cache *redis.Client, events EventPublisher, validate *validator.Validate, logger zerolog.Logger, cfg PredictionConfig) InterviewPredictionService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	return &interviewPredictionService{
		loader:      preparationLoader{interviews: interviews, preparation: prep},
		predictions: predictions,
		narrator:    narrator,
		cache:       cache,
		events:      events,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		tracer:      otel.Tracer("github.com/noah-isme/career-prep-api/internal/service/prediction"),
		logger:      logger.With().Str("component", "interview_prediction_service").Logger(),
		config:      cfg,
		now:         time.Now,
	}
}

func (s *interviewPredictionService) Predict(ctx context.Context, userID uint, payload dto.PredictionRequest) (dto.PredictionResponse, error) {
	if userID == 0 {
		return dto.PredictionResponse{}, ErrUnauthenticated
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.PredictionResponse{}, err
	}
	if s.narrator == nil {
		return dto.PredictionResponse{}, ErrNarratorUnavailable
	}

	ctx, span := s.tracer.Start(ctx, "predictions.generate", trace.WithAttributes(
		attribute.Int64("prediction.interview_id", int64(payload.InterviewID)),
		attribute.Int64("prediction.job_id", int64(payload.JobID)),
	))
	defer span.End()

	start := s.now()
	response, err := s.predict(ctx, userID, payload)
	observability.PredictionDuration().Observe(s.now().Sub(start).Seconds())
	if err != nil {
		observability.Predictions().WithLabelValues(resultLabel(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.PredictionResponse{}, err
	}

	observability.Predictions().WithLabelValues("success").Inc()
	observability.PredictionScore().Observe(float64(response.OverallProbability))
	observability.PredictionConfidence().WithLabelValues(response.ConfidenceLevel).Inc()
	span.SetAttributes(
		attribute.Int("prediction.overall_probability", response.OverallProbability),
		attribute.String("prediction.confidence", response.ConfidenceLevel),
	)

	return response, nil
}

func (s *interviewPredictionService) predict(ctx context.Context, userID uint, payload dto.PredictionRequest) (dto.PredictionResponse, error) {
	prep, err := s.loader.load(ctx, userID, payload.InterviewID)
	if err != nil {
		return dto.PredictionResponse{}, err
	}
	if prep.interview.JobID != payload.JobID {
		return dto.PredictionResponse{}, ErrJobMismatch
	}

	features := scoring.ExtractFeatures(prep.inputs())
	result := scoring.Score(features)

	narrative, err := s.narrate(ctx, prep, result)
	if err != nil {
		return dto.PredictionResponse{}, err
	}

	prediction := models.InterviewPrediction{
		InterviewID:                prep.interview.ID,
		JobID:                      prep.interview.JobID,
		UserID:                     userID,
		OverallProbability:         result.OverallProbability,
		ConfidenceLevel:            string(result.Confidence),
		PreparationScore:           result.Preparation,
		RoleMatchScore:             result.SubScores.RoleMatch,
		CompanyResearchScore:       result.SubScores.CompanyResearch,
		PracticeHoursScore:         result.SubScores.PracticeHours,
		TaskCompletionScore:        result.SubScores.TaskCompletion,
		MockInterviewScore:         result.SubScores.MockInterview,
		QuestionPracticeScore:      result.SubScores.QuestionPractice,
		HistoricalSuccessRate:      roundRate(result.History.Rate),
		PerformanceTrend:           string(result.History.TrendLabel),
		ImprovementRecommendations: s.sanitizeAll(narrative.ImprovementRecommendations),
		PrioritizedActions:         s.sanitizeAll(narrative.PrioritizedActions),
		StrengthAreas:              s.sanitizeAll(narrative.StrengthAreas),
		WeaknessAreas:              s.sanitizeAll(narrative.WeaknessAreas),
		PredictedOutcome:           narrative.PredictedOutcome,
		Features:                   featureSnapshot(features, result),
		Raw:                        narrative.Raw,
		Provider:                   s.providerName(),
	}

	if err := s.predictions.Create(ctx, &prediction); err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("store prediction: %w", err)
	}

	response := dto.NewPredictionResponse(prediction)
	s.storeCache(ctx, userID, response)
	s.publishCreated(prediction)

	s.logger.Info().
		Uint("prediction_id", prediction.ID).
		Uint("interview_id", prediction.InterviewID).
		Int("overall_probability", prediction.OverallProbability).
		Str("confidence", prediction.ConfidenceLevel).
		Msg("prediction stored")

	return response, nil
}

func (s *interviewPredictionService) narrate(ctx context.Context, prep preparation, result scoring.Result) (ai.Narrative, error) {
	narrateCtx := ctx
	if s.config.NarrativeTimeout > 0 {
		var cancel context.CancelFunc
		narrateCtx, cancel = context.WithTimeout(ctx, s.config.NarrativeTimeout)
		defer cancel()
	}

	narrative, err := s.narrator.Narrate(narrateCtx, ai.NarrativeInput{
		JobTitle:              prep.interview.Job.Title,
		Company:               prep.interview.Job.Company,
		InterviewType:         prep.interview.Type,
		OverallProbability:    result.OverallProbability,
		ConfidenceLevel:       string(result.Confidence),
		PreparationScore:      result.Preparation,
		RoleMatchScore:        result.SubScores.RoleMatch,
		CompanyResearchScore:  result.SubScores.CompanyResearch,
		PracticeHoursScore:    result.SubScores.PracticeHours,
		TaskCompletionScore:   result.SubScores.TaskCompletion,
		MockInterviewScore:    result.SubScores.MockInterview,
		QuestionPracticeScore: result.SubScores.QuestionPractice,
		HistoricalSuccessRate: roundRate(result.History.Rate),
		PerformanceTrend:      string(result.History.TrendLabel),
		PendingTasks:          prep.interview.PendingTasks(),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(narrateCtx.Err(), context.DeadlineExceeded) {
			return ai.Narrative{}, fmt.Errorf("%w: %v", ErrPredictionTimeout, err)
		}
		return ai.Narrative{}, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	return narrative, nil
}

func (s *interviewPredictionService) Latest(ctx context.Context, userID uint, interviewID uint) (dto.PredictionResponse, error) {
	if userID == 0 {
		return dto.PredictionResponse{}, ErrUnauthenticated
	}

	cacheKey := predictionCacheKey(userID, interviewID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.PredictionResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("interview_id", interviewID).Msg("prediction cache hit")
				return response, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read prediction cache")
		}
	}

	prediction, err := s.predictions.Latest(ctx, interviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PredictionResponse{}, ErrPredictionNotFound
		}
		return dto.PredictionResponse{}, err
	}

	response := dto.NewPredictionResponse(prediction)
	s.storeCache(ctx, userID, response)
	return response, nil
}

func (s *interviewPredictionService) List(ctx context.Context, userID uint, interviewID uint, limit int) ([]dto.PredictionResponse, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	predictions, err := s.predictions.ListByInterview(ctx, interviewID, userID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewPredictionResponseSlice(predictions), nil
}

func (s *interviewPredictionService) storeCache(ctx context.Context, userID uint, response dto.PredictionResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, predictionCacheKey(userID, response.InterviewID), payload, s.config.CacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to store prediction cache")
	}
}

func (s *interviewPredictionService) publishCreated(prediction models.InterviewPrediction) {
	if s.events == nil || s.config.EventSubject == "" {
		return
	}

	payload, err := json.Marshal(PredictionCreatedEvent{
		PredictionID:       prediction.ID,
		InterviewID:        prediction.InterviewID,
		JobID:              prediction.JobID,
		UserID:             prediction.UserID,
		OverallProbability: prediction.OverallProbability,
		ConfidenceLevel:    prediction.ConfidenceLevel,
		PredictedOutcome:   prediction.PredictedOutcome,
		CreatedAt:          prediction.CreatedAt,
	})
	if err != nil {
		return
	}

	if err := s.events.Publish(s.config.EventSubject, payload); err != nil {
		observability.PredictionEvents().WithLabelValues("error").Inc()
		s.logger.Warn().Err(err).Uint("prediction_id", prediction.ID).Msg("failed to publish prediction event")
		return
	}
	observability.PredictionEvents().WithLabelValues("published").Inc()
}

func (s *interviewPredictionService) sanitizeAll(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if clean := strings.TrimSpace(s.sanitizer.Sanitize(value)); clean != "" {
			cleaned = append(cleaned, clean)
		}
	}
	return cleaned
}

func (s *interviewPredictionService) providerName() string {
	if s.config.Provider != "" {
		return s.config.Provider
	}
	switch s.narrator.(type) {
	case *ai.OpenAINarrator:
		return "openai"
	default:
		return "unknown"
	}
}

func predictionCacheKey(userID uint, interviewID uint) string {
	return fmt.Sprintf("prediction:user:%d:interview:%d:latest", userID, interviewID)
}

func resultLabel(err error) string {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, ErrPredictionTimeout):
		return "timeout"
	case errors.Is(err, ErrPredictionFailed):
		return "narrative_failed"
	case errors.Is(err, ErrInterviewNotFound), errors.Is(err, ErrJobMismatch), errors.As(err, &validationErrors):
		return "rejected"
	default:
		return "error"
	}
}
