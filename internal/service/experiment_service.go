package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/dto"
	"github.com/noah-isme/career-prep-api/pkg/stats"
)

// ErrInvalidExperiment indicates the experiment counts are inconsistent.
var ErrInvalidExperiment = errors.New("invalid experiment counts")

// ExperimentService evaluates A/B experiments on application material.
type ExperimentService interface {
	Significance(ctx context.Context, payload dto.SignificanceRequest) (dto.SignificanceResponse, error)
}

type experimentService struct {
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewExperimentService constructs the experiment service.
func NewExperimentService(validate *validator.Validate, logger zerolog.Logger) ExperimentService {
	return &experimentService{
		validator: validate,
		logger:    logger.With().Str("component", "experiment_service").Logger(),
	}
}

func (s *experimentService) Significance(ctx context.Context, payload dto.SignificanceRequest) (dto.SignificanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SignificanceResponse{}, err
	}

	result, err := stats.Significance(
		stats.Sample{Trials: payload.Control.Trials, Successes: payload.Control.Successes},
		stats.Sample{Trials: payload.Variant.Trials, Successes: payload.Variant.Successes},
	)
	if err != nil {
		if errors.Is(err, stats.ErrInvalidSample) {
			return dto.SignificanceResponse{}, ErrInvalidExperiment
		}
		return dto.SignificanceResponse{}, err
	}

	controlLabel := labelOrDefault(payload.Control.Label, "control")
	variantLabel := labelOrDefault(payload.Variant.Label, "variant")

	winner := ""
	if result.Significant {
		winner = controlLabel
		if result.VariantRate > result.ControlRate {
			winner = variantLabel
		}
	}

	s.logger.Debug().
		Float64("z_score", result.ZScore).
		Bool("significant", result.Significant).
		Msg("experiment evaluated")

	return dto.SignificanceResponse{
		ControlLabel: controlLabel,
		VariantLabel: variantLabel,
		ControlRate:  result.ControlRate,
		VariantRate:  result.VariantRate,
		Lift:         result.Lift,
		ZScore:       result.ZScore,
		Confidence:   result.Confidence,
		Significant:  result.Significant,
		Winner:       winner,
	}, nil
}

func labelOrDefault(label, def string) string {
	if label == "" {
		return def
	}
	return label
}
