package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/career-prep-api/internal/dto"
)

func TestExperimentSignificanceWinner(t *testing.T) {
	svc := NewExperimentService(validator.New(), zerolog.Nop())

	resp, err := svc.Significance(context.Background(), dto.SignificanceRequest{
		Control: dto.ExperimentArm{Label: "resume-v1", Trials: 200, Successes: 20},
		Variant: dto.ExperimentArm{Label: "resume-v2", Trials: 200, Successes: 45},
	})
	require.NoError(t, err)
	require.True(t, resp.Significant)
	require.Equal(t, "resume-v2", resp.Winner)
	require.Greater(t, resp.Confidence, 95.0)
	require.InDelta(t, 10.0, resp.ControlRate, 0.0001)
	require.InDelta(t, 22.5, resp.VariantRate, 0.0001)
	require.InDelta(t, 125.0, resp.Lift, 0.0001)
}

func TestExperimentSignificanceDefaultsLabels(t *testing.T) {
	svc := NewExperimentService(validator.New(), zerolog.Nop())

	resp, err := svc.Significance(context.Background(), dto.SignificanceRequest{
		Control: dto.ExperimentArm{Trials: 50, Successes: 10},
		Variant: dto.ExperimentArm{Trials: 50, Successes: 11},
	})
	require.NoError(t, err)
	require.Equal(t, "control", resp.ControlLabel)
	require.Equal(t, "variant", resp.VariantLabel)
	require.False(t, resp.Significant)
	require.Empty(t, resp.Winner)
}

func TestExperimentSignificanceInvalidAndDegenerateCounts(t *testing.T) {
	svc := NewExperimentService(validator.New(), zerolog.Nop())

	_, err := svc.Significance(context.Background(), dto.SignificanceRequest{
		Control: dto.ExperimentArm{Trials: 10, Successes: 12},
		Variant: dto.ExperimentArm{Trials: 10, Successes: 1},
	})
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))

	resp, err := svc.Significance(context.Background(), dto.SignificanceRequest{
		Control: dto.ExperimentArm{Trials: 0, Successes: 0},
		Variant: dto.ExperimentArm{Trials: 10, Successes: 1},
	})
	require.NoError(t, err)
	require.False(t, resp.Significant)
	require.Zero(t, resp.ZScore)
}
