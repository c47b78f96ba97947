package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignificanceDetectsClearWinner(t *testing.T) {
	result, err := Significance(Sample{Trials: 1000, Successes: 100}, Sample{Trials: 1000, Successes: 150})
	require.NoError(t, err)
	require.InDelta(t, 10, result.ControlRate, 0.001)
	require.InDelta(t, 15, result.VariantRate, 0.001)
	require.InDelta(t, 50, result.Lift, 0.001)
	require.InDelta(t, 3.38, result.ZScore, 0.01)
	require.Greater(t, result.Confidence, 99.0)
	require.True(t, result.Significant)
}

func TestSignificanceSmallDifferenceIsNotSignificant(t *testing.T) {
	result, err := Significance(Sample{Trials: 40, Successes: 4}, Sample{Trials: 40, Successes: 5})
	require.NoError(t, err)
	require.Less(t, result.Confidence, SignificanceThreshold)
	require.False(t, result.Significant)
}

func TestSignificanceIsSymmetricInConfidence(t *testing.T) {
	a := Sample{Trials: 200, Successes: 30}
	b := Sample{Trials: 220, Successes: 50}

	forward, err := Significance(a, b)
	require.NoError(t, err)
	backward, err := Significance(b, a)
	require.NoError(t, err)

	require.InDelta(t, forward.Confidence, backward.Confidence, 1e-9)
	require.InDelta(t, forward.ZScore, -backward.ZScore, 1e-9)
}

func TestSignificanceDegenerateSamples(t *testing.T) {
	result, err := Significance(Sample{}, Sample{Trials: 10, Successes: 3})
	require.NoError(t, err)
	require.Zero(t, result.ZScore)
	require.False(t, result.Significant)

	result, err = Significance(Sample{Trials: 10}, Sample{Trials: 10})
	require.NoError(t, err)
	require.Zero(t, result.ZScore)
	require.Zero(t, result.Lift)
	require.False(t, result.Significant)

	result, err = Significance(Sample{Trials: 10, Successes: 10}, Sample{Trials: 5, Successes: 5})
	require.NoError(t, err)
	require.Zero(t, result.Confidence)
}

func TestSignificanceRejectsInvalidSamples(t *testing.T) {
	_, err := Significance(Sample{Trials: 3, Successes: 4}, Sample{Trials: 3})
	require.True(t, errors.Is(err, ErrInvalidSample))

	_, err = Significance(Sample{Trials: 3}, Sample{Trials: -1})
	require.True(t, errors.Is(err, ErrInvalidSample))
}
