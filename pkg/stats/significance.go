// Package stats holds statistical helpers shared by analytics features.
package stats

import (
	"errors"
	"math"
)

// SignificanceThreshold is the confidence, in percent, required to call a
// difference significant.
const SignificanceThreshold = 95.0

// ErrInvalidSample is returned when a sample has negative counts or more
// successes than trials.
var ErrInvalidSample = errors.New("invalid sample")

// Sample is one arm of an A/B experiment.
type Sample struct {
	Trials    int `json:"trials"`
	Successes int `json:"successes"`
}

// Rate returns the success percentage of the sample.
func (s Sample) Rate() float64 {
	if s.Trials <= 0 {
		return 0
	}
	return 100 * float64(s.Successes) / float64(s.Trials)
}

func (s Sample) valid() bool {
	return s.Trials >= 0 && s.Successes >= 0 && s.Successes <= s.Trials
}

// SignificanceResult reports a two-proportion z-test.
type SignificanceResult struct {
	ControlRate float64 `json:"control_rate"`
	VariantRate float64 `json:"variant_rate"`
	// Lift is the relative change of the variant over control, in percent.
	Lift        float64 `json:"lift"`
	ZScore      float64 `json:"z_score"`
	Confidence  float64 `json:"confidence"`
	Significant bool    `json:"significant"`
}

// Significance compares the variant against control with a pooled
// two-proportion z-test. Degenerate samples (no trials, or a pooled rate of
// 0 or 1) produce a zero z-score and are never significant.
func Significance(control, variant Sample) (SignificanceResult, error) {
	if !control.valid() || !variant.valid() {
		return SignificanceResult{}, ErrInvalidSample
	}

	result := SignificanceResult{
		ControlRate: control.Rate(),
		VariantRate: variant.Rate(),
	}
	if result.ControlRate > 0 {
		result.Lift = 100 * (result.VariantRate - result.ControlRate) / result.ControlRate
	}

	if control.Trials == 0 || variant.Trials == 0 {
		return result, nil
	}

	p1 := float64(control.Successes) / float64(control.Trials)
	p2 := float64(variant.Successes) / float64(variant.Trials)
	pooled := float64(control.Successes+variant.Successes) / float64(control.Trials+variant.Trials)
	se := math.Sqrt(pooled * (1 - pooled) * (1/float64(control.Trials) + 1/float64(variant.Trials)))
	if se == 0 || math.IsNaN(se) {
		return result, nil
	}

	result.ZScore = (p2 - p1) / se
	result.Confidence = 100 * (1 - 2*(1-normalCDF(math.Abs(result.ZScore))))
	result.Significant = result.Confidence >= SignificanceThreshold
	return result, nil
}

func normalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}
