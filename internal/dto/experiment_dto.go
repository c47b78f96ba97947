package dto

// ExperimentArm is one variant of an application experiment, e.g. a resume
// or cover letter version.
type ExperimentArm struct {
	Label     string `json:"label" validate:"omitempty,max=120"`
	Trials    int    `json:"trials" validate:"gte=0"`
	Successes int    `json:"successes" validate:"gte=0,ltefield=Trials"`
}

// SignificanceRequest compares a variant against control.
type SignificanceRequest struct {
	Control ExperimentArm `json:"control"`
	Variant ExperimentArm `json:"variant"`
}

// SignificanceResponse reports whether the variant differs from control.
type SignificanceResponse struct {
	ControlLabel string  `json:"control_label"`
	VariantLabel string  `json:"variant_label"`
	ControlRate  float64 `json:"control_rate"`
	VariantRate  float64 `json:"variant_rate"`
	Lift         float64 `json:"lift"`
	ZScore       float64 `json:"z_score"`
	Confidence   float64 `json:"confidence"`
	Significant  bool    `json:"significant"`
	Winner       string  `json:"winner"`
}
