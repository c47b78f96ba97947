package scoring

import "math"

// Confidence buckets describe data completeness, not a statistical interval.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Trend labels for recent versus lifetime success.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

const (
	// NeutralPrior is the historical success rate assumed without history.
	NeutralPrior = 50.0
	// RecentWindow is the number of newest outcomes used for the trend.
	RecentWindow = 5
	// TrendThreshold is the rate delta, in points, that labels a trend.
	TrendThreshold = 10.0
	// InsightBonus is added to preparation when an insight record exists.
	InsightBonus = 5
)

const (
	prepTaskWeight      = 0.40
	prepMockWeight      = 0.25
	prepQuestionWeight  = 0.20
	prepHoursWeight     = 0.10
	basePrepWeight      = 0.35
	baseRoleWeight      = 0.30
	baseResearchWeight  = 0.20
	baseHoursWeight     = 0.15
	historicalWeight    = 0.30
	trendWeight         = 0.10
	highConfidenceMin   = 4
	mediumConfidenceMin = 2
)

// SubScores are the normalized 0-100 signals.
type SubScores struct {
	TaskCompletion   int `json:"task_completion"`
	MockInterview    int `json:"mock_interview"`
	QuestionPractice int `json:"question_practice"`
	PracticeHours    int `json:"practice_hours"`
	CompanyResearch  int `json:"company_research"`
	RoleMatch        int `json:"role_match"`
}

// History summarises the user's past terminal interviews.
type History struct {
	Total       int     `json:"total"`
	Successes   int     `json:"successes"`
	Rate        float64 `json:"rate"`
	RecentRate  float64 `json:"recent_rate"`
	Trend       float64 `json:"trend"`
	TrendLabel  Trend   `json:"trend_label"`
	Adjustment  float64 `json:"adjustment"`
	RecentCount int     `json:"recent_count"`
}

// Result is the full output of the engine.
type Result struct {
	SubScores          SubScores  `json:"sub_scores"`
	Preparation        int        `json:"preparation"`
	Base               int        `json:"base"`
	History            History    `json:"history"`
	OverallProbability int        `json:"overall_probability"`
	Confidence         Confidence `json:"confidence"`
	PresentSources     int        `json:"present_sources"`
}

// Evaluate runs extraction, normalization, scoring and classification.
func Evaluate(in Inputs) Result {
	return Score(ExtractFeatures(in))
}

// Score computes every stage from extracted features. Each stage is rounded
// before feeding the next one.
func Score(f Features) Result {
	sub := Normalize(f)
	preparation := PreparationScore(sub, f.HasInsights)
	base := BaseProbability(preparation, sub)
	history := SummarizeHistory(f.History)
	present := PresentSources(f)

	return Result{
		SubScores:          sub,
		Preparation:        preparation,
		Base:               base,
		History:            history,
		OverallProbability: OverallProbability(base, history),
		Confidence:         classify(present),
		PresentSources:     present,
	}
}

// Normalize maps raw features to sub-scores.
func Normalize(f Features) SubScores {
	return SubScores{
		TaskCompletion:   TaskCompletionScore(f.TasksCompleted, f.TasksTotal),
		MockInterview:    MockInterviewScore(f.MockSessions),
		QuestionPractice: QuestionPracticeScore(f.QuestionsPracticed),
		PracticeHours:    PracticeHoursScore(f.MockMinutes),
		CompanyResearch:  CompanyResearchScore(f.ResearchArtifacts),
		RoleMatch:        RoleMatchScore(f.Match),
	}
}

// PreparationScore blends checklist progress, practice volume and insight
// availability. The sum can reach 105 and is clamped.
func PreparationScore(sub SubScores, hasInsights bool) int {
	raw := prepTaskWeight*float64(sub.TaskCompletion) +
		prepMockWeight*float64(sub.MockInterview) +
		prepQuestionWeight*float64(sub.QuestionPractice) +
		prepHoursWeight*float64(sub.PracticeHours)
	if hasInsights {
		raw += InsightBonus
	}
	return roundClamp(raw)
}

// BaseProbability scores this interview before personal history.
func BaseProbability(preparation int, sub SubScores) int {
	raw := basePrepWeight*float64(preparation) +
		baseRoleWeight*float64(sub.RoleMatch) +
		baseResearchWeight*float64(sub.CompanyResearch) +
		baseHoursWeight*float64(sub.PracticeHours)
	return roundClamp(raw)
}

// SummarizeHistory computes lifetime and recent success rates from terminal
// outcomes ordered newest first.
func SummarizeHistory(outcomes []string) History {
	terminal := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		if IsTerminalOutcome(outcome) {
			terminal = append(terminal, outcome)
		}
	}

	if len(terminal) == 0 {
		return History{
			Rate:       NeutralPrior,
			RecentRate: NeutralPrior,
			TrendLabel: TrendStable,
		}
	}

	successes := countSuccesses(terminal)
	rate := 100 * float64(successes) / float64(len(terminal))

	recent := terminal
	if len(recent) > RecentWindow {
		recent = recent[:RecentWindow]
	}
	recentRate := 100 * float64(countSuccesses(recent)) / float64(len(recent))
	trend := recentRate - rate

	return History{
		Total:       len(terminal),
		Successes:   successes,
		Rate:        rate,
		RecentRate:  recentRate,
		Trend:       trend,
		TrendLabel:  trendLabel(trend),
		Adjustment:  historicalWeight*(rate-NeutralPrior) + trendWeight*trend,
		RecentCount: len(recent),
	}
}

// OverallProbability folds the history adjustment into the base score.
func OverallProbability(base int, history History) int {
	raw := float64(base) + historicalWeight*(history.Rate-NeutralPrior) + trendWeight*history.Trend
	if math.IsNaN(raw) {
		return Clamp(base)
	}
	return Clamp(int(math.Round(raw)))
}

// PresentSources counts the optional data sources available.
func PresentSources(f Features) int {
	count := 0
	for _, present := range []bool{
		f.Match != nil,
		f.HasResearch,
		f.MockSessions > 0,
		f.QuestionsPracticed > 0,
		f.TasksTotal > 0,
	} {
		if present {
			count++
		}
	}
	return count
}

// ClassifyConfidence buckets the features by data completeness.
func ClassifyConfidence(f Features) Confidence {
	return classify(PresentSources(f))
}

func classify(present int) Confidence {
	switch {
	case present >= highConfidenceMin:
		return ConfidenceHigh
	case present >= mediumConfidenceMin:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func trendLabel(trend float64) Trend {
	switch {
	case trend > TrendThreshold:
		return TrendImproving
	case trend < -TrendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func countSuccesses(outcomes []string) int {
	count := 0
	for _, outcome := range outcomes {
		if IsSuccessOutcome(outcome) {
			count++
		}
	}
	return count
}
