package scoring

import "math"

// Saturation caps for the linear normalizers.
const (
	MockSessionCap   = 3
	QuestionCap      = 10
	PracticeHoursCap = 5.0
	ResearchPoints   = 25
)

// Role match weights.
const (
	matchOverallWeight    = 0.5
	matchSkillsWeight     = 0.3
	matchExperienceWeight = 0.2
)

// TaskCompletionScore is the percentage of checklist tasks completed.
func TaskCompletionScore(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	return saturate(float64(completed), float64(total))
}

// MockInterviewScore saturates at MockSessionCap sessions.
func MockInterviewScore(sessions int) int {
	return saturate(float64(sessions), MockSessionCap)
}

// QuestionPracticeScore saturates at QuestionCap distinct questions.
func QuestionPracticeScore(questions int) int {
	return saturate(float64(questions), QuestionCap)
}

// PracticeHoursScore saturates at PracticeHoursCap hours of mock practice.
func PracticeHoursScore(minutes int) int {
	return saturate(float64(minutes)/60, PracticeHoursCap)
}

// CompanyResearchScore awards ResearchPoints per artifact present.
func CompanyResearchScore(artifacts int) int {
	return Clamp(artifacts * ResearchPoints)
}

// RoleMatchScore blends the match analysis fields. A missing analysis scores 0.
func RoleMatchScore(match *MatchScores) int {
	if match == nil {
		return 0
	}
	raw := matchOverallWeight*finite(match.Overall) +
		matchSkillsWeight*finite(match.Skills) +
		matchExperienceWeight*finite(match.Experience)
	return roundClamp(raw)
}

// Clamp bounds a score to [0,100].
func Clamp(score int) int {
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}

func saturate(value, limit float64) int {
	if limit <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	return roundClamp(100 * value / limit)
}

func roundClamp(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	if value >= 100 {
		return 100
	}
	if value <= 0 {
		return 0
	}
	return Clamp(int(math.Round(value)))
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
