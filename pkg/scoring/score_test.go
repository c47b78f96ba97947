package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func tasks(done, total int) []Task {
	list := make([]Task, total)
	for i := range list {
		list[i] = Task{Label: "task", Completed: i < done}
	}
	return list
}

func questions(n int) []string {
	list := make([]string, n)
	for i := range list {
		list[i] = "question " + string(rune('a'+i))
	}
	return list
}

func TestEvaluateWorkedExample(t *testing.T) {
	result := Evaluate(Inputs{
		Tasks:              tasks(8, 10),
		MockSessionMinutes: []int{90, 90},
		Questions:          questions(12),
		Research: &Research{
			CompanyProfile: "profile",
			RecentNews:     "news",
			Leadership:     "leaders",
			TalkingPoints:  "points",
		},
		Match:       &MatchScores{Overall: 80, Skills: 70, Experience: 60},
		HasInsights: true,
		History:     []string{OutcomeRejected, OutcomeOffer, OutcomeRejected},
	})

	require.Equal(t, 80, result.SubScores.TaskCompletion)
	require.Equal(t, 67, result.SubScores.MockInterview)
	require.Equal(t, 100, result.SubScores.QuestionPractice)
	require.Equal(t, 60, result.SubScores.PracticeHours)
	require.Equal(t, 100, result.SubScores.CompanyResearch)
	require.Equal(t, 73, result.SubScores.RoleMatch)
	require.Equal(t, 80, result.Preparation)
	require.Equal(t, 79, result.Base)
	require.InDelta(t, 33.33, result.History.Rate, 0.01)
	require.InDelta(t, 0, result.History.Trend, 0.0001)
	require.Equal(t, TrendStable, result.History.TrendLabel)
	require.Equal(t, 74, result.OverallProbability)
	require.Equal(t, ConfidenceHigh, result.Confidence)
	require.Equal(t, 5, result.PresentSources)
}

func TestPreparationClampsAtHundred(t *testing.T) {
	sub := SubScores{TaskCompletion: 100, MockInterview: 100, QuestionPractice: 100, PracticeHours: 100}
	require.Equal(t, 100, PreparationScore(sub, true))
	require.Equal(t, 95, PreparationScore(sub, false))
}

func TestOverallProbabilityClamps(t *testing.T) {
	perfect := SummarizeHistory([]string{OutcomeOffer, OutcomeOffer, OutcomeHired})
	require.Equal(t, 100, OverallProbability(100, perfect))

	hopeless := SummarizeHistory([]string{OutcomeRejected, OutcomeRejected, OutcomeGhosted})
	require.Equal(t, 0, OverallProbability(0, hopeless))
	require.Equal(t, 0, OverallProbability(10, hopeless))
}

func TestEvaluateSaturatedInputsNeverExceedRange(t *testing.T) {
	result := Evaluate(Inputs{
		Tasks:              tasks(4, 4),
		MockSessionMinutes: []int{600, 600, 600, 600},
		Questions:          questions(20),
		Research:           &Research{CompanyProfile: "a", RecentNews: "b", Leadership: "c", TalkingPoints: "d"},
		Match:              &MatchScores{Overall: 100, Skills: 100, Experience: 100},
		HasInsights:        true,
		History:            []string{OutcomeOffer, OutcomeAccepted},
	})

	require.Equal(t, 100, result.Preparation)
	require.Equal(t, 100, result.Base)
	require.Equal(t, 100, result.OverallProbability)
}

func TestZeroDenominatorsYieldZero(t *testing.T) {
	result := Evaluate(Inputs{})

	require.Equal(t, 0, result.SubScores.TaskCompletion)
	require.Equal(t, 0, result.SubScores.MockInterview)
	require.Equal(t, 0, result.SubScores.QuestionPractice)
	require.Equal(t, 0, result.SubScores.PracticeHours)
	require.Equal(t, 0, result.SubScores.RoleMatch)
	require.Equal(t, 0, result.Preparation)
	require.Equal(t, 0, result.OverallProbability)
	require.Equal(t, ConfidenceLow, result.Confidence)
}

func TestMockInterviewSaturation(t *testing.T) {
	cases := map[int]int{0: 0, 1: 33, 2: 67, 3: 100, 4: 100, 25: 100, -1: 0}
	for sessions, want := range cases {
		require.Equal(t, want, MockInterviewScore(sessions), "sessions=%d", sessions)
	}
}

func TestQuestionAndHoursSaturation(t *testing.T) {
	require.Equal(t, 50, QuestionPracticeScore(5))
	require.Equal(t, 100, QuestionPracticeScore(10))
	require.Equal(t, 100, QuestionPracticeScore(11))

	require.Equal(t, 20, PracticeHoursScore(60))
	require.Equal(t, 100, PracticeHoursScore(300))
	require.Equal(t, 100, PracticeHoursScore(1000))
	require.Equal(t, 0, PracticeHoursScore(0))
}

func TestNeutralPriorForFirstTimeUser(t *testing.T) {
	history := SummarizeHistory(nil)
	require.Equal(t, NeutralPrior, history.Rate)
	require.Zero(t, history.Trend)
	require.Zero(t, history.Adjustment)
	require.Equal(t, TrendStable, history.TrendLabel)

	for _, base := range []int{0, 37, 63, 100} {
		require.Equal(t, base, OverallProbability(base, history))
	}
}

func TestHistoryIgnoresNonTerminalOutcomes(t *testing.T) {
	history := SummarizeHistory([]string{"", "scheduled", "Offer ", "pending", OutcomeRejected})
	require.Equal(t, 2, history.Total)
	require.Equal(t, 1, history.Successes)
	require.InDelta(t, 50, history.Rate, 0.0001)
}

func TestHistoryTrendUsesRecentWindow(t *testing.T) {
	// newest first: five recent offers, five older rejections
	outcomes := []string{
		OutcomeOffer, OutcomeOffer, OutcomeOffer, OutcomeOffer, OutcomeOffer,
		OutcomeRejected, OutcomeRejected, OutcomeRejected, OutcomeRejected, OutcomeRejected,
	}
	history := SummarizeHistory(outcomes)
	require.InDelta(t, 50, history.Rate, 0.0001)
	require.InDelta(t, 100, history.RecentRate, 0.0001)
	require.InDelta(t, 50, history.Trend, 0.0001)
	require.Equal(t, 5, history.RecentCount)
	require.Equal(t, TrendImproving, history.TrendLabel)
	require.Equal(t, 65, OverallProbability(60, history))

	declining := SummarizeHistory([]string{
		OutcomeRejected, OutcomeRejected, OutcomeRejected, OutcomeRejected, OutcomeRejected,
		OutcomeOffer, OutcomeOffer, OutcomeOffer, OutcomeOffer, OutcomeOffer,
	})
	require.Equal(t, TrendDeclining, declining.TrendLabel)
	require.InDelta(t, -50, declining.Trend, 0.0001)
}

func TestCompanyResearchExactness(t *testing.T) {
	features := ExtractFeatures(Inputs{Research: &Research{CompanyProfile: "acme", TalkingPoints: "growth", RecentNews: "   "}})
	require.Equal(t, 2, features.ResearchArtifacts)
	require.Equal(t, 50, CompanyResearchScore(features.ResearchArtifacts))

	for artifacts, want := range map[int]int{0: 0, 1: 25, 3: 75, 4: 100} {
		require.Equal(t, want, CompanyResearchScore(artifacts))
	}
}

func TestRoleMatchPenalisesMissingAnalysis(t *testing.T) {
	require.Equal(t, 0, RoleMatchScore(nil))
	require.Equal(t, 100, RoleMatchScore(&MatchScores{Overall: 100, Skills: 100, Experience: 100}))
	require.Equal(t, 50, RoleMatchScore(&MatchScores{Overall: 100}))
}

func TestConfidenceBoundaries(t *testing.T) {
	match := &MatchScores{Overall: 10}

	four := Features{Match: match, HasResearch: true, MockSessions: 1, QuestionsPracticed: 1}
	require.Equal(t, ConfidenceHigh, ClassifyConfidence(four))

	three := Features{Match: match, HasResearch: true, TasksTotal: 2}
	require.Equal(t, ConfidenceMedium, ClassifyConfidence(three))

	two := Features{MockSessions: 2, QuestionsPracticed: 3}
	require.Equal(t, ConfidenceMedium, ClassifyConfidence(two))

	one := Features{TasksTotal: 5}
	require.Equal(t, ConfidenceLow, ClassifyConfidence(one))

	require.Equal(t, ConfidenceLow, ClassifyConfidence(Features{}))
}

func TestExtractFeaturesCountsDistinctQuestions(t *testing.T) {
	features := ExtractFeatures(Inputs{
		Questions:          []string{"Tell me about yourself", "tell me  about yourself", "Why us?", ""},
		MockSessionMinutes: []int{30, -10, 45},
		History:            []string{"offer", "scheduled"},
	})
	require.Equal(t, 2, features.QuestionsPracticed)
	require.Equal(t, 3, features.MockSessions)
	require.Equal(t, 75, features.MockMinutes)
	require.Equal(t, []string{"offer"}, features.History)
	require.False(t, features.HasResearch)
}
