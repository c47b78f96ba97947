// Package scoring estimates interview success probability from observable
// preparation signals. It performs no I/O and is safe for concurrent use.
package scoring

import "strings"

// Outcome labels recognised on historical interviews.
const (
	OutcomeOffer    = "offer"
	OutcomeAccepted = "accepted"
	OutcomeHired    = "hired"
	OutcomePassed   = "passed"
	OutcomeRejected = "rejected"
	OutcomeDeclined = "declined"
	OutcomeWithdrew = "withdrawn"
	OutcomeNoOffer  = "no_offer"
	OutcomeFailed   = "failed"
	OutcomeGhosted  = "ghosted"
)

var successOutcomes = map[string]struct{}{
	OutcomeOffer:    {},
	OutcomeAccepted: {},
	OutcomeHired:    {},
	OutcomePassed:   {},
}

var failureOutcomes = map[string]struct{}{
	OutcomeRejected: {},
	OutcomeDeclined: {},
	OutcomeWithdrew: {},
	OutcomeNoOffer:  {},
	OutcomeFailed:   {},
	OutcomeGhosted:  {},
}

// IsTerminalOutcome reports whether the outcome closes an interview.
func IsTerminalOutcome(outcome string) bool {
	key := normalizeOutcome(outcome)
	if _, ok := successOutcomes[key]; ok {
		return true
	}
	_, ok := failureOutcomes[key]
	return ok
}

// IsSuccessOutcome reports whether the outcome counts as a success.
func IsSuccessOutcome(outcome string) bool {
	_, ok := successOutcomes[normalizeOutcome(outcome)]
	return ok
}

func normalizeOutcome(outcome string) string {
	return strings.ToLower(strings.TrimSpace(outcome))
}

// Task is one preparation checklist entry.
type Task struct {
	Label     string
	Completed bool
}

// MatchScores carries the job match analysis fields, each in [0,100].
type MatchScores struct {
	Overall    float64
	Skills     float64
	Experience float64
}

// Research holds the four company research artifacts.
type Research struct {
	CompanyProfile string
	RecentNews     string
	Leadership     string
	TalkingPoints  string
}

// Inputs groups the records the engine reads. Only Tasks is always present;
// nil pointers and empty slices mean the record does not exist.
type Inputs struct {
	Tasks []Task
	// MockSessionMinutes holds one duration per mock interview session.
	MockSessionMinutes []int
	// Questions holds the text of each practiced question.
	Questions   []string
	Research    *Research
	Match       *MatchScores
	HasInsights bool
	// History holds outcomes of the user's past interviews, newest first.
	History []string
}

// Features are raw counts extracted from Inputs.
type Features struct {
	TasksCompleted     int
	TasksTotal         int
	MockSessions       int
	MockMinutes        int
	QuestionsPracticed int
	ResearchArtifacts  int
	HasResearch        bool
	Match              *MatchScores
	HasInsights        bool
	// History holds terminal outcomes only, newest first.
	History []string
}

// ExtractFeatures null-coalesces the inputs into countable features.
func ExtractFeatures(in Inputs) Features {
	f := Features{
		TasksTotal:   len(in.Tasks),
		MockSessions: len(in.MockSessionMinutes),
		HasInsights:  in.HasInsights,
	}

	for _, task := range in.Tasks {
		if task.Completed {
			f.TasksCompleted++
		}
	}

	for _, minutes := range in.MockSessionMinutes {
		if minutes > 0 {
			f.MockMinutes += minutes
		}
	}

	f.QuestionsPracticed = countDistinct(in.Questions)

	if in.Research != nil {
		f.HasResearch = true
		f.ResearchArtifacts = countPresent(
			in.Research.CompanyProfile,
			in.Research.RecentNews,
			in.Research.Leadership,
			in.Research.TalkingPoints,
		)
	}

	if in.Match != nil {
		match := *in.Match
		f.Match = &match
	}

	for _, outcome := range in.History {
		if IsTerminalOutcome(outcome) {
			f.History = append(f.History, normalizeOutcome(outcome))
		}
	}

	return f
}

func countDistinct(questions []string) int {
	seen := make(map[string]struct{}, len(questions))
	for _, question := range questions {
		key := strings.ToLower(strings.Join(strings.Fields(question), " "))
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

func countPresent(values ...string) int {
	count := 0
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			count++
		}
	}
	return count
}
