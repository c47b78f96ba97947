package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/models"
	"github.com/noah-isme/career-prep-api/internal/repository"
	"github.com/noah-isme/career-prep-api/pkg/scoring"
)

// ErrInterviewNotFound indicates the interview does not exist for the caller.
var ErrInterviewNotFound = errors.New("interview not found")

// ErrUnauthenticated indicates the request carries no user identity.
var ErrUnauthenticated = errors.New("authentication required")

// preparation is everything the scoring engine reads for one interview.
type preparation struct {
	interview models.Interview
	match     *models.JobMatchAnalysis
	research  *models.CompanyResearch
	insight   *models.InterviewInsight
	sessions  []models.MockInterviewSession
	responses []models.QuestionResponse
	history   []string
}

type preparationLoader struct {
	interviews  repository.InterviewRepository
	preparation repository.PreparationRepository
}

// load fetches the interview first, then the optional records in one
// parallel batch.
func (l preparationLoader) load(ctx context.Context, userID uint, interviewID uint) (preparation, error) {
	if userID == 0 {
		return preparation{}, ErrUnauthenticated
	}

	interview, err := l.interviews.GetForUser(ctx, interviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return preparation{}, ErrInterviewNotFound
		}
		return preparation{}, fmt.Errorf("load interview: %w", err)
	}

	prep := preparation{interview: interview}
	jobID := interview.JobID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		match, err := l.preparation.FindMatchAnalysis(gctx, jobID, userID)
		if err != nil {
			return fmt.Errorf("load match analysis: %w", err)
		}
		prep.match = match
		return nil
	})
	g.Go(func() error {
		research, err := l.preparation.FindCompanyResearch(gctx, jobID, userID)
		if err != nil {
			return fmt.Errorf("load company research: %w", err)
		}
		prep.research = research
		return nil
	})
	g.Go(func() error {
		insight, err := l.preparation.FindInsight(gctx, interviewID, userID)
		if err != nil {
			return fmt.Errorf("load insight: %w", err)
		}
		prep.insight = insight
		return nil
	})
	g.Go(func() error {
		sessions, err := l.preparation.ListMockSessions(gctx, interviewID, userID)
		if err != nil {
			return fmt.Errorf("load mock sessions: %w", err)
		}
		prep.sessions = sessions
		return nil
	})
	g.Go(func() error {
		responses, err := l.preparation.ListQuestionResponses(gctx, interviewID, userID)
		if err != nil {
			return fmt.Errorf("load question responses: %w", err)
		}
		prep.responses = responses
		return nil
	})
	g.Go(func() error {
		history, err := l.interviews.ListOutcomes(gctx, userID, interviewID)
		if err != nil {
			return fmt.Errorf("load interview history: %w", err)
		}
		prep.history = history
		return nil
	})

	if err := g.Wait(); err != nil {
		return preparation{}, err
	}

	return prep, nil
}

// inputs converts persisted records into scoring inputs.
func (p preparation) inputs() scoring.Inputs {
	in := scoring.Inputs{
		Tasks:       make([]scoring.Task, 0, len(p.interview.PrepTasks)),
		HasInsights: p.insight != nil,
		History:     p.history,
	}

	for _, task := range p.interview.PrepTasks {
		in.Tasks = append(in.Tasks, scoring.Task{Label: task.Label, Completed: task.Completed})
	}

	for _, session := range p.sessions {
		in.MockSessionMinutes = append(in.MockSessionMinutes, session.DurationMinutes)
	}

	for _, response := range p.responses {
		key := strings.TrimSpace(response.Question)
		if key == "" {
			// unlabeled rows still count as one practiced question each
			key = fmt.Sprintf("#%d", response.ID)
		}
		in.Questions = append(in.Questions, key)
	}

	if p.match != nil {
		in.Match = &scoring.MatchScores{
			Overall:    p.match.OverallScore,
			Skills:     p.match.SkillsScore,
			Experience: p.match.ExperienceScore,
		}
	}

	if p.research != nil {
		in.Research = &scoring.Research{
			CompanyProfile: p.research.CompanyProfile,
			RecentNews:     p.research.RecentNews,
			Leadership:     p.research.LeadershipInfo,
			TalkingPoints:  p.research.TalkingPoints,
		}
	}

	return in
}

func featureSnapshot(features scoring.Features, result scoring.Result) datatypes.JSONMap {
	return datatypes.JSONMap{
		"tasks_completed":     features.TasksCompleted,
		"tasks_total":         features.TasksTotal,
		"mock_sessions":       features.MockSessions,
		"mock_minutes":        features.MockMinutes,
		"questions_practiced": features.QuestionsPracticed,
		"research_artifacts":  features.ResearchArtifacts,
		"has_research":        features.HasResearch,
		"has_match_analysis":  features.Match != nil,
		"has_insights":        features.HasInsights,
		"history_total":       result.History.Total,
		"history_successes":   result.History.Successes,
		"recent_success_rate": result.History.RecentRate,
		"trend_delta":         result.History.Trend,
		"base_probability":    result.Base,
		"present_sources":     result.PresentSources,
	}
}
