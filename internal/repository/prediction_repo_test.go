package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/career-prep-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Job{},
		&models.Interview{},
		&models.JobMatchAnalysis{},
		&models.CompanyResearch{},
		&models.InterviewInsight{},
		&models.MockInterviewSession{},
		&models.QuestionResponse{},
		&models.InterviewPrediction{},
	))
	return db
}

func TestInterviewRepositoryScopesToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)

	job := models.Job{UserID: 1, Title: "Backend Engineer", Company: "Acme"}
	require.NoError(t, db.Create(&job).Error)
	interview := models.Interview{UserID: 1, JobID: job.ID, Type: "technical", PrepTasks: []models.PrepTask{{Label: "Review Go", Completed: true}, {Label: "System design"}}}
	require.NoError(t, db.Create(&interview).Error)

	found, err := repo.GetForUser(context.Background(), interview.ID, 1)
	require.NoError(t, err)
	require.Equal(t, "Acme", found.Job.Company)
	require.Len(t, found.PrepTasks, 2)
	require.Equal(t, []string{"System design"}, found.PendingTasks())

	_, err = repo.GetForUser(context.Background(), interview.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInterviewRepositoryListOutcomesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInterviewRepository(db)

	now := time.Now().UTC()
	rows := []models.Interview{
		{UserID: 1, JobID: 1, ScheduledAt: now.Add(-72 * time.Hour), Outcome: "rejected"},
		{UserID: 1, JobID: 1, ScheduledAt: now.Add(-24 * time.Hour), Outcome: "offer"},
		{UserID: 1, JobID: 1, ScheduledAt: now.Add(-48 * time.Hour), Outcome: "declined"},
		{UserID: 1, JobID: 1, ScheduledAt: now.Add(24 * time.Hour)},
		{UserID: 2, JobID: 1, ScheduledAt: now, Outcome: "offer"},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	outcomes, err := repo.ListOutcomes(context.Background(), 1, rows[3].ID)
	require.NoError(t, err)
	require.Equal(t, []string{"offer", "declined", "rejected"}, outcomes)

	outcomes, err = repo.ListOutcomes(context.Background(), 1, rows[1].ID)
	require.NoError(t, err)
	require.Equal(t, []string{"declined", "rejected"}, outcomes)
}

func TestPreparationRepositoryReturnsNilForMissingRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreparationRepository(db)
	ctx := context.Background()

	analysis, err := repo.FindMatchAnalysis(ctx, 7, 1)
	require.NoError(t, err)
	require.Nil(t, analysis)

	research, err := repo.FindCompanyResearch(ctx, 7, 1)
	require.NoError(t, err)
	require.Nil(t, research)

	insight, err := repo.FindInsight(ctx, 3, 1)
	require.NoError(t, err)
	require.Nil(t, insight)

	sessions, err := repo.ListMockSessions(ctx, 3, 1)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestPreparationRepositoryLoadsRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreparationRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.JobMatchAnalysis{JobID: 7, UserID: 1, OverallScore: 80, SkillsScore: 70, ExperienceScore: 60}).Error)
	require.NoError(t, db.Create(&models.CompanyResearch{JobID: 7, UserID: 1, CompanyProfile: "Acme builds rockets"}).Error)
	require.NoError(t, db.Create(&models.InterviewInsight{InterviewID: 3, UserID: 1, Summary: "Focus on scale"}).Error)
	require.NoError(t, db.Create(&models.MockInterviewSession{InterviewID: 3, UserID: 1, DurationMinutes: 45}).Error)
	require.NoError(t, db.Create(&models.MockInterviewSession{InterviewID: 3, UserID: 2, DurationMinutes: 45}).Error)
	require.NoError(t, db.Create(&models.QuestionResponse{InterviewID: 3, UserID: 1, Question: "Why Acme?"}).Error)

	analysis, err := repo.FindMatchAnalysis(ctx, 7, 1)
	require.NoError(t, err)
	require.NotNil(t, analysis)
	require.InDelta(t, 80, analysis.OverallScore, 0.001)

	_, err = repo.FindCompanyResearch(ctx, 7, 2)
	require.NoError(t, err)

	sessions, err := repo.ListMockSessions(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	responses, err := repo.ListQuestionResponses(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, responses, 1)
}

func TestPredictionRepositoryLatestAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPredictionRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		prediction := models.InterviewPrediction{
			InterviewID:        9,
			JobID:              4,
			UserID:             1,
			OverallProbability: 50 + i,
			ConfidenceLevel:    "medium",
			PerformanceTrend:   "stable",
			PredictedOutcome:   "possible",
			PrioritizedActions: []string{fmt.Sprintf("action %d", i)},
			CreatedAt:          base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, &prediction))
	}

	latest, err := repo.Latest(ctx, 9, 1)
	require.NoError(t, err)
	require.Equal(t, 52, latest.OverallProbability)
	require.Equal(t, []string{"action 2"}, []string(latest.PrioritizedActions))

	list, err := repo.ListByInterview(ctx, 9, 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, 52, list[0].OverallProbability)
	require.Equal(t, 51, list[1].OverallProbability)

	_, err = repo.Latest(ctx, 9, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
