package models

import (
	"time"

	"gorm.io/datatypes"
)

// PrepTask is a single entry on an interview preparation checklist.
type PrepTask struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// Interview is one scheduled interview for a job.
type Interview struct {
	ID          uint                          `gorm:"primaryKey" json:"id"`
	UserID      uint                          `gorm:"not null;index" json:"user_id"`
	JobID       uint                          `gorm:"not null;index" json:"job_id"`
	Type        string                        `gorm:"size:64" json:"type"`
	ScheduledAt time.Time                     `gorm:"index" json:"scheduled_at"`
	PrepTasks   datatypes.JSONSlice[PrepTask] `gorm:"type:json" json:"prep_tasks"`
	Outcome     string                        `gorm:"size:32" json:"outcome"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
	Job         Job                           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"job"`
}

// PendingTasks lists the labels of checklist tasks not yet completed.
func (i Interview) PendingTasks() []string {
	pending := make([]string, 0, len(i.PrepTasks))
	for _, task := range i.PrepTasks {
		if !task.Completed {
			pending = append(pending, task.Label)
		}
	}
	return pending
}

// InterviewInsight is generated guidance attached to an interview.
type InterviewInsight struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InterviewID uint      `gorm:"not null;index" json:"interview_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Summary     string    `gorm:"type:text" json:"summary"`
	CreatedAt   time.Time `json:"created_at"`
}

// MockInterviewSession records one mock interview practice run.
type MockInterviewSession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	InterviewID     uint      `gorm:"not null;index" json:"interview_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	DurationMinutes int       `gorm:"not null;default:0" json:"duration_minutes"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestionResponse records one practiced interview question.
type QuestionResponse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InterviewID uint      `gorm:"not null;index" json:"interview_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Question    string    `gorm:"type:text" json:"question"`
	Response    string    `gorm:"type:text" json:"response"`
	CreatedAt   time.Time `json:"created_at"`
}
