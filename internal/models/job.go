package models

import "time"

// Job is a tracked job opportunity owned by a user.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Company     string    `gorm:"size:255" json:"company"`
	Location    string    `gorm:"size:255" json:"location"`
	Status      string    `gorm:"size:32" json:"status"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobMatchAnalysis holds the match scores produced for a job. At most one
// exists per job.
type JobMatchAnalysis struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	JobID           uint      `gorm:"not null;uniqueIndex" json:"job_id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	OverallScore    float64   `gorm:"not null;default:0" json:"overall_score"`
	SkillsScore     float64   `gorm:"not null;default:0" json:"skills_score"`
	ExperienceScore float64   `gorm:"not null;default:0" json:"experience_score"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CompanyResearch stores the research artifacts collected for a job's company.
type CompanyResearch struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	JobID          uint      `gorm:"not null;uniqueIndex" json:"job_id"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	CompanyProfile string    `gorm:"type:text" json:"company_profile"`
	RecentNews     string    `gorm:"type:text" json:"recent_news"`
	LeadershipInfo string    `gorm:"type:text" json:"leadership_info"`
	TalkingPoints  string    `gorm:"type:text" json:"talking_points"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName keeps the plural form readable.
func (CompanyResearch) TableName() string {
	return "company_research"
}
