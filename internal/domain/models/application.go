package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending              Status = "pending"
	StatusShortlisted          Status = "shortlisted"
	StatusInterviewScheduled   Status = "interview_scheduled"
	StatusInterviewRescheduled Status = "interview_rescheduled"
	StatusInterviewCompleted   Status = "interview_completed"
	StatusRejected             Status = "rejected"
	StatusHired                Status = "hired"
)

var AllStatuses = []Status{
	StatusPending,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusInterviewRescheduled,
	StatusInterviewCompleted,
	StatusRejected,
	StatusHired,
}

// ParseStatus lower-cases and trims s before matching.
func ParseStatus(s string) (Status, bool) {
	candidate := Status(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range AllStatuses {
		if status == candidate {
			return status, true
		}
	}
	return candidate, false
}

func (s Status) RequiresInterview() bool {
	return s == StatusInterviewScheduled || s == StatusInterviewRescheduled
}

type InterviewMode string

const (
	ModeOnline InterviewMode = "online"
	ModeOnsite InterviewMode = "onsite"
)

func ParseInterviewMode(s string) (InterviewMode, bool) {
	switch InterviewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeOnline:
		return ModeOnline, true
	case ModeOnsite:
		return ModeOnsite, true
	default:
		return "", false
	}
}

type Interview struct {
	Date        *time.Time    `json:"date"`
	Time        string        `json:"time"`
	Mode        InterviewMode `gorm:"type:varchar(16)" json:"mode"`
	Location    string        `json:"location"`
	MeetingLink string        `json:"meetingLink"`
	Notes       string        `json:"notes"`
}

// Equal compares every interview field; dates are compared as instants.
func (i Interview) Equal(other Interview) bool {
	sameDate := (i.Date == nil && other.Date == nil) ||
		(i.Date != nil && other.Date != nil && i.Date.Equal(*other.Date))

	return sameDate &&
		i.Time == other.Time &&
		i.Mode == other.Mode &&
		i.Location == other.Location &&
		i.MeetingLink == other.MeetingLink &&
		i.Notes == other.Notes
}

func (i Interview) IsZero() bool {
	return i.Equal(Interview{})
}

type Application struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	JobID       string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_applicant" json:"jobId"`
	ApplicantID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_applicant;index" json:"applicantId"`
	Status      Status    `gorm:"type:varchar(32);not null;default:pending" json:"status"`
	Interview   Interview `gorm:"embedded;embeddedPrefix:interview_" json:"interview"`
	Version     int       `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Job       *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Applicant *User `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
}

func NewApplication(jobID, applicantID string) *Application {
	return &Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      StatusPending,
		Version:     1,
	}
}
