package events

import (
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
)

var (
	InterviewScheduledTopic       = "InterviewScheduledEvent"
	InterviewRescheduledTopic     = "InterviewRescheduledEvent"
	ApplicationRejectedTopic      = "ApplicationRejectedEvent"
	CandidateHiredTopic           = "CandidateHiredEvent"
	ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"
)

// Notice carries the fields shared by every applicant notification.
type Notice struct {
	To            string `json:"to"`
	ApplicantName string `json:"applicantName"`
	JobTitle      string `json:"jobTitle"`
	CompanyName   string `json:"companyName"`
}

type InterviewScheduled struct {
	Notice
	Interview models.Interview `json:"interview"`
}

type InterviewRescheduled struct {
	Notice
	Interview models.Interview `json:"interview"`
}

type ApplicationRejected struct {
	Notice
}

type CandidateHired struct {
	Notice
	// Salary is nil when the posting has no usable salary; the offer then refers to the discussed package.
	Salary *float64 `json:"salary"`
}

type ApplicationStatusChanged struct {
	ApplicationID string        `json:"applicationId"`
	JobID         string        `json:"jobId"`
	ApplicantID   string        `json:"applicantId"`
	From          models.Status `json:"from"`
	To            models.Status `json:"to"`
	Reschedule    bool          `json:"reschedule"`
	ChangedAt     time.Time     `json:"changedAt"`
}
