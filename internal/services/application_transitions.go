package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/Abhi1565/JobHunt-backend/internal/validation"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

const (
	defaultApplicantName = "Candidate"
	defaultJobTitle      = "this role"
	defaultCompanyName   = "our company"

	notificationWarning = "Status updated, but the notification email could not be sent."
)

type transitionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Application, error)
	SaveTransition(ctx context.Context, application *models.Application, expectedVersion int) error
}

type jobReader interface {
	GetByID(ctx context.Context, id string) (*models.Job, error)
}

type contactDirectory interface {
	GetContact(ctx context.Context, userID string) (models.Contact, error)
}

type companyDirectory interface {
	GetName(ctx context.Context, companyID string) (string, error)
}

// StatusChange is the raw body of a status update request.
type StatusChange struct {
	Status        string
	InterviewDate string
	InterviewTime string
	Mode          string
	Location      string
	MeetingLink   string
	Notes         string
}

type TransitionResult struct {
	Application *models.Application
	From        models.Status
	Kind        models.TransitionKind
	Notified    bool
	// Warning is set when the notification could not be handed off; the status change stands.
	Warning string
}

type ApplicationTransitions struct {
	applications transitionRepository
	jobs         jobReader
	contacts     contactDirectory
	companies    companyDirectory
	notifier     Notifier
	bus          EventBus.BusPublisher
	Now          func() time.Time
}

// NewApplicationTransitions accepts a nil bus when status-change events are not consumed.
func NewApplicationTransitions(applications transitionRepository, jobs jobReader, contacts contactDirectory,
	companies companyDirectory, notifier Notifier, bus EventBus.BusPublisher) *ApplicationTransitions {

	return &ApplicationTransitions{
		applications: applications,
		jobs:         jobs,
		contacts:     contacts,
		companies:    companies,
		notifier:     notifier,
		bus:          bus,
		Now:          utcNow,
	}
}

// UpdateStatus validates the whole request against the state read at the start and commits with a
// version check, so a concurrent writer makes this request fail instead of being overwritten.
func (t *ApplicationTransitions) UpdateStatus(ctx context.Context, callerID, applicationID string,
	change StatusChange) (*TransitionResult, error) {

	if strings.TrimSpace(change.Status) == "" {
		return nil, rejected("update_status", apperr.Validation("status", "status is required"))
	}

	application, err := t.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, rejected("update_status", storeError(err, "Application not found."))
	}

	job, err := t.jobs.GetByID(ctx, application.JobID)
	if err != nil {
		return nil, rejected("update_status", storeError(err, "Job not found for this application."))
	}

	if job.CreatedBy != callerID {
		return nil, rejected("update_status", apperr.Authorization("You are not authorized to update this application."))
	}

	current := application.Status
	next, _ := models.ParseStatus(change.Status)
	kind := models.ClassifyTransition(current, next)
	if kind == models.TransitionDenied {
		return nil, rejected("update_status",
			apperr.Conflict(fmt.Sprintf("Invalid status transition from %s to %s.", current, next)))
	}

	updated := *application
	if next.RequiresInterview() {
		interview, err := parseInterview(change)
		if err != nil {
			return nil, rejected("update_status", err)
		}
		if next == models.StatusInterviewRescheduled && interview.Equal(application.Interview) {
			return nil, rejected("update_status",
				apperr.Conflict("Please change at least one interview detail to reschedule."))
		}
		updated.Interview = interview
	}
	if models.ClearsInterview(current, next) {
		updated.Interview = models.Interview{}
	}
	updated.Status = next

	if err := t.applications.SaveTransition(ctx, &updated, application.Version); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, rejected("update_status", apperr.RetryableConflict(
				"The application was updated by another request. Please retry.", err))
		}
		return nil, storeError(err, "Application not found.")
	}

	metrics.TransitionsCounter.WithLabelValues(string(current), string(next)).Inc()
	log.Infof("application %s moved from %s to %s by %s", application.ID, current, next, callerID)

	if t.bus != nil {
		t.bus.Publish(events.ApplicationStatusChangedTopic, events.ApplicationStatusChanged{
			ApplicationID: updated.ID,
			JobID:         updated.JobID,
			ApplicantID:   updated.ApplicantID,
			From:          current,
			To:            next,
			Reschedule:    kind == models.TransitionReschedule,
			ChangedAt:     t.Now(),
		})
	}

	result := &TransitionResult{Application: &updated, From: current, Kind: kind}
	result.Notified, result.Warning = t.notify(ctx, &updated, job)
	return result, nil
}

// parseInterview checks interview fields in a fixed order and reports the first failure.
func parseInterview(change StatusChange) (models.Interview, error) {
	date, ok := validation.ParseTimestamp(change.InterviewDate)
	if strings.TrimSpace(change.InterviewDate) == "" || !ok {
		return models.Interview{}, apperr.Validation("interviewDate", "Valid interviewDate is required.")
	}

	interviewTime := strings.TrimSpace(change.InterviewTime)
	if interviewTime == "" {
		return models.Interview{}, apperr.Validation("interviewTime", "interviewTime is required.")
	}

	mode, ok := models.ParseInterviewMode(change.Mode)
	if !ok {
		return models.Interview{}, apperr.Validation("mode", "mode must be online or onsite.")
	}

	location := strings.TrimSpace(change.Location)
	meetingLink := strings.TrimSpace(change.MeetingLink)

	if mode == models.ModeOnline && meetingLink == "" {
		return models.Interview{}, apperr.Validation("meetingLink", "meetingLink is required for online interviews.")
	}
	if mode == models.ModeOnsite && location == "" {
		return models.Interview{}, apperr.Validation("location", "location is required for onsite interviews.")
	}

	return models.Interview{
		Date:        &date,
		Time:        interviewTime,
		Mode:        mode,
		Location:    location,
		MeetingLink: meetingLink,
		Notes:       strings.TrimSpace(change.Notes),
	}, nil
}

// notify sends at most one notification after commit. Failures are logged and reported as a warning.
func (t *ApplicationTransitions) notify(ctx context.Context, application *models.Application, job *models.Job) (bool, string) {
	status := application.Status
	switch status {
	case models.StatusInterviewScheduled, models.StatusInterviewRescheduled, models.StatusRejected, models.StatusHired:
	case models.StatusPending, models.StatusShortlisted, models.StatusInterviewCompleted:
		return false, ""
	default:
		return false, ""
	}

	contact, err := t.contacts.GetContact(ctx, application.ApplicantID)
	if err != nil {
		log.Warnf("no contact for applicant %s, skipping notification: %v", application.ApplicantID, err)
		return false, ""
	}
	if contact.Email == "" {
		return false, ""
	}

	notice := events.Notice{
		To:            contact.Email,
		ApplicantName: withDefault(contact.Name, defaultApplicantName),
		JobTitle:      withDefault(job.Title, defaultJobTitle),
		CompanyName:   defaultCompanyName,
	}
	if name, err := t.companies.GetName(ctx, job.CompanyID); err == nil {
		notice.CompanyName = withDefault(name, defaultCompanyName)
	}

	switch status {
	case models.StatusInterviewScheduled:
		err = t.notifier.InterviewScheduled(ctx, events.InterviewScheduled{Notice: notice, Interview: application.Interview})
	case models.StatusInterviewRescheduled:
		err = t.notifier.InterviewRescheduled(ctx, events.InterviewRescheduled{Notice: notice, Interview: application.Interview})
	case models.StatusRejected:
		err = t.notifier.Rejected(ctx, events.ApplicationRejected{Notice: notice})
	case models.StatusHired:
		err = t.notifier.Hired(ctx, events.CandidateHired{Notice: notice, Salary: offeredSalary(job)})
	}

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSmtp).
			Errorf("status of application %s changed to %s but notification failed: %v", application.ID, status, err)
		return false, notificationWarning
	}
	return true, ""
}

func offeredSalary(job *models.Job) *float64 {
	if job.Salary <= 0 || math.IsNaN(job.Salary) || math.IsInf(job.Salary, 0) {
		return nil
	}
	salary := job.Salary
	return &salary
}

func withDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
