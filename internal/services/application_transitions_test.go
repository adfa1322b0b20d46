package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var onlineInterview = StatusChange{
	Status:        string(models.StatusInterviewScheduled),
	InterviewDate: "2025-06-01",
	InterviewTime: "10:00",
	Mode:          "online",
	MeetingLink:   "https://meet.test/abc",
}

func (f *fixture) transitions(notifier Notifier, bus EventBus.BusPublisher) *ApplicationTransitions {
	service := NewApplicationTransitions(f.applications, f.jobs, repositories.NewCachedContacts(f.users),
		f.companies, notifier, bus)
	service.Now = func() time.Time { return f.now }
	return service
}

// applied returns a fresh application moved to status without going through the transition rules.
func (f *fixture) applied(t *testing.T, status models.Status) *models.Application {
	t.Helper()
	job := f.createJob(t)
	application, err := f.apply.Apply(f.ctx, applicantID, job.ID)
	require.NoError(t, err)
	if status == models.StatusPending {
		return application
	}

	application.Status = status
	if status.RequiresInterview() {
		date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		application.Interview = models.Interview{Date: &date, Time: "10:00", Mode: models.ModeOnline, MeetingLink: "https://meet.test/abc"}
	}
	require.NoError(t, f.applications.SaveTransition(f.ctx, application, application.Version))
	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	return stored
}

func Test_UpdateStatus_WhenScheduling_ShouldStoreInterviewAndNotifyOnce(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusShortlisted)
	notifier := &mockNotifier{}
	notifier.On("InterviewScheduled", mock.Anything, mock.MatchedBy(func(n events.InterviewScheduled) bool {
		return n.To == "asha@example.com" && n.ApplicantName == "Asha" &&
			n.JobTitle == "Backend Engineer" && n.CompanyName == "Acme Labs" && n.Interview.Mode == models.ModeOnline
	})).Return(nil).Once()

	result, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID, onlineInterview)

	require.NoError(t, err)
	assert.True(result.Notified)
	assert.Empty(result.Warning)
	assert.Equal(models.StatusShortlisted, result.From)
	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(models.StatusInterviewScheduled, stored.Status)
	assert.Equal("https://meet.test/abc", stored.Interview.MeetingLink)
	assert.True(stored.Interview.Date.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	notifier.AssertExpectations(t)
}

func Test_UpdateStatus_WhenScheduledAgainWithSameDetail_ShouldAcceptAndNotifyAgain(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusInterviewScheduled)
	notifier := &mockNotifier{}
	notifier.On("InterviewScheduled", mock.Anything, mock.Anything).Return(nil).Once()

	change := onlineInterview
	change.InterviewDate = "2025-06-01T00:00:00Z"
	result, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID, change)

	require.NoError(t, err)
	assert.Equal(models.TransitionReschedule, result.Kind)
	assert.True(result.Notified)
	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(models.StatusInterviewScheduled, stored.Status)
	assert.Equal(application.Version+1, stored.Version)
	notifier.AssertExpectations(t)
}

func Test_UpdateStatus_WhenRescheduledWithSameDetail_ShouldRejectWithoutMutation(t *testing.T) {
	for _, from := range []models.Status{models.StatusInterviewScheduled, models.StatusInterviewRescheduled} {
		t.Run(string(from), func(t *testing.T) {
			assert := assert.New(t)
			f := newFixture(t)
			application := f.applied(t, from)
			notifier := &mockNotifier{}

			change := onlineInterview
			change.Status = string(models.StatusInterviewRescheduled)
			_, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID, change)

			assert.True(apperr.Is(err, apperr.KindConflict))
			assert.EqualError(err, "Please change at least one interview detail to reschedule.")
			stored, err := f.applications.GetByID(f.ctx, application.ID)
			require.NoError(t, err)
			assert.Equal(from, stored.Status)
			assert.Equal(application.Version, stored.Version)
			notifier.AssertNotCalled(t, "InterviewRescheduled", mock.Anything, mock.Anything)
			notifier.AssertNotCalled(t, "InterviewScheduled", mock.Anything, mock.Anything)
		})
	}
}

func Test_UpdateStatus_WhenRescheduleChangesTime_ShouldNotify(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusInterviewScheduled)
	notifier := &mockNotifier{}
	notifier.On("InterviewRescheduled", mock.Anything, mock.Anything).Return(nil).Once()

	change := onlineInterview
	change.Status = string(models.StatusInterviewRescheduled)
	change.InterviewTime = "15:30"
	result, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID, change)

	require.NoError(t, err)
	assert.Equal(models.TransitionAdvance, result.Kind)
	assert.Equal("15:30", result.Application.Interview.Time)
	notifier.AssertExpectations(t)
}

func Test_UpdateStatus_WhenBackToShortlisted_ShouldClearInterview(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusInterviewScheduled)

	_, err := f.transitions(&mockNotifier{}, nil).UpdateStatus(f.ctx, employerID, application.ID,
		StatusChange{Status: "Shortlisted"})

	require.NoError(t, err)
	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(models.StatusShortlisted, stored.Status)
	assert.True(stored.Interview.IsZero())
}

func Test_UpdateStatus_WhenRequestInvalid_ShouldReject(t *testing.T) {
	f := newFixture(t)
	application := f.applied(t, models.StatusShortlisted)
	noLink := onlineInterview
	noLink.MeetingLink = " "
	onsite := onlineInterview
	onsite.Mode = "onsite"
	badDate := onlineInterview
	badDate.InterviewDate = "next tuesday"

	cases := []struct {
		name     string
		callerID string
		change   StatusChange
		kind     apperr.Kind
		field    string
	}{
		{name: "missing status", callerID: employerID, change: StatusChange{}, kind: apperr.KindValidation, field: "status"},
		{name: "not owner", callerID: applicantID, change: onlineInterview, kind: apperr.KindAuthorization},
		{name: "skips a stage", callerID: employerID, change: StatusChange{Status: "hired"}, kind: apperr.KindConflict},
		{name: "unknown status", callerID: employerID, change: StatusChange{Status: "archived"}, kind: apperr.KindConflict},
		{name: "online without link", callerID: employerID, change: noLink, kind: apperr.KindValidation, field: "meetingLink"},
		{name: "onsite without location", callerID: employerID, change: onsite, kind: apperr.KindValidation, field: "location"},
		{name: "bad date", callerID: employerID, change: badDate, kind: apperr.KindValidation, field: "interviewDate"},
	}

	service := f.transitions(&mockNotifier{}, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.UpdateStatus(f.ctx, tc.callerID, application.ID, tc.change)

			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
			assert.Equal(t, tc.field, apperr.FieldOf(err))
		})
	}

	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShortlisted, stored.Status)
}

func Test_UpdateStatus_WhenTerminal_ShouldDenyEveryMove(t *testing.T) {
	f := newFixture(t)
	application := f.applied(t, models.StatusRejected)
	service := f.transitions(&mockNotifier{}, nil)

	for _, status := range models.AllStatuses {
		_, err := service.UpdateStatus(f.ctx, employerID, application.ID, StatusChange{Status: string(status)})
		assert.True(t, apperr.Is(err, apperr.KindConflict), status)
	}
}

func Test_UpdateStatus_WhenNotifierFails_ShouldKeepStatusAndWarn(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusPending)
	notifier := &mockNotifier{}
	notifier.On("Rejected", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	result, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID,
		StatusChange{Status: "rejected"})

	require.NoError(t, err)
	assert.False(result.Notified)
	assert.Equal(notificationWarning, result.Warning)
	stored, err := f.applications.GetByID(f.ctx, application.ID)
	require.NoError(t, err)
	assert.Equal(models.StatusRejected, stored.Status)
}

func Test_UpdateStatus_WhenHired_ShouldCarrySalary(t *testing.T) {
	f := newFixture(t)
	application := f.applied(t, models.StatusInterviewCompleted)
	notifier := &mockNotifier{}
	notifier.On("Hired", mock.Anything, mock.MatchedBy(func(n events.CandidateHired) bool {
		return n.Salary != nil && *n.Salary == 10
	})).Return(nil).Once()

	_, err := f.transitions(notifier, nil).UpdateStatus(f.ctx, employerID, application.ID,
		StatusChange{Status: "hired"})

	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func Test_UpdateStatus_WhenApplicantHasNoEmail_ShouldSkipNotification(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusPending)
	f.addApplicant(t, applicantID, "Asha", "", "https://cdn.test/asha.pdf")

	result, err := f.transitions(&mockNotifier{}, nil).UpdateStatus(f.ctx, employerID, application.ID,
		StatusChange{Status: "rejected"})

	require.NoError(t, err)
	assert.False(result.Notified)
	assert.Empty(result.Warning)
}

func Test_UpdateStatus_WhenSubscribed_ShouldPublishStatusChange(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusPending)
	bus := EventBus.New()
	var received []events.ApplicationStatusChanged
	require.NoError(t, bus.Subscribe(events.ApplicationStatusChangedTopic, func(e events.ApplicationStatusChanged) {
		received = append(received, e)
	}))

	_, err := f.transitions(&mockNotifier{}, bus).UpdateStatus(f.ctx, employerID, application.ID,
		StatusChange{Status: "shortlisted"})

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(models.StatusPending, received[0].From)
	assert.Equal(models.StatusShortlisted, received[0].To)
	assert.Equal(f.now, received[0].ChangedAt)
}

type staleRepository struct {
	application *models.Application
}

func (r staleRepository) GetByID(context.Context, string) (*models.Application, error) {
	copied := *r.application
	return &copied, nil
}

func (r staleRepository) SaveTransition(context.Context, *models.Application, int) error {
	return repositories.ErrVersionConflict
}

func Test_UpdateStatus_WhenVersionMoved_ShouldReturnRetryableConflict(t *testing.T) {
	assert := assert.New(t)
	f := newFixture(t)
	application := f.applied(t, models.StatusPending)
	notifier := &mockNotifier{}
	service := NewApplicationTransitions(staleRepository{application: application}, f.jobs,
		repositories.NewCachedContacts(f.users), f.companies, notifier, nil)

	_, err := service.UpdateStatus(f.ctx, employerID, application.ID, StatusChange{Status: "rejected"})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(apperr.KindConflict, appErr.Kind)
	assert.True(appErr.Retryable)
	notifier.AssertNotCalled(t, "Rejected", mock.Anything, mock.Anything)
}
