package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email Email) error {
	return m.Called(ctx, email).Error(0)
}

func captured(sender *mockSender) Email {
	return sender.Calls[0].Arguments.Get(1).(Email)
}

var notice = events.Notice{
	To:            "asha@example.com",
	ApplicantName: "Asha",
	JobTitle:      "Backend Engineer",
	CompanyName:   "Acme Labs",
}

func Test_Mailer_InterviewScheduled_WhenOnline_ShouldIncludeMeetingLink(t *testing.T) {
	assert := assert.New(t)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	err := NewMailer(sender, "JobHunt").InterviewScheduled(context.Background(), events.InterviewScheduled{
		Notice:    notice,
		Interview: models.Interview{Date: &date, Time: "10:00", Mode: models.ModeOnline, MeetingLink: "https://meet.test/abc"},
	})

	require.NoError(t, err)
	email := captured(sender)
	assert.Equal("asha@example.com", email.To)
	assert.Equal("JobHunt Interview Scheduled - Backend Engineer", email.Subject)
	assert.Contains(email.Text, "Your interview has been scheduled for Backend Engineer at Acme Labs.")
	assert.Contains(email.Text, "Date: 2025-06-01\nTime: 10:00\nMode: Online\nMeeting link: https://meet.test/abc")
	assert.Contains(email.HTML, "<strong>Meeting link:</strong> https://meet.test/abc")
}

func Test_Mailer_InterviewRescheduled_WhenOnsiteWithoutDate_ShouldUseDefaults(t *testing.T) {
	assert := assert.New(t)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	err := NewMailer(sender, "JobHunt").InterviewRescheduled(context.Background(), events.InterviewRescheduled{
		Notice:    notice,
		Interview: models.Interview{Mode: models.ModeOnsite, Location: "Pune HQ"},
	})

	require.NoError(t, err)
	email := captured(sender)
	assert.Equal("JobHunt Interview Rescheduled - Backend Engineer", email.Subject)
	assert.Contains(email.Text, "Date: TBD\nTime: TBD\nMode: Onsite\nLocation: Pune HQ")
}

func Test_Mailer_Hired_ShouldFormatPackage(t *testing.T) {
	assert := assert.New(t)
	salary := 12.5

	cases := []struct {
		salary *float64
		line   string
	}{
		{salary: &salary, line: "Package: 12.5 LPA"},
		{salary: nil, line: "Package: the discussed package"},
	}

	for _, tc := range cases {
		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.Anything).Return(nil)

		err := NewMailer(sender, "JobHunt").Hired(context.Background(), events.CandidateHired{Notice: notice, Salary: tc.salary})

		require.NoError(t, err)
		email := captured(sender)
		assert.Equal("JobHunt Offer - Backend Engineer", email.Subject)
		assert.Contains(email.Text, tc.line)
	}
}

func Test_Mailer_Rejected_ShouldEscapeHTML(t *testing.T) {
	assert := assert.New(t)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	hostile := notice
	hostile.JobTitle = "<script>alert(1)</script>"

	err := NewMailer(sender, "JobHunt").Rejected(context.Background(), events.ApplicationRejected{Notice: hostile})

	require.NoError(t, err)
	email := captured(sender)
	assert.NotContains(email.HTML, "<script>")
	assert.Contains(email.HTML, "&lt;script&gt;")
	assert.Contains(email.Text, "we will not be moving forward at this time")
}

func Test_Mailer_WhenSenderFails_ShouldReturnError(t *testing.T) {
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := NewMailer(sender, "JobHunt").Rejected(context.Background(), events.ApplicationRejected{Notice: notice})

	assert.EqualError(t, err, "connection refused")
}

func Test_SMTPSender_WhenContextCanceled_ShouldNotDial(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "smtp.invalid", Port: 587, User: "u", Password: "p", MaxPerSecond: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sender.Send(ctx, Email{To: "asha@example.com", Subject: "s", Text: "t"})

	assert.ErrorIs(t, err, context.Canceled)
}
