package mailer

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/pkg/errors"
)

const (
	dateLayout      = "2006-01-02"
	notSet          = "TBD"
	discussedSalary = "the discussed package"
)

// Mailer renders applicant notifications into emails.
type Mailer struct {
	sender  Sender
	appName string
}

func NewMailer(sender Sender, appName string) *Mailer {
	return &Mailer{sender: sender, appName: appName}
}

func (m *Mailer) InterviewScheduled(ctx context.Context, notice events.InterviewScheduled) error {
	return m.send(ctx, kindInterviewScheduled, m.interviewData(notice.Notice, notice.Interview), notice.To)
}

func (m *Mailer) InterviewRescheduled(ctx context.Context, notice events.InterviewRescheduled) error {
	return m.send(ctx, kindInterviewRescheduled, m.interviewData(notice.Notice, notice.Interview), notice.To)
}

func (m *Mailer) Rejected(ctx context.Context, notice events.ApplicationRejected) error {
	return m.send(ctx, kindRejected, m.baseData(notice.Notice), notice.To)
}

func (m *Mailer) Hired(ctx context.Context, notice events.CandidateHired) error {
	data := m.baseData(notice.Notice)
	data.SalaryLine = discussedSalary
	if notice.Salary != nil {
		data.SalaryLine = strconv.FormatFloat(*notice.Salary, 'f', -1, 64) + " LPA"
	}
	return m.send(ctx, kindHired, data, notice.To)
}

func (m *Mailer) baseData(notice events.Notice) messageData {
	return messageData{
		AppName:       m.appName,
		ApplicantName: notice.ApplicantName,
		JobTitle:      notice.JobTitle,
		CompanyName:   notice.CompanyName,
	}
}

func (m *Mailer) interviewData(notice events.Notice, interview models.Interview) messageData {
	data := m.baseData(notice)
	data.Date = notSet
	if interview.Date != nil {
		data.Date = interview.Date.Format(dateLayout)
	}
	data.Time = notSet
	if interview.Time != "" {
		data.Time = interview.Time
	}

	if interview.Mode == models.ModeOnsite {
		data.ModeLabel = "Onsite"
		data.LocationLabel = "Location"
		data.LocationLine = interview.Location
	} else {
		data.ModeLabel = "Online"
		data.LocationLabel = "Meeting link"
		data.LocationLine = interview.MeetingLink
	}
	return data
}

func (m *Mailer) send(ctx context.Context, kind string, data messageData, to string) error {
	email, err := render(kind, data)
	if err != nil {
		metrics.NotificationsCounter.WithLabelValues(kind, "failed").Inc()
		return err
	}
	email.To = to

	if err := m.sender.Send(ctx, email); err != nil {
		metrics.NotificationsCounter.WithLabelValues(kind, "failed").Inc()
		return err
	}
	metrics.NotificationsCounter.WithLabelValues(kind, "sent").Inc()
	return nil
}

func render(kind string, data messageData) (Email, error) {
	msg, ok := messages[kind]
	if !ok {
		return Email{}, fmt.Errorf("unknown notification kind %q", kind)
	}

	var text, html bytes.Buffer
	if err := msg.text.Execute(&text, data); err != nil {
		return Email{}, errors.Wrapf(err, "error rendering %s text", kind)
	}
	if err := msg.html.Execute(&html, data); err != nil {
		return Email{}, errors.Wrapf(err, "error rendering %s html", kind)
	}

	return Email{
		Subject: fmt.Sprintf(msg.subject, data.AppName, data.JobTitle),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
