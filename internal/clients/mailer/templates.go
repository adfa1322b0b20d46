package mailer

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

const (
	kindInterviewScheduled   = "interview_scheduled"
	kindInterviewRescheduled = "interview_rescheduled"
	kindRejected             = "rejected"
	kindHired                = "hired"
)

type message struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

// messageData is rendered into every template; unused fields stay empty.
type messageData struct {
	AppName       string
	ApplicantName string
	JobTitle      string
	CompanyName   string
	Date          string
	Time          string
	ModeLabel     string
	LocationLabel string
	LocationLine  string
	SalaryLine    string
}

const interviewDetailsText = `Date: {{.Date}}
Time: {{.Time}}
Mode: {{.ModeLabel}}
{{.LocationLabel}}: {{.LocationLine}}

If you have any questions, reply to this email.`

const interviewDetailsHTML = `<ul>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Mode:</strong> {{.ModeLabel}}</li>
  <li><strong>{{.LocationLabel}}:</strong> {{.LocationLine}}</li>
</ul>
<p>If you have any questions, reply to this email.</p>`

var messages = map[string]message{
	kindInterviewScheduled: {
		subject: "%s Interview Scheduled - %s",
		text: texttemplate.Must(texttemplate.New(kindInterviewScheduled).Parse(`Hi {{.ApplicantName}},

Your interview has been scheduled for {{.JobTitle}} at {{.CompanyName}}.
` + interviewDetailsText)),
		html: htmltemplate.Must(htmltemplate.New(kindInterviewScheduled).Parse(`<p>Hi {{.ApplicantName}},</p>
<p>Your interview has been scheduled for <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>.</p>
` + interviewDetailsHTML)),
	},
	kindInterviewRescheduled: {
		subject: "%s Interview Rescheduled - %s",
		text: texttemplate.Must(texttemplate.New(kindInterviewRescheduled).Parse(`Hi {{.ApplicantName}},

Your interview for {{.JobTitle}} at {{.CompanyName}} has been rescheduled.
` + interviewDetailsText)),
		html: htmltemplate.Must(htmltemplate.New(kindInterviewRescheduled).Parse(`<p>Hi {{.ApplicantName}},</p>
<p>Your interview for <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong> has been rescheduled.</p>
` + interviewDetailsHTML)),
	},
	kindRejected: {
		subject: "%s Application Update - %s",
		text: texttemplate.Must(texttemplate.New(kindRejected).Parse(`Hi {{.ApplicantName}},

Thank you for applying to {{.JobTitle}} at {{.CompanyName}}. After careful consideration, we will not be moving forward at this time.

We appreciate your interest and wish you the best in your job search.`)),
		html: htmltemplate.Must(htmltemplate.New(kindRejected).Parse(`<p>Hi {{.ApplicantName}},</p>
<p>Thank you for applying to <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>. After careful consideration, we will not be moving forward at this time.</p>
<p>We appreciate your interest and wish you the best in your job search.</p>`)),
	},
	kindHired: {
		subject: "%s Offer - %s",
		text: texttemplate.Must(texttemplate.New(kindHired).Parse(`Hi {{.ApplicantName}},

Congratulations! You have been selected for the role of {{.JobTitle}} at {{.CompanyName}}.
Package: {{.SalaryLine}}

We will follow up with next steps soon.`)),
		html: htmltemplate.Must(htmltemplate.New(kindHired).Parse(`<p>Hi {{.ApplicantName}},</p>
<p><strong>Congratulations!</strong> You have been selected for the role of <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>.</p>
<p><strong>Package:</strong> {{.SalaryLine}}</p>
<p>We will follow up with next steps soon.</p>`)),
	},
}
