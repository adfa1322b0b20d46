package services

import (
	"context"
	"testing"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/events"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	employerID  = "employer-1"
	applicantID = "applicant-1"
	companyID   = "company-1"
)

type fixture struct {
	ctx          context.Context
	now          time.Time
	dbCtx        *repositories.DbContext
	jobs         *repositories.Jobs
	applications *repositories.Applications
	users        *repositories.Users
	companies    *repositories.Companies
	lifecycle    *JobLifecycle
	apply        *JobApplications
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(config.DBConfig{
		Driver:           config.DriverSqlite,
		ConnectionString: ":memory:",
		QueryTimeout:     5 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	f := &fixture{
		ctx:          context.Background(),
		now:          time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC),
		dbCtx:        dbCtx,
		jobs:         repositories.NewJobsRepository(dbCtx),
		applications: repositories.NewApplicationsRepository(dbCtx),
		users:        repositories.NewUsersRepository(dbCtx),
		companies:    repositories.NewCompaniesRepository(dbCtx),
	}
	f.lifecycle = NewJobLifecycle(f.jobs, f.applications, f.companies)
	f.lifecycle.Now = func() time.Time { return f.now }
	f.apply = NewJobApplications(f.lifecycle, f.jobs, f.applications, f.users,
		NewOrphanCleaner(f.applications, true))

	require.NoError(t, f.companies.Create(f.ctx, &models.Company{ID: companyID, Name: "Acme Labs", OwnerID: employerID}))
	require.NoError(t, f.users.Save(f.ctx, &models.User{ID: employerID, FullName: "Riya", Email: "riya@acme.test", Role: models.RoleRecruiter}))
	f.addApplicant(t, applicantID, "Asha", "asha@example.com", "https://cdn.test/asha.pdf")
	return f
}

func (f *fixture) addApplicant(t *testing.T, id, name, email, resume string) {
	t.Helper()
	require.NoError(t, f.users.Save(f.ctx, &models.User{ID: id, FullName: name, Email: email, Role: models.RoleStudent, ResumeURL: resume}))
}

func (f *fixture) createJob(t *testing.T, requirements ...string) *models.Job {
	t.Helper()
	if len(requirements) == 0 {
		requirements = []string{"Go", "SQL", "Docker", "Kubernetes", "gRPC", "Redis", "Kafka", "Linux", "Git", "CI"}
	}

	job, err := f.lifecycle.CreateJob(f.ctx, employerID, JobDraft{
		Title:           "Backend Engineer",
		Description:     "Build hiring pipelines",
		Requirements:    requirements,
		Salary:          "10 LPA",
		ExperienceLevel: 2,
		Location:        "Pune",
		LocationType:    "hybrid",
		JobType:         "full-time",
		Position:        3,
		CompanyID:       companyID,
		Deadline:        f.now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	return job
}

func (f *fixture) reloadJob(t *testing.T, id string) *models.Job {
	t.Helper()
	job, err := f.jobs.GetByID(f.ctx, id)
	require.NoError(t, err)
	return job
}

func ptr[T any](value T) *T {
	return &value
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) InterviewScheduled(ctx context.Context, notice events.InterviewScheduled) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) InterviewRescheduled(ctx context.Context, notice events.InterviewRescheduled) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) Rejected(ctx context.Context, notice events.ApplicationRejected) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *mockNotifier) Hired(ctx context.Context, notice events.CandidateHired) error {
	return m.Called(ctx, notice).Error(0)
}
