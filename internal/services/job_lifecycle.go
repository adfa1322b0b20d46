package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/Abhi1565/JobHunt-backend/internal/validation"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type jobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Find(ctx context.Context, filter repositories.JobFilter) ([]models.Job, error)
	ArchiveExpired(ctx context.Context, now time.Time, createdBy string) (int64, error)
	ArchiveIfExpired(ctx context.Context, id string, now time.Time) (bool, error)
	ActivateLock(ctx context.Context, id string, core []string, salary float64, now time.Time) (bool, error)
	UpdateFields(ctx context.Context, job *models.Job, columns []string) (bool, error)
}

type applicationCounter interface {
	CountByJob(ctx context.Context, jobID string) (int64, error)
}

type companyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Company, error)
}

// JobDraft is a raw create request; loosely typed fields go through the validation package.
type JobDraft struct {
	Title           string
	Description     string
	Requirements    any
	Salary          any
	ExperienceLevel any
	Location        string
	LocationType    string
	JobType         string
	Position        any
	CompanyID       string
	Deadline        string
}

// JobUpdate is a partial edit: nil means the field was not sent.
type JobUpdate struct {
	Title           *string
	Description     *string
	Requirements    any
	Salary          any
	ExperienceLevel any
	Location        *string
	LocationType    *string
	JobType         *string
	Position        any
	CompanyID       *string
	Deadline        *string
}

type JobQuery struct {
	Keyword         string
	IncludeArchived bool
}

type JobLifecycle struct {
	jobs         jobRepository
	applications applicationCounter
	companies    companyRepository
	Now          func() time.Time
}

func NewJobLifecycle(jobs jobRepository, applications applicationCounter, companies companyRepository) *JobLifecycle {
	return &JobLifecycle{
		jobs:         jobs,
		applications: applications,
		companies:    companies,
		Now:          utcNow,
	}
}

// SweepExpired archives every job past its deadline; employerID narrows the sweep to one employer.
func (l *JobLifecycle) SweepExpired(ctx context.Context, employerID string) (int64, error) {
	archived, err := l.jobs.ArchiveExpired(ctx, l.Now(), employerID)
	if err != nil {
		return 0, storeError(err, "Job not found.")
	}
	if archived > 0 {
		metrics.ArchivedJobsCounter.Add(float64(archived))
		log.Infof("archived %d expired jobs", archived)
	}
	return archived, nil
}

func (l *JobLifecycle) SweepJob(ctx context.Context, jobID string) (bool, error) {
	archived, err := l.jobs.ArchiveIfExpired(ctx, jobID, l.Now())
	if err != nil {
		return false, storeError(err, "Job not found.")
	}
	if archived {
		metrics.ArchivedJobsCounter.Inc()
		log.Infof("job %s archived after its deadline", jobID)
	}
	return archived, nil
}

// InitializeApplicantLocks snapshots core requirements and salary once per job.
// When another request activated the lock first, job is refreshed with the stored snapshot.
func (l *JobLifecycle) InitializeApplicantLocks(ctx context.Context, job *models.Job) error {
	if job.IsLocked() {
		return nil
	}

	now := l.Now()
	core := models.CoreRequirements(job.Requirements)
	activated, err := l.jobs.ActivateLock(ctx, job.ID, core, job.Salary, now)
	if err != nil {
		return storeError(err, "Job not found.")
	}

	if activated {
		salary := job.Salary
		job.CoreRequirements = core
		job.LockedSalary = &salary
		job.ApplicationLockActivatedAt = &now
		log.Debugf("application lock activated for job %s", job.ID)
		return nil
	}

	stored, err := l.jobs.GetByID(ctx, job.ID)
	if err != nil {
		return storeError(err, "Job not found.")
	}
	job.CoreRequirements = stored.CoreRequirements
	job.LockedSalary = stored.LockedSalary
	job.ApplicationLockActivatedAt = stored.ApplicationLockActivatedAt
	return nil
}

func (l *JobLifecycle) CreateJob(ctx context.Context, callerID string, draft JobDraft) (*models.Job, error) {
	job, err := l.parseDraft(callerID, draft)
	if err != nil {
		return nil, rejected("create_job", err)
	}

	if _, err := l.companies.GetByID(ctx, job.CompanyID); err != nil {
		return nil, rejected("create_job", storeError(err, "Company not found."))
	}

	if err := l.jobs.Create(ctx, job); err != nil {
		return nil, storeError(err, "Job not found.")
	}
	log.Infof("job %s created by %s", job.ID, callerID)
	return job, nil
}

func (l *JobLifecycle) parseDraft(callerID string, draft JobDraft) (*models.Job, error) {
	required := []lo.Tuple2[string, string]{
		lo.T2("title", draft.Title),
		lo.T2("description", draft.Description),
		lo.T2("location", draft.Location),
		lo.T2("locationType", draft.LocationType),
		lo.T2("jobType", draft.JobType),
		lo.T2("companyId", draft.CompanyID),
	}
	for _, field := range required {
		if strings.TrimSpace(field.B) == "" {
			return nil, apperr.Validationf(field.A, "%s is required.", field.A)
		}
	}

	requirements, err := validation.ParseRequirements(draft.Requirements)
	if err != nil {
		return nil, err
	}
	if len(requirements) == 0 {
		return nil, apperr.Validation(validation.FieldRequirements, "At least one requirement is required.")
	}

	salary, err := validation.ParseSalary(draft.Salary)
	if err != nil {
		return nil, err
	}
	experience, err := validation.ParseExperienceLevel(draft.ExperienceLevel)
	if err != nil {
		return nil, err
	}
	position, err := validation.ParsePosition(draft.Position)
	if err != nil {
		return nil, err
	}
	deadline, err := validation.ParseDeadline(draft.Deadline)
	if err != nil {
		return nil, err
	}

	job := models.NewJob(callerID, strings.TrimSpace(draft.CompanyID))
	job.Title = strings.TrimSpace(draft.Title)
	job.Description = strings.TrimSpace(draft.Description)
	job.Requirements = requirements
	job.Salary = salary
	job.ExperienceLevel = experience
	job.Location = strings.TrimSpace(draft.Location)
	job.LocationType = strings.TrimSpace(draft.LocationType)
	job.JobType = strings.TrimSpace(draft.JobType)
	job.Position = position
	job.Deadline = deadline
	return job, nil
}

// UpdateJob validates the whole edit against the current lock state before writing anything.
func (l *JobLifecycle) UpdateJob(ctx context.Context, callerID, jobID string, update JobUpdate) (*models.Job, error) {
	job, err := l.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, rejected("update_job", storeError(err, "Job not found."))
	}
	if job.CreatedBy != callerID {
		return nil, rejected("update_job", apperr.Authorization("You are not authorized to update this job."))
	}
	if job.IsArchived {
		return nil, rejected("update_job", apperr.Conflict("This job has been archived and can no longer be edited."))
	}

	count, err := l.applications.CountByJob(ctx, jobID)
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	if count > 0 {
		if err := l.InitializeApplicantLocks(ctx, job); err != nil {
			return nil, err
		}
	}

	edit := newJobEdit(job, job.IsLocked())
	if err := edit.apply(update); err != nil {
		return nil, rejected("update_job", err)
	}

	if edit.changed("company_id") {
		if _, err := l.companies.GetByID(ctx, edit.next.CompanyID); err != nil {
			return nil, rejected("update_job", storeError(err, "Company not found."))
		}
	}

	if len(edit.columns) == 0 {
		return job, nil
	}

	updated, err := l.jobs.UpdateFields(ctx, edit.next, edit.columns)
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	if !updated {
		return nil, rejected("update_job", apperr.Conflict("This job has been archived and can no longer be edited."))
	}

	log.Infof("job %s updated by %s: %s", jobID, callerID, strings.Join(edit.columns, ", "))

	stored, err := l.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	return stored, nil
}

func (l *JobLifecycle) ListJobs(ctx context.Context, query JobQuery) ([]models.Job, error) {
	if _, err := l.SweepExpired(ctx, ""); err != nil {
		return nil, err
	}

	jobs, err := l.jobs.Find(ctx, repositories.JobFilter{
		Keyword:         query.Keyword,
		IncludeArchived: query.IncludeArchived,
		Now:             l.Now(),
	})
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	return jobs, nil
}

// GetActiveJob archives the job first if its deadline passed; archived jobs read as not found.
func (l *JobLifecycle) GetActiveJob(ctx context.Context, jobID string) (*models.Job, error) {
	if _, err := l.SweepJob(ctx, jobID); err != nil {
		return nil, err
	}

	job, err := l.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	if job.IsArchived {
		return nil, apperr.NotFound("This job is no longer active.")
	}
	return job, nil
}

func (l *JobLifecycle) ListEmployerJobs(ctx context.Context, employerID string) ([]models.Job, error) {
	if _, err := l.SweepExpired(ctx, employerID); err != nil {
		return nil, err
	}

	jobs, err := l.jobs.Find(ctx, repositories.JobFilter{CreatedBy: employerID, IncludeArchived: true})
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	return jobs, nil
}

// jobEdit accumulates an edit on a copy of the job so a rejected request leaves the original untouched.
type jobEdit struct {
	current *models.Job
	next    *models.Job
	locked  bool
	columns []string
	frozen  []string
}

func newJobEdit(job *models.Job, locked bool) *jobEdit {
	next := *job
	return &jobEdit{current: job, next: &next, locked: locked}
}

func (e *jobEdit) changed(column string) bool {
	return lo.Contains(e.columns, column)
}

func (e *jobEdit) set(column string) {
	if !e.changed(column) {
		e.columns = append(e.columns, column)
	}
}

// frozenField records a locked field whose requested value differs from the stored one.
func (e *jobEdit) frozenField(name string, requested any, current any) {
	if strings.TrimSpace(fmt.Sprint(requested)) != strings.TrimSpace(fmt.Sprint(current)) {
		e.frozen = append(e.frozen, name)
	}
}

func (e *jobEdit) apply(update JobUpdate) error {
	if e.locked {
		e.checkFrozen(update)
		if len(e.frozen) > 0 {
			return apperr.Conflict(fmt.Sprintf(
				"Cannot change %s after applications have been received.", strings.Join(e.frozen, ", ")))
		}
	} else if err := e.applyStructural(update); err != nil {
		return err
	}

	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if description == "" {
			return apperr.Validation("description", "description is required.")
		}
		e.next.Description = description
		e.set("description")
	}

	if update.Requirements != nil {
		if err := e.applyRequirements(update.Requirements); err != nil {
			return err
		}
	}

	if update.Salary != nil {
		if err := e.applySalary(update.Salary); err != nil {
			return err
		}
	}

	if update.Deadline != nil {
		deadline, err := validation.ParseDeadline(*update.Deadline)
		if err != nil {
			return err
		}
		e.next.Deadline = deadline
		e.set("deadline")
	}

	return nil
}

func (e *jobEdit) checkFrozen(update JobUpdate) {
	if update.Title != nil {
		e.frozenField("title", *update.Title, e.current.Title)
	}
	if update.Location != nil {
		e.frozenField("location", *update.Location, e.current.Location)
	}
	if update.LocationType != nil {
		e.frozenField("locationType", *update.LocationType, e.current.LocationType)
	}
	if update.JobType != nil {
		e.frozenField("jobType", *update.JobType, e.current.JobType)
	}
	if update.ExperienceLevel != nil {
		e.frozenField("experienceLevel", update.ExperienceLevel, e.current.ExperienceLevel)
	}
	if update.Position != nil {
		e.frozenField("position", update.Position, e.current.Position)
	}
	if update.CompanyID != nil {
		e.frozenField("company", *update.CompanyID, e.current.CompanyID)
	}
}

func (e *jobEdit) applyStructural(update JobUpdate) error {
	texts := []struct {
		name   string
		column string
		value  *string
		target *string
	}{
		{"title", "title", update.Title, &e.next.Title},
		{"location", "location", update.Location, &e.next.Location},
		{"locationType", "location_type", update.LocationType, &e.next.LocationType},
		{"jobType", "job_type", update.JobType, &e.next.JobType},
		{"company", "company_id", update.CompanyID, &e.next.CompanyID},
	}
	for _, text := range texts {
		if text.value == nil {
			continue
		}
		value := strings.TrimSpace(*text.value)
		if value == "" {
			return apperr.Validationf(text.name, "%s is required.", text.name)
		}
		*text.target = value
		e.set(text.column)
	}

	if update.ExperienceLevel != nil {
		experience, err := validation.ParseExperienceLevel(update.ExperienceLevel)
		if err != nil {
			return err
		}
		e.next.ExperienceLevel = experience
		e.set("experience_level")
	}

	if update.Position != nil {
		position, err := validation.ParsePosition(update.Position)
		if err != nil {
			return err
		}
		e.next.Position = position
		e.set("position")
	}
	return nil
}

func (e *jobEdit) applyRequirements(input any) error {
	requirements, err := validation.ParseRequirements(input)
	if err != nil {
		return err
	}

	if e.locked {
		if len(requirements) < models.MinLockedRequirements || len(requirements) > models.MaxLockedRequirements {
			return apperr.Validationf(validation.FieldRequirements,
				"Requirements must contain between %d and %d entries once applications exist.",
				models.MinLockedRequirements, models.MaxLockedRequirements)
		}
	} else if len(requirements) == 0 {
		return apperr.Validation(validation.FieldRequirements, "At least one requirement is required.")
	}

	e.next.Requirements = requirements
	e.set("requirements")
	return nil
}

func (e *jobEdit) applySalary(input any) error {
	salary, err := validation.ParseSalary(input)
	if err != nil {
		return err
	}

	if e.locked {
		lower, upper := models.SalaryBand(e.current.SalaryAnchor())
		if salary < lower || salary > upper {
			return apperr.Validationf(validation.FieldSalary,
				"Salary can only be changed within 15%% of the locked salary: between %.2f and %.2f LPA.", lower, upper)
		}
	}

	e.next.Salary = salary
	e.set("salary")
	return nil
}
