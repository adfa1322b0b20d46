package services

import (
	"context"
	"errors"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type applicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
}

type userRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type orphanCleaner interface {
	Clean(ctx context.Context, applicantID string) (int64, error)
}

const duplicateApplicationMessage = "You have already applied for this job."

type JobApplications struct {
	lifecycle    *JobLifecycle
	jobs         jobRepository
	applications applicationRepository
	users        userRepository
	orphans      orphanCleaner
}

// NewJobApplications accepts a nil cleaner, in which case orphaned applications are only filtered out.
func NewJobApplications(lifecycle *JobLifecycle, jobs jobRepository, applications applicationRepository,
	users userRepository, orphans orphanCleaner) *JobApplications {

	return &JobApplications{
		lifecycle:    lifecycle,
		jobs:         jobs,
		applications: applications,
		users:        users,
		orphans:      orphans,
	}
}

// Apply creates the application and activates the job's lock on the first one.
func (s *JobApplications) Apply(ctx context.Context, applicantID, jobID string) (*models.Application, error) {
	if jobID == "" {
		return nil, rejected("apply", apperr.Validation("id", "Job id is required."))
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, rejected("apply", storeError(err, "Job not found."))
	}

	archived, err := s.lifecycle.SweepJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if archived || job.IsArchived {
		return nil, rejected("apply", apperr.Conflict("This job has been archived and is no longer accepting applications."))
	}

	exists, err := s.applications.Exists(ctx, jobID, applicantID)
	if err != nil {
		return nil, storeError(err, "Job not found.")
	}
	if exists {
		return nil, rejected("apply", apperr.Conflict(duplicateApplicationMessage))
	}

	user, err := s.users.GetByID(ctx, applicantID)
	if err != nil {
		return nil, rejected("apply", storeError(err, "User not found."))
	}
	if !user.HasResume() {
		return nil, rejected("apply", apperr.Validation("resume", "Please upload your resume in your profile before applying."))
	}

	application := models.NewApplication(jobID, applicantID)
	if err := s.applications.Create(ctx, application); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, rejected("apply", apperr.Conflict(duplicateApplicationMessage))
		}
		return nil, storeError(err, "Job not found.")
	}
	metrics.ApplicationsCounter.Inc()

	// a failed activation is retried by the next edit of a job with applicants
	if err := s.lifecycle.InitializeApplicantLocks(ctx, job); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("application %s created but lock activation for job %s failed: %v", application.ID, jobID, err)
	}

	log.Infof("user %s applied for job %s", applicantID, jobID)
	return application, nil
}

// ListApplied runs orphan cleanup for the applicant before listing, newest first.
func (s *JobApplications) ListApplied(ctx context.Context, applicantID string) ([]models.Application, error) {
	if s.orphans != nil {
		if _, err := s.orphans.Clean(ctx, applicantID); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Warnf("orphan cleanup for %s failed: %v", applicantID, err)
		}
	}

	applications, err := s.applications.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, storeError(err, "No applications found.")
	}

	return lo.Filter(applications, func(a models.Application, _ int) bool { return a.Job != nil }), nil
}

func (s *JobApplications) ListApplicants(ctx context.Context, employerID, jobID string) (*models.Job, []models.Application, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, storeError(err, "Job not found.")
	}
	if job.CreatedBy != employerID {
		return nil, nil, apperr.Authorization("You are not authorized to view applicants for this job.")
	}

	applications, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, nil, storeError(err, "Job not found.")
	}
	return job, applications, nil
}
