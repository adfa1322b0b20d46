package repositories

import (
	"context"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
)

var transitionColumns = []string{
	"status",
	"interview_date",
	"interview_time",
	"interview_mode",
	"interview_location",
	"interview_meeting_link",
	"interview_notes",
	"version",
	"updated_at",
}

type Applications struct {
	store
}

func NewApplicationsRepository(c *DbContext) *Applications {
	return &Applications{store: newStore(c)}
}

// Create relies on the (job_id, applicant_id) unique index; a second insert fails with ErrDuplicate.
func (repo *Applications) Create(ctx context.Context, application *models.Application) error {
	db, cancel := repo.session(ctx)
	defer cancel()
	return translate(db.Omit("Job", "Applicant").Create(application).Error, "create application")
}

func (repo *Applications) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, translate(err, "check application")
}

func (repo *Applications) CountByJob(ctx context.Context, jobID string) (int64, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var count int64
	err := db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, translate(err, "count applications")
}

func (repo *Applications) GetByID(ctx context.Context, id string) (*models.Application, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var application models.Application
	if err := db.First(&application, "id = ?", id).Error; err != nil {
		return nil, translate(err, "get application")
	}
	return &application, nil
}

// ListByApplicant returns the applicant's applications with job and company, newest first.
func (repo *Applications) ListByApplicant(ctx context.Context, applicantID string) ([]models.Application, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var applications []models.Application
	err := db.Preload("Job.Company").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, translate(err, "list applications by applicant")
}

func (repo *Applications) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var applications []models.Application
	err := db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, translate(err, "list applications by job")
}

// SaveTransition persists status and interview detail if the stored version still equals expectedVersion.
// On success application.Version holds the new version.
func (repo *Applications) SaveTransition(ctx context.Context, application *models.Application, expectedVersion int) error {
	db, cancel := repo.session(ctx)
	defer cancel()

	application.Version = expectedVersion + 1
	res := db.Model(&models.Application{}).
		Where("id = ? AND version = ?", application.ID, expectedVersion).
		Select(transitionColumns).
		Updates(application)
	if res.Error != nil {
		application.Version = expectedVersion
		return translate(res.Error, "save application transition")
	}
	if res.RowsAffected == 0 {
		application.Version = expectedVersion
		return ErrVersionConflict
	}
	return nil
}

// FindOrphanIDs lists applications whose job no longer exists, optionally for one applicant.
func (repo *Applications) FindOrphanIDs(ctx context.Context, applicantID string) ([]string, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	query := db.Model(&models.Application{}).
		Joins("LEFT JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.id IS NULL")
	if applicantID != "" {
		query = query.Where("applications.applicant_id = ?", applicantID)
	}

	var ids []string
	err := query.Pluck("applications.id", &ids).Error
	return ids, translate(err, "find orphan applications")
}

func (repo *Applications) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db, cancel := repo.session(ctx)
	defer cancel()

	res := db.Where("id IN ?", ids).Delete(&models.Application{})
	return res.RowsAffected, translate(res.Error, "delete applications")
}
