package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/domain/models"
	"gorm.io/gorm"
)

type JobFilter struct {
	Keyword         string
	CreatedBy       string
	IncludeArchived bool
	// Now excludes jobs past their deadline unless IncludeArchived is set.
	Now time.Time
}

type Jobs struct {
	store
}

func NewJobsRepository(c *DbContext) *Jobs {
	return &Jobs{store: newStore(c)}
}

func (repo *Jobs) Create(ctx context.Context, job *models.Job) error {
	db, cancel := repo.session(ctx)
	defer cancel()
	return translate(db.Omit("Company", "Applications").Create(job).Error, "create job")
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	var job models.Job
	err := db.Preload("Company").
		Preload("Applications", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at ASC") }).
		First(&job, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "get job")
	}
	return &job, nil
}

func (repo *Jobs) Find(ctx context.Context, filter JobFilter) ([]models.Job, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	query := db.Preload("Company").Order("created_at DESC")

	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}

	if !filter.IncludeArchived {
		query = query.Where("is_archived = ?", false)
		if !filter.Now.IsZero() {
			query = query.Where("deadline >= ?", filter.Now)
		}
	}

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER(location) LIKE ? ESCAPE '\\' "+
				"OR LOWER(job_type) LIKE ? ESCAPE '\\' OR LOWER(location_type) LIKE ? ESCAPE '\\'",
			pattern, pattern, pattern, pattern, pattern)
	}

	var jobs []models.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, translate(err, "find jobs")
	}
	return jobs, nil
}

// ArchiveExpired flips every unarchived job past its deadline in one conditional update,
// optionally scoped to a single employer.
func (repo *Jobs) ArchiveExpired(ctx context.Context, now time.Time, createdBy string) (int64, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	query := db.Model(&models.Job{}).Where("is_archived = ? AND deadline < ?", false, now)
	if createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}

	res := query.Updates(map[string]any{"is_archived": true, "archived_at": now})
	return res.RowsAffected, translate(res.Error, "archive expired jobs")
}

func (repo *Jobs) ArchiveIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	res := db.Model(&models.Job{}).
		Where("id = ? AND is_archived = ? AND deadline < ?", id, false, now).
		Updates(map[string]any{"is_archived": true, "archived_at": now})
	return res.RowsAffected > 0, translate(res.Error, "archive job")
}

// ActivateLock writes the lock snapshot only while no lock exists; false means another writer won.
func (repo *Jobs) ActivateLock(ctx context.Context, id string, core []string, salary float64, now time.Time) (bool, error) {
	db, cancel := repo.session(ctx)
	defer cancel()

	res := db.Model(&models.Job{}).
		Where("id = ? AND application_lock_activated_at IS NULL", id).
		Select("core_requirements", "locked_salary", "application_lock_activated_at").
		Updates(&models.Job{
			CoreRequirements:           core,
			LockedSalary:               &salary,
			ApplicationLockActivatedAt: &now,
		})
	return res.RowsAffected > 0, translate(res.Error, "activate job lock")
}

// UpdateFields writes the selected columns of job unless it was archived meanwhile.
func (repo *Jobs) UpdateFields(ctx context.Context, job *models.Job, columns []string) (bool, error) {
	if len(columns) == 0 {
		return true, nil
	}

	db, cancel := repo.session(ctx)
	defer cancel()

	res := db.Model(&models.Job{}).
		Where("id = ? AND is_archived = ?", job.ID, false).
		Select(columns).
		Updates(job)
	return res.RowsAffected > 0, translate(res.Error, "update job")
}

func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
