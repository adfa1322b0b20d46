package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinLockedRequirements = 2
	MaxLockedRequirements = 10
	SalaryTolerance       = 0.15
)

type Job struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"not null" json:"description"`
	Requirements    []string  `gorm:"serializer:json" json:"requirements"`
	Salary          float64   `gorm:"not null" json:"salary"`
	ExperienceLevel int       `gorm:"not null" json:"experienceLevel"`
	Location        string    `gorm:"not null" json:"location"`
	LocationType    string    `gorm:"not null" json:"locationType"`
	JobType         string    `gorm:"not null" json:"jobType"`
	Position        int       `gorm:"not null" json:"position"`
	CompanyID       string    `gorm:"type:varchar(36);index;not null" json:"companyId"`
	CreatedBy       string    `gorm:"type:varchar(36);index;not null" json:"createdBy"`
	Deadline        time.Time `gorm:"index;not null" json:"deadline"`

	IsArchived bool       `gorm:"index;not null;default:false" json:"isArchived"`
	ArchivedAt *time.Time `json:"archivedAt"`

	ApplicationLockActivatedAt *time.Time `json:"applicationLockActivatedAt"`
	CoreRequirements           []string   `gorm:"serializer:json" json:"coreRequirements"`
	LockedSalary               *float64   `json:"lockedSalary"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	// Applications is loaded oldest first on single-job reads.
	Applications []Application `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

func NewJob(createdBy, companyID string) *Job {
	return &Job{
		ID:           uuid.NewString(),
		CreatedBy:    createdBy,
		CompanyID:    companyID,
		Requirements: []string{},
	}
}

func (j *Job) IsLocked() bool {
	return j.ApplicationLockActivatedAt != nil
}

// IsExpired reports whether the deadline passed but the sweep has not archived the job yet.
func (j *Job) IsExpired(now time.Time) bool {
	return !j.IsArchived && !j.Deadline.IsZero() && j.Deadline.Before(now)
}

// SalaryAnchor is the salary that bounds renegotiation: the locked snapshot, or the current salary
// when the lock was activated by the same request.
func (j *Job) SalaryAnchor() float64 {
	if j.LockedSalary != nil {
		return *j.LockedSalary
	}
	return j.Salary
}

// CoreRequirements returns the first ceil(0.7n) requirements, order preserved.
func CoreRequirements(requirements []string) []string {
	count := (7*len(requirements) + 9) / 10
	core := make([]string, count)
	copy(core, requirements[:count])
	return core
}

// SalaryBand returns the inclusive renegotiation bounds around anchor, rounded to 2 decimals.
func SalaryBand(anchor float64) (float64, float64) {
	return RoundSalary(anchor * (1 - SalaryTolerance)), RoundSalary(anchor * (1 + SalaryTolerance))
}

func RoundSalary(value float64) float64 {
	return math.Round(value*100) / 100
}
