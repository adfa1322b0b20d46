package services

import (
	"context"

	log "github.com/sirupsen/logrus"
)

type orphanRepository interface {
	FindOrphanIDs(ctx context.Context, applicantID string) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// OrphanCleaner removes applications whose job no longer exists.
type OrphanCleaner struct {
	applications orphanRepository
	enabled      bool
}

func NewOrphanCleaner(applications orphanRepository, enabled bool) *OrphanCleaner {
	return &OrphanCleaner{applications: applications, enabled: enabled}
}

// Clean is scoped to one applicant unless applicantID is empty. A disabled cleaner does nothing.
func (c *OrphanCleaner) Clean(ctx context.Context, applicantID string) (int64, error) {
	if c == nil || !c.enabled {
		return 0, nil
	}

	ids, err := c.applications.FindOrphanIDs(ctx, applicantID)
	if err != nil {
		return 0, err
	}

	removed, err := c.applications.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		log.Infof("removed %d orphaned applications", removed)
	}
	return removed, nil
}
