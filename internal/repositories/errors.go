package repositories

import (
	"context"
	"strings"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicate       = errors.New("duplicate record")
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// translate maps driver errors onto repository sentinels; store timeouts become transient failures.
func translate(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return errors.Wrap(ErrDuplicate, operation)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Transient("The data store did not respond in time. Please retry.", errors.Wrap(err, operation))
	default:
		return errors.Wrap(err, operation)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
