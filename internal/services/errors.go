package services

import (
	"errors"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	log "github.com/sirupsen/logrus"
)

// storeError turns repository failures into taxonomy errors. Unexpected failures are logged and returned as-is.
func storeError(err error, notFoundMessage string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound(notFoundMessage)
	}
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("store failure: %v", err)
	return err
}

// rejected counts a request refused before mutation and passes the error through.
func rejected(operation string, err error) error {
	metrics.RejectedRequestsCounter.WithLabelValues(operation, apperr.KindOf(err).String()).Inc()
	return err
}

func utcNow() time.Time {
	return time.Now().UTC()
}
