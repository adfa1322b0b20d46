package services

import (
	"context"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredJobsSweeper interface {
	SweepExpired(ctx context.Context, employerID string) (int64, error)
}

// ArchiveScheduler runs the archival sweep periodically so jobs close even without read traffic.
type ArchiveScheduler struct {
	sweeper  expiredJobsSweeper
	cron     *cron.Cron
	schedule string
	timeout  time.Duration
}

func NewArchiveScheduler(sweeper expiredJobsSweeper, schedule string, timeout time.Duration) (*ArchiveScheduler, error) {

	if timeout <= 0 {
		return nil, errors.New("sweep timeout must be greater than zero")
	}

	s := &ArchiveScheduler{
		sweeper:  sweeper,
		cron:     cron.New(),
		schedule: schedule,
		timeout:  timeout,
	}

	_, err := s.cron.AddFunc(schedule, s.sweep)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid archive schedule %q", schedule)
	}

	return s, nil
}

func (s *ArchiveScheduler) Start() {
	s.cron.Start()
	log.Infof("archive scheduler started, schedule: %s", s.schedule)
}

// Stop waits for a running sweep to finish.
func (s *ArchiveScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce sweeps immediately and reports the number of archived jobs.
func (s *ArchiveScheduler) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	archived, err := s.sweeper.SweepExpired(ctx, "")
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	return archived, err
}

func (s *ArchiveScheduler) sweep() {
	archived, err := s.RunOnce(context.Background())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("Failed to archive expired jobs: %v", err)
	} else {
		log.Infof("Expired jobs were archived at %v, affected rows: %v", time.Now(), archived)
	}
}
