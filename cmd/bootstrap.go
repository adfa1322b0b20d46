package main

import (
	"context"

	"github.com/Abhi1565/JobHunt-backend/internal/clients/mailer"
	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/repositories"
	"github.com/Abhi1565/JobHunt-backend/internal/server"
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type stores struct {
	db           *repositories.DbContext
	jobs         *repositories.Jobs
	applications *repositories.Applications
	users        *repositories.Users
	companies    *repositories.Companies
	contacts     *repositories.CachedContacts
}

func openStores(cfg config.DBConfig) (*stores, error) {
	dbContext, err := repositories.NewDbContext(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "can't create db context")
	}

	if err := dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		return nil, errors.Wrap(err, "can't migrate db context")
	}

	users := repositories.NewUsersRepository(dbContext)
	return &stores{
		db:           dbContext,
		jobs:         repositories.NewJobsRepository(dbContext),
		applications: repositories.NewApplicationsRepository(dbContext),
		users:        users,
		companies:    repositories.NewCompaniesRepository(dbContext),
		contacts:     repositories.NewCachedContacts(users),
	}, nil
}

// buildNotifier returns the notifier for the configured mode and a function that drains it.
func buildNotifier(cfg *config.Config, bus EventBus.Bus) (services.Notifier, func(), error) {
	switch cfg.Notifications.Mode {
	case config.NotificationsDisabled:
		log.Warn("notifications are disabled, applicants will not be emailed")
		return services.NopNotifier{}, func() {}, nil
	case config.NotificationsSync:
		return newMailer(cfg.SMTP), func() {}, nil
	case config.NotificationsAsync:
		relay := services.NewNotificationRelay(bus, newMailer(cfg.SMTP), cfg.Notifications.SendTimeout)
		if err := relay.Start(); err != nil {
			return nil, nil, errors.Wrap(err, "can't start notification relay")
		}
		return services.NewBusNotifier(bus), relay.Stop, nil
	default:
		return nil, nil, errors.Errorf("unknown notifications mode %q", cfg.Notifications.Mode)
	}
}

func newMailer(cfg config.SMTPConfig) *mailer.Mailer {
	return mailer.NewMailer(mailer.NewSMTPSender(cfg), cfg.AppName)
}

func buildServices(cfg *config.Config, s *stores, notifier services.Notifier, bus EventBus.BusPublisher) server.Services {
	lifecycle := services.NewJobLifecycle(s.jobs, s.applications, s.companies)
	orphans := services.NewOrphanCleaner(s.applications, cfg.Jobs.OrphanCleanup)

	return server.Services{
		Lifecycle:    lifecycle,
		Applications: services.NewJobApplications(lifecycle, s.jobs, s.applications, s.users, orphans),
		Transitions:  services.NewApplicationTransitions(s.applications, s.jobs, s.contacts, s.companies, notifier, bus),
		Companies:    services.NewCompanyRegistry(s.companies),
		Profiles:     services.NewProfiles(s.users, s.contacts),
		Health:       func(ctx context.Context) error { return s.db.Ping(ctx) },
	}
}
