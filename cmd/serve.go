package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/clients/redisbus"
	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/metrics"
	"github.com/Abhi1565/JobHunt-backend/internal/server"
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const sweepTimeout = time.Minute

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with the archive scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metricsServer := metrics.StartMetricsServer(cfg.Server.MetricsPort)

	stores, err := openStores(cfg.DB)
	if err != nil {
		return err
	}
	defer stores.db.Close()

	bus := EventBus.New()

	notifier, stopNotifications, err := buildNotifier(cfg, bus)
	if err != nil {
		return err
	}
	defer stopNotifications()

	if cfg.Redis.Enabled() {
		client, err := redisbus.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		forwarder := redisbus.NewForwarder(bus, client, cfg.Redis.Channel)
		if err := forwarder.Start(); err != nil {
			return err
		}
		defer forwarder.Stop()
	}

	svc := buildServices(cfg, stores, notifier, bus)

	scheduler, err := services.NewArchiveScheduler(svc.Lifecycle, cfg.Jobs.ArchiveSchedule, sweepTimeout)
	if err != nil {
		return err
	}
	httpServer := server.New(cfg.Server, cfg.Auth, svc)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(httpServer.Listen)
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down services...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		scheduler.Stop()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Warnf("metrics server shutdown: %v", err)
		}
		return httpServer.Shutdown(shutdownCtx)
	})
	scheduler.Start()

	err = g.Wait()
	log.Info("Services stopped.")
	return err
}
