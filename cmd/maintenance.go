package main

import (
	"fmt"
	"time"

	"github.com/Abhi1565/JobHunt-backend/internal/config"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/Abhi1565/JobHunt-backend/internal/server"
	"github.com/Abhi1565/JobHunt-backend/internal/services"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Archive every job whose deadline has passed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()
		logger.Setup(cmd.Context(), cfg.Logger)
		defer logger.Cleanup()

		stores, err := openStores(cfg.DB)
		if err != nil {
			return err
		}
		defer stores.db.Close()

		lifecycle := services.NewJobLifecycle(stores.jobs, stores.applications, stores.companies)
		scheduler, err := services.NewArchiveScheduler(lifecycle, cfg.Jobs.ArchiveSchedule, sweepTimeout)
		if err != nil {
			return err
		}

		archived, err := scheduler.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived %d jobs\n", archived)
		return nil
	},
}

var orphanApplicant string

var cleanupOrphansCmd = &cobra.Command{
	Use:   "cleanup-orphans",
	Short: "Delete applications whose job no longer exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()
		logger.Setup(cmd.Context(), cfg.Logger)
		defer logger.Cleanup()

		stores, err := openStores(cfg.DB)
		if err != nil {
			return err
		}
		defer stores.db.Close()

		removed, err := services.NewOrphanCleaner(stores.applications, true).Clean(cmd.Context(), orphanApplicant)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d orphaned applications\n", removed)
		return nil
	},
}

var (
	tokenUserID string
	tokenTTL    time.Duration
)

var issueTokenCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Sign an identity token for a user id",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Get()
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Auth.TokenTTL
		}

		token, err := server.IssueToken(cfg.Auth.SecretKey, tokenUserID, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	cleanupOrphansCmd.Flags().StringVar(&orphanApplicant, "applicant", "", "Only clean applications of this applicant")

	issueTokenCmd.Flags().StringVar(&tokenUserID, "user", "", "User id to put in the userId claim (required)")
	issueTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime, defaults to auth.token_ttl")
	_ = issueTokenCmd.MarkFlagRequired("user")
}
