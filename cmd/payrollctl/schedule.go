package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hrpay/internal/platform/jobs"
)

func newScheduleCmd(e *env) *cobra.Command {
	var profilesPath string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run monthly payroll generation on PAYROLL_CRON until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := readProfiles(profilesPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			a, err := e.open(ctx)
			if err != nil {
				return err
			}
			if err := a.Jobs.Start(ctx, a.Generator(jobs.StaticProfiles(profiles))); err != nil {
				return err
			}
			slog.Info("payroll schedule started", "cron", a.Config.PayrollCron, "profiles", len(profiles))
			<-ctx.Done()
			slog.Info("payroll schedule stopped", "metrics", a.Metrics.Snapshot())
			return nil
		},
	}
	cmd.Flags().StringVar(&profilesPath, "profiles", "", "JSON file with the profiles to pay")
	_ = cmd.MarkFlagRequired("profiles")
	return cmd
}
