package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"hrpay/internal/app"
	"hrpay/internal/platform/config"
)

// env holds what subcommands share. The application is opened lazily so
// pure calculations never touch a store.
type env struct {
	cfg config.Config
	out io.Writer
	app *app.App
}

func (e *env) open(ctx context.Context) (*app.App, error) {
	if e.app != nil {
		return e.app, nil
	}
	a, err := app.Open(ctx, e.cfg)
	if err != nil {
		return nil, err
	}
	e.app = a
	return a, nil
}

func (e *env) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
}

func (e *env) printJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newEnv() *env {
	return &env{out: os.Stdout}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:          "payrollctl",
		Short:        "Korean payroll, withholding and retirement calculations",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			e.cfg = config.Load()
			e.out = cmd.OutOrStdout()
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: e.cfg.SlogLevel()}))
			slog.SetDefault(logger)
		},
	}
	root.AddCommand(
		newSalaryCmd(e),
		newAttendanceCmd(e),
		newGenerateCmd(e),
		newShowCmd(e),
		newConfirmCmd(e),
		newPayslipCmd(e),
		newSeveranceCmd(e),
		newPensionCmd(e),
		newLeaveCmd(e),
		newWithholdingCmd(e),
		newWorktimeCmd(e),
		newScheduleCmd(e),
	)
	return root
}
