package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/attendance"
	"hrpay/internal/domain/payroll"
	"hrpay/internal/domain/taxtable"
	"hrpay/internal/platform/jobs"
	"hrpay/internal/render"
)

func newSalaryCmd(e *env) *cobra.Command {
	var (
		profilePath    string
		attendancePath string
		year, month    int
	)
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Calculate one month's pay without storing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := readProfile(profilePath)
			if err != nil {
				return err
			}
			var records []attendance.Record
			if attendancePath != "" {
				punches, err := readPunches(attendancePath)
				if err != nil {
					return err
				}
				if records, err = confirmedRecords(punches, time.Now()); err != nil {
					return err
				}
			}
			table, err := taxtable.Load(e.cfg.TaxYear)
			if err != nil {
				return err
			}
			svc := payroll.NewService(nil, payroll.NewCalculator(table, payroll.DefaultRates()), nil, nil)
			y, m := periodFlags(year, month, time.Now())
			record, err := svc.Preview(profile, y, m, records)
			if err != nil {
				return err
			}
			return e.printJSON(record)
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "compensation profile JSON file")
	cmd.Flags().StringVar(&attendancePath, "attendance", "", "attendance punches JSON file")
	cmd.Flags().IntVar(&year, "year", 0, "pay year (default: last month's)")
	cmd.Flags().IntVar(&month, "month", 0, "pay month (default: last month)")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func newGenerateCmd(e *env) *cobra.Command {
	var (
		profilesPath string
		year, month  int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate draft payrolls for every profile from confirmed attendance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := readProfiles(profilesPath)
			if err != nil {
				return err
			}
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			y, m := periodFlags(year, month, time.Now())
			gen := a.Generator(jobs.StaticProfiles(profiles))
			summary, runErr := a.Jobs.RunNow(cmd.Context(), jobs.JobPayrollGeneration, func(ctx context.Context) (any, error) {
				return gen.GenerateMonth(ctx, y, m)
			})
			if err := e.printJSON(summary); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&profilesPath, "profiles", "", "JSON file with the profiles to pay")
	cmd.Flags().IntVar(&year, "year", 0, "pay year (default: last month's)")
	cmd.Flags().IntVar(&month, "month", 0, "pay month (default: last month)")
	_ = cmd.MarkFlagRequired("profiles")
	return cmd
}

func newConfirmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <payroll-id>",
		Short: "Confirm a draft payroll; confirmed payrolls are immutable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			record, err := a.Payroll.Confirm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.printJSON(record)
		},
	}
}

func newPayslipCmd(e *env) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "payslip <payroll-id>",
		Short: "Render a payroll as a PDF payslip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			record, err := a.Payroll.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = a.Config.PayslipDir
			}
			path, err := render.SavePayslip(outDir, record, a.Sealer)
			if err != nil {
				return err
			}
			return e.printJSON(map[string]string{"path": path})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: PAYSLIP_DIR)")
	return cmd
}

func newShowCmd(e *env) *cobra.Command {
	var (
		employeeID  string
		year, month int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored payroll of one employee and month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			y, m := periodFlags(year, month, time.Now())
			record, err := a.Payroll.Find(cmd.Context(), employeeID, y, m)
			if err != nil {
				return err
			}
			return e.printJSON(record)
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID")
	cmd.Flags().IntVar(&year, "year", 0, "pay year (default: last month's)")
	cmd.Flags().IntVar(&month, "month", 0, "pay month (default: last month)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
