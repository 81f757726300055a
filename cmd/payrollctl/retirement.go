package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/retirement"
)

func newSeveranceCmd(e *env) *cobra.Command {
	var (
		employeeID, hired, reference string
		base, allowances             int64
	)
	cmd := &cobra.Command{
		Use:   "severance",
		Short: "Estimate statutory severance from confirmed payrolls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			hireDate, err := parseDate("hire-date", hired)
			if err != nil {
				return err
			}
			referenceDate := time.Now()
			if reference != "" {
				if referenceDate, err = parseDate("reference-date", reference); err != nil {
					return err
				}
			}
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			trailing, err := a.Payroll.Trailing(cmd.Context(), employeeID, referenceDate.Year(), referenceDate.Month(), retirement.TrailingWindowMonths)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("base") || !cmd.Flags().Changed("allowances") {
				profile, found, err := a.Payroll.LatestConfirmedProfile(cmd.Context(), employeeID, referenceDate.Year(), referenceDate.Month())
				if err != nil {
					return err
				}
				if !found {
					slog.Warn("no confirmed payroll for ordinary wage floor", "employeeId", employeeID)
				}
				if !cmd.Flags().Changed("base") {
					base = profile.BaseSalary
				}
				if !cmd.Flags().Changed("allowances") {
					allowances = profile.RegularAllowances()
				}
			}
			estimate, err := retirement.EstimateSeverance(retirement.SeveranceInput{
				HireDate:          hireDate,
				ReferenceDate:     referenceDate,
				BaseSalary:        base,
				RegularAllowances: allowances,
				Trailing:          trailing,
			})
			if err != nil {
				return err
			}
			return e.printJSON(estimate)
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID")
	cmd.Flags().StringVar(&hired, "hire-date", "", "hire date YYYY-MM-DD")
	cmd.Flags().StringVar(&reference, "reference-date", "", "separation date YYYY-MM-DD (default: today)")
	cmd.Flags().Int64Var(&base, "base", 0, "monthly base salary for the ordinary wage floor (default: latest confirmed payroll)")
	cmd.Flags().Int64Var(&allowances, "allowances", 0, "regular monthly allowances for the ordinary wage floor (default: latest confirmed payroll)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("hire-date")
	return cmd
}

func newPensionCmd(e *env) *cobra.Command {
	var (
		employeeID  string
		year, month int
	)
	cmd := &cobra.Command{
		Use:   "pension",
		Short: "Estimate defined-contribution pension payments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			y, m := year, time.Month(month)
			if y == 0 || m == 0 {
				y, m = now.Year(), now.Month()
			}
			trailing, err := a.Payroll.Trailing(cmd.Context(), employeeID, y, m, retirement.TrailingWindowMonths)
			if err != nil {
				return err
			}
			estimate, err := retirement.EstimateDC(trailing)
			if err != nil {
				return err
			}
			return e.printJSON(estimate)
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee", "", "employee ID")
	cmd.Flags().IntVar(&year, "year", 0, "reference year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "reference month (default: current)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
