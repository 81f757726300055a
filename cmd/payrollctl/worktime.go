package main

import (
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/attendance"
)

type worktimeReport struct {
	Weeks  []attendance.WeeklyCheck `json:"weeks"`
	Totals attendance.MonthlyTotals `json:"totals"`
}

func newWorktimeCmd(e *env) *cobra.Command {
	var (
		clockIn, clockOut, file string
		breakMinutes            int
	)
	cmd := &cobra.Command{
		Use:   "worktime",
		Short: "Classify a shift, or check weekly hours of a punch file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				worked, err := attendance.Classify(clockIn, clockOut, breakMinutes)
				if err != nil {
					return err
				}
				return e.printJSON(worked)
			}
			punches, err := readPunches(file)
			if err != nil {
				return err
			}
			records, err := confirmedRecords(punches, time.Now())
			if err != nil {
				return err
			}
			return e.printJSON(worktimeReport{
				Weeks:  attendance.ValidateWeeks(records),
				Totals: attendance.Totals(records),
			})
		},
	}
	cmd.Flags().StringVar(&clockIn, "in", "", "clock-in HH:mm")
	cmd.Flags().StringVar(&clockOut, "out", "", "clock-out HH:mm")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "break minutes")
	cmd.Flags().StringVar(&file, "file", "", "attendance punches JSON file")
	cmd.MarkFlagsRequiredTogether("in", "out")
	cmd.MarkFlagsOneRequired("in", "file")
	cmd.MarkFlagsMutuallyExclusive("in", "file")
	return cmd
}
