package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/leave"
)

func newLeaveCmd(e *env) *cobra.Command {
	var (
		joined, on, file string
	)
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Show an annual leave balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			joinDate, err := parseDate("join-date", joined)
			if err != nil {
				return err
			}
			referenceDate := time.Now()
			if on != "" {
				if referenceDate, err = parseDate("on", on); err != nil {
					return err
				}
			}
			var records []leave.Record
			if file != "" {
				var lines []leaveLine
				if err := readJSON(file, &lines); err != nil {
					return err
				}
				for i, line := range lines {
					record, err := line.record()
					if err != nil {
						return fmt.Errorf("leave %d: %w", i, err)
					}
					records = append(records, record)
				}
			}
			return e.printJSON(leave.Summary(joinDate, referenceDate, records))
		},
	}
	cmd.Flags().StringVar(&joined, "join-date", "", "join date YYYY-MM-DD")
	cmd.Flags().StringVar(&on, "on", "", "reference date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&file, "file", "", "leave requests JSON file")
	_ = cmd.MarkFlagRequired("join-date")
	return cmd
}
