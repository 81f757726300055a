package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/attendance"
)

func newAttendanceCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record and confirm attendance",
	}
	cmd.AddCommand(newAttendanceImportCmd(e), newAttendanceConfirmCmd(e), newAttendanceDeleteCmd(e))
	return cmd
}

func newAttendanceImportCmd(e *env) *cobra.Command {
	var (
		file    string
		confirm bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store punches from a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			punches, err := readPunches(file)
			if err != nil {
				return err
			}
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			stored := make([]attendance.Record, 0, len(punches))
			for i, p := range punches {
				in, err := p.input()
				if err != nil {
					return fmt.Errorf("punch %d: %w", i, err)
				}
				record, err := a.Attendance.Record(cmd.Context(), in)
				if err != nil {
					return fmt.Errorf("punch %d: %w", i, err)
				}
				if confirm {
					if record, err = a.Attendance.Confirm(cmd.Context(), record.ID); err != nil {
						return fmt.Errorf("punch %d: %w", i, err)
					}
				}
				stored = append(stored, record)
			}
			return e.printJSON(stored)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "attendance punches JSON file")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm each record after storing it")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newAttendanceConfirmCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <record-id>",
		Short: "Confirm an attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			record, err := a.Attendance.Confirm(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return e.printJSON(record)
		},
	}
}

func newAttendanceDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete an unconfirmed attendance record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			return a.Attendance.Delete(cmd.Context(), args[0])
		},
	}
}
