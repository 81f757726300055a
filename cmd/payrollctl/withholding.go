package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"hrpay/internal/domain/withholding"
	"hrpay/internal/render"
)

func newWithholdingCmd(e *env) *cobra.Command {
	var (
		year     int
		xlsxPath string
	)
	cmd := &cobra.Command{
		Use:   "withholding",
		Short: "Summarize withheld taxes of confirmed payrolls for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if year == 0 {
				year = time.Now().Year()
			}
			a, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.Payroll.ListYear(cmd.Context(), year)
			if err != nil {
				return err
			}
			yearly := withholding.Yearly(year, withholding.ConfirmedOnly(records))
			if xlsxPath == "" {
				return e.printJSON(yearly)
			}
			f, err := os.Create(xlsxPath)
			if err != nil {
				return err
			}
			if err := render.WithholdingXLSX(f, yearly); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return e.printJSON(map[string]string{"path": xlsxPath})
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "tax year (default: current)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the summary as an XLSX workbook to this path")
	return cmd
}
