package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"hrpay/internal/domain/withholding"
)

var withholdingHeader = []string{"Month", "Employees", "Gross", "Taxable", "Non-taxable", "Income tax", "Local income tax", "Total tax"}

// WithholdingXLSX writes one sheet with a row per month and a totals row.
func WithholdingXLSX(w io.Writer, yearly withholding.YearlySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Withholding %d", yearly.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return err
	}
	boldAmount, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 3})
	if err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, toAny(withholdingHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "H1", bold); err != nil {
		return err
	}

	row := 2
	for _, m := range yearly.Months {
		values := []any{fmt.Sprintf("%04d-%02d", m.Year, int(m.Month)), m.Employees, m.Gross, m.Taxable, m.NonTaxable, m.IncomeTax, m.LocalIncomeTax, m.TotalTax()}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("H%d", row-1), amount); err != nil {
			return err
		}
	}

	total := []any{"Total", yearly.Employees, yearly.Gross, yearly.Taxable, yearly.NonTaxable, yearly.IncomeTax, yearly.LocalIncomeTax, yearly.TotalTax()}
	if err := setRow(f, sheet, row, total); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), boldAmount); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "H", 16); err != nil {
		return err
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
