// Package render writes payroll documents: PDF payslips and the yearly
// withholding workbook.
package render

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// won formats an amount with thousands separators, e.g. 2,500,166.
func won(amount int64) string {
	return humanize.Comma(amount)
}

func hours(minutes int) string {
	return strconv.FormatFloat(float64(minutes)/60, 'f', 1, 64) + "h"
}
