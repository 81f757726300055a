package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"hrpay/internal/domain/payroll"
)

type line struct {
	label  string
	amount int64
}

// PayslipPDF writes a one-page payslip for record.
func PayslipPDF(w io.Writer, record payroll.Record) error {
	s := record.Salary
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+record.Period().String(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip "+record.Period().String())
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	name := record.Profile.Name
	if name == "" {
		name = record.EmployeeID
	}
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", name, record.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s   Tax year: %d   Hourly rate: %s", record.Status, s.TaxYear, won(s.HourlyRate)))
	pdf.Ln(10)

	table(pdf, "Earnings", []line{
		{"Base pay", s.BasePay},
		{"Meal allowance", s.MealAllowance},
		{"Transport allowance", s.TransportAllowance},
		{"Position allowance", s.PositionAllowance},
		{"Fixed overtime", s.FixedOvertimePay},
		{"Overtime (" + hours(s.Premiums.OvertimeMinutes) + ")", s.Premiums.OvertimePay},
		{"Night work (" + hours(s.Premiums.NightMinutes) + ")", s.Premiums.NightPay},
		{"Holiday work (" + hours(s.Premiums.HolidayMinutes) + ")", s.Premiums.HolidayPay},
	}, line{"Total gross", s.TotalGross})

	table(pdf, "Deductions", []line{
		{"National pension", s.Insurance.NationalPension},
		{"Health insurance", s.Insurance.HealthInsurance},
		{"Long-term care", s.Insurance.LongTermCare},
		{"Employment insurance", s.Insurance.EmploymentInsurance},
		{"Income tax", s.IncomeTax},
		{"Local income tax", s.LocalIncomeTax},
	}, line{"Total deductions", s.TotalDeductions})

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Taxable: %s   Tax exempt: %s", won(s.TotalTaxable), won(s.TaxExempt)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(120, 9, "Net pay")
	pdf.CellFormat(60, 9, won(s.NetSalary), "", 0, "R", false, 0, "")
	pdf.Ln(12)

	if len(s.Caveats) > 0 {
		pdf.SetFont("Helvetica", "I", 9)
		for _, caveat := range s.Caveats {
			pdf.MultiCell(0, 5, "Note: "+caveat, "", "L", false)
		}
	}

	return pdf.Output(w)
}

func table(pdf *gofpdf.Fpdf, title string, lines []line, total line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		if l.amount == 0 {
			continue
		}
		pdf.CellFormat(120, 6, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, won(l.amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, total.label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, won(total.amount), "T", 1, "R", false, 0, "")
	pdf.Ln(4)
}

// SavePayslip writes the payslip under dir. When the sealer is configured
// only the encrypted ".pdf.enc" file is kept.
func SavePayslip(dir string, record payroll.Record, sealer payroll.Sealer) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, fmt.Sprintf("%s-%s.pdf", record.EmployeeID, record.Period()))

	if c, ok := sealer.(interface{ Configured() bool }); ok && !c.Configured() {
		sealer = nil
	}
	if sealer == nil {
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return "", err
		}
		if err := PayslipPDF(file, record); err != nil {
			file.Close()
			return "", err
		}
		return filePath, file.Close()
	}

	var buf bytes.Buffer
	if err := PayslipPDF(&buf, record); err != nil {
		return "", err
	}
	encrypted, err := sealer.Encrypt(buf.Bytes())
	if err != nil {
		return "", err
	}
	encryptedPath := filePath + ".enc"
	if err := os.WriteFile(encryptedPath, encrypted, 0o600); err != nil {
		return "", err
	}
	return encryptedPath, nil
}
