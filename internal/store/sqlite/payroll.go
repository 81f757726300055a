package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hrpay/internal/domain/payroll"
)

type PayrollStore struct {
	db     *sql.DB
	sealer payroll.Sealer
}

const payrollColumns = `id, employee_id, year, month, status, snapshot, confirmed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PayrollStore) scan(row rowScanner) (payroll.Record, error) {
	var (
		record               payroll.Record
		month                int
		status               string
		data                 []byte
		confirmedAt          sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&record.ID, &record.EmployeeID, &record.Year, &month, &status, &data, &confirmedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return payroll.Record{}, payroll.ErrNotFound
		}
		return payroll.Record{}, err
	}
	record.Month = time.Month(month)
	record.Status = payroll.Status(status)

	var err error
	if record.ConfirmedAt, err = parseTimePtr(confirmedAt); err != nil {
		return payroll.Record{}, err
	}
	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return payroll.Record{}, err
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return payroll.Record{}, err
	}
	if err := payroll.DecodeSnapshot(data, s.sealer, &record); err != nil {
		return payroll.Record{}, err
	}
	return record, nil
}

func (s *PayrollStore) Create(ctx context.Context, record payroll.Record) error {
	data, err := payroll.EncodeSnapshot(record, s.sealer)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payroll_records (id, employee_id, year, month, status, confirmed, snapshot,
			total_gross, total_taxable, income_tax, local_income_tax, net_salary, confirmed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (employee_id, year, month) DO NOTHING
	`, record.ID, record.EmployeeID, record.Year, int(record.Month), string(record.Status), record.Confirmed(), data,
		record.Salary.TotalGross, record.Salary.TotalTaxable, record.Salary.IncomeTax, record.Salary.LocalIncomeTax, record.Salary.NetSalary,
		formatTimePtr(record.ConfirmedAt), formatTime(record.CreatedAt), formatTime(record.UpdatedAt))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return payroll.ErrDuplicatePayroll
	}
	return nil
}

func (s *PayrollStore) Get(ctx context.Context, id string) (payroll.Record, error) {
	return s.scan(s.db.QueryRowContext(ctx, `SELECT `+payrollColumns+` FROM payroll_records WHERE id = ?`, id))
}

func (s *PayrollStore) Find(ctx context.Context, employeeID string, year int, month time.Month) (payroll.Record, error) {
	return s.scan(s.db.QueryRowContext(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll_records
		WHERE employee_id = ? AND year = ? AND month = ?
	`, employeeID, year, int(month)))
}

func (s *PayrollStore) Update(ctx context.Context, record payroll.Record) error {
	data, err := payroll.EncodeSnapshot(record, s.sealer)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE payroll_records
		SET snapshot = ?, total_gross = ?, total_taxable = ?, income_tax = ?,
			local_income_tax = ?, net_salary = ?, updated_at = ?
		WHERE id = ? AND confirmed = 0
	`, data, record.Salary.TotalGross, record.Salary.TotalTaxable, record.Salary.IncomeTax, record.Salary.LocalIncomeTax, record.Salary.NetSalary,
		formatTime(time.Now()), record.ID)
	if err != nil {
		return err
	}
	return s.guarded(ctx, res, record.ID)
}

func (s *PayrollStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payroll_records WHERE id = ? AND confirmed = 0`, id)
	if err != nil {
		return err
	}
	return s.guarded(ctx, res, id)
}

func (s *PayrollStore) Confirm(ctx context.Context, id string, at time.Time) (payroll.Record, bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payroll_records
		SET confirmed = 1, status = ?, confirmed_at = ?, updated_at = ?
		WHERE id = ? AND confirmed = 0
	`, string(payroll.StatusConfirmed), formatTime(at), formatTime(at), id)
	if err != nil {
		return payroll.Record{}, false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return payroll.Record{}, false, err
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return payroll.Record{}, false, err
	}
	return record, affected == 1, nil
}

func (s *PayrollStore) ListYear(ctx context.Context, year int) ([]payroll.Record, error) {
	return s.list(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll_records
		WHERE year = ?
		ORDER BY month, employee_id
	`, year)
}

func (s *PayrollStore) ListEmployee(ctx context.Context, employeeID string) ([]payroll.Record, error) {
	return s.list(ctx, `
		SELECT `+payrollColumns+`
		FROM payroll_records
		WHERE employee_id = ?
		ORDER BY year, month
	`, employeeID)
}

func (s *PayrollStore) list(ctx context.Context, query string, args ...any) ([]payroll.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		record, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// guarded maps a zero-row guarded mutation to the reason it did not apply.
func (s *PayrollStore) guarded(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var confirmed bool
	err = s.db.QueryRowContext(ctx, `SELECT confirmed FROM payroll_records WHERE id = ?`, id).Scan(&confirmed)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return payroll.ErrNotFound
	case err != nil:
		return err
	case confirmed:
		return payroll.ErrRecordConfirmed
	}
	return payroll.ErrNotFound
}
