package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrpay/internal/platform/querier"
)

// Store is the Postgres implementation of StoreAPI.
type Store struct {
	DB     querier.Querier
	Sealer Sealer
}

func NewStore(db querier.Querier, sealer Sealer) *Store {
	return &Store{DB: db, Sealer: sealer}
}

const recordColumns = `id, employee_id, year, month, status, snapshot, confirmed_at, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanRecord(row rowScanner) (Record, error) {
	var record Record
	var month int
	var status string
	var data []byte
	if err := row.Scan(&record.ID, &record.EmployeeID, &record.Year, &month, &status, &data, &record.ConfirmedAt, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	record.Month = time.Month(month)
	record.Status = Status(status)
	if err := DecodeSnapshot(data, s.Sealer, &record); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *Store) Create(ctx context.Context, record Record) error {
	data, err := EncodeSnapshot(record, s.Sealer)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO payroll_records (id, employee_id, year, month, status, confirmed, snapshot,
      total_gross, total_taxable, income_tax, local_income_tax, net_salary, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    ON CONFLICT (employee_id, year, month) DO NOTHING
  `, record.ID, record.EmployeeID, record.Year, int(record.Month), string(record.Status), record.Confirmed(), data,
		record.Salary.TotalGross, record.Salary.TotalTaxable, record.Salary.IncomeTax, record.Salary.LocalIncomeTax, record.Salary.NetSalary,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDuplicatePayroll
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return s.scanRecord(s.DB.QueryRow(ctx, `SELECT `+recordColumns+` FROM payroll_records WHERE id = $1`, id))
}

func (s *Store) Find(ctx context.Context, employeeID string, year int, month time.Month) (Record, error) {
	return s.scanRecord(s.DB.QueryRow(ctx, `
    SELECT `+recordColumns+`
    FROM payroll_records
    WHERE employee_id = $1 AND year = $2 AND month = $3
  `, employeeID, year, int(month)))
}

func (s *Store) Update(ctx context.Context, record Record) error {
	data, err := EncodeSnapshot(record, s.Sealer)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE payroll_records
    SET snapshot = $2, total_gross = $3, total_taxable = $4, income_tax = $5,
        local_income_tax = $6, net_salary = $7, updated_at = now()
    WHERE id = $1 AND confirmed = false
  `, record.ID, data, record.Salary.TotalGross, record.Salary.TotalTaxable, record.Salary.IncomeTax, record.Salary.LocalIncomeTax, record.Salary.NetSalary)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missOrConfirmed(ctx, record.ID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1 AND confirmed = false`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return s.missOrConfirmed(ctx, id)
	}
	return nil
}

// Confirm flips the record once. Concurrent confirmations coalesce: the
// losers read back the already-confirmed row and report no transition.
func (s *Store) Confirm(ctx context.Context, id string, at time.Time) (Record, bool, error) {
	record, err := s.scanRecord(s.DB.QueryRow(ctx, `
    UPDATE payroll_records
    SET confirmed = true, status = $2, confirmed_at = $3, updated_at = $3
    WHERE id = $1 AND confirmed = false
    RETURNING `+recordColumns, id, string(StatusConfirmed), at))
	if errors.Is(err, ErrNotFound) {
		existing, err := s.Get(ctx, id)
		return existing, false, err
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

func (s *Store) ListYear(ctx context.Context, year int) ([]Record, error) {
	return s.list(ctx, `
    SELECT `+recordColumns+`
    FROM payroll_records
    WHERE year = $1
    ORDER BY month, employee_id
  `, year)
}

func (s *Store) ListEmployee(ctx context.Context, employeeID string) ([]Record, error) {
	return s.list(ctx, `
    SELECT `+recordColumns+`
    FROM payroll_records
    WHERE employee_id = $1
    ORDER BY year, month
  `, employeeID)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]Record, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) missOrConfirmed(ctx context.Context, id string) error {
	var confirmed bool
	err := s.DB.QueryRow(ctx, `SELECT confirmed FROM payroll_records WHERE id = $1`, id).Scan(&confirmed)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if confirmed {
		return ErrRecordConfirmed
	}
	return ErrNotFound
}
