package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrpay/internal/platform/querier"
)

const uniqueViolation = "23505"

// Store is the Postgres implementation of StoreAPI.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const recordColumns = `id, employee_id, work_date, clock_in, clock_out, break_minutes, work_type,
  work_minutes, overtime_minutes, night_work_minutes, confirmed, confirmed_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var record Record
	var workType string
	if err := row.Scan(&record.ID, &record.EmployeeID, &record.Date, &record.ClockIn, &record.ClockOut, &record.BreakMinutes, &workType,
		&record.WorkMinutes, &record.OvertimeMinutes, &record.NightWorkMinutes, &record.Confirmed, &record.ConfirmedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrRecordNotFound
		}
		return Record{}, err
	}
	record.WorkType = WorkType(workType)
	return record, nil
}

// Save inserts or rewrites a record. The rewrite only applies while the
// stored row is unconfirmed.
func (s *Store) Save(ctx context.Context, record Record) error {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_records (id, employee_id, work_date, clock_in, clock_out, break_minutes, work_type,
      work_minutes, overtime_minutes, night_work_minutes, confirmed, confirmed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    ON CONFLICT (id) DO UPDATE
    SET clock_in = EXCLUDED.clock_in,
        clock_out = EXCLUDED.clock_out,
        break_minutes = EXCLUDED.break_minutes,
        work_type = EXCLUDED.work_type,
        work_minutes = EXCLUDED.work_minutes,
        overtime_minutes = EXCLUDED.overtime_minutes,
        night_work_minutes = EXCLUDED.night_work_minutes
    WHERE attendance_records.confirmed = false
  `, record.ID, record.EmployeeID, record.Date, record.ClockIn, record.ClockOut, record.BreakMinutes, string(record.WorkType),
		record.WorkMinutes, record.OvertimeMinutes, record.NightWorkMinutes, record.Confirmed, record.ConfirmedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateRecord
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordConfirmed
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, `SELECT `+recordColumns+` FROM attendance_records WHERE id = $1`, id))
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1 AND confirmed = false`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return ErrRecordConfirmed
}

func (s *Store) Confirm(ctx context.Context, id string, at time.Time) (Record, error) {
	record, err := scanRecord(s.DB.QueryRow(ctx, `
    UPDATE attendance_records
    SET confirmed = true, confirmed_at = $2
    WHERE id = $1 AND confirmed = false
    RETURNING `+recordColumns, id, at))
	if errors.Is(err, ErrRecordNotFound) {
		return s.Get(ctx, id)
	}
	return record, err
}

func (s *Store) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Record, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.DB.Query(ctx, `
    SELECT `+recordColumns+`
    FROM attendance_records
    WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
    ORDER BY work_date
  `, employeeID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
