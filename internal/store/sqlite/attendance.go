package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"

	"hrpay/internal/domain/attendance"
)

const dateLayout = time.DateOnly

type AttendanceStore struct {
	db *sql.DB
}

const attendanceColumns = `id, employee_id, work_date, clock_in, clock_out, break_minutes, work_type,
	work_minutes, overtime_minutes, night_work_minutes, confirmed, confirmed_at`

func scanAttendance(row rowScanner) (attendance.Record, error) {
	var (
		record      attendance.Record
		workDate    string
		workType    string
		confirmedAt sql.NullString
	)
	if err := row.Scan(&record.ID, &record.EmployeeID, &workDate, &record.ClockIn, &record.ClockOut, &record.BreakMinutes, &workType,
		&record.WorkMinutes, &record.OvertimeMinutes, &record.NightWorkMinutes, &record.Confirmed, &confirmedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}
	date, err := time.Parse(dateLayout, workDate)
	if err != nil {
		return attendance.Record{}, err
	}
	record.Date = date
	record.WorkType = attendance.WorkType(workType)
	if record.ConfirmedAt, err = parseTimePtr(confirmedAt); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

func (s *AttendanceStore) Save(ctx context.Context, record attendance.Record) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO attendance_records (id, employee_id, work_date, clock_in, clock_out, break_minutes, work_type,
			work_minutes, overtime_minutes, night_work_minutes, confirmed, confirmed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET clock_in = excluded.clock_in,
			clock_out = excluded.clock_out,
			break_minutes = excluded.break_minutes,
			work_type = excluded.work_type,
			work_minutes = excluded.work_minutes,
			overtime_minutes = excluded.overtime_minutes,
			night_work_minutes = excluded.night_work_minutes
		WHERE attendance_records.confirmed = 0
	`, record.ID, record.EmployeeID, record.Date.Format(dateLayout), record.ClockIn, record.ClockOut, record.BreakMinutes, string(record.WorkType),
		record.WorkMinutes, record.OvertimeMinutes, record.NightWorkMinutes, record.Confirmed, formatTimePtr(record.ConfirmedAt))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return attendance.ErrDuplicateRecord
		}
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return attendance.ErrRecordConfirmed
	}
	return nil
}

func (s *AttendanceStore) Get(ctx context.Context, id string) (attendance.Record, error) {
	return scanAttendance(s.db.QueryRowContext(ctx, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id = ?`, id))
}

func (s *AttendanceStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = ? AND confirmed = 0`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n > 0 {
		return nil
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return attendance.ErrRecordConfirmed
}

func (s *AttendanceStore) Confirm(ctx context.Context, id string, at time.Time) (attendance.Record, error) {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE attendance_records SET confirmed = 1, confirmed_at = ?
		WHERE id = ? AND confirmed = 0
	`, formatTime(at), id); err != nil {
		return attendance.Record{}, err
	}
	return s.Get(ctx, id)
}

func (s *AttendanceStore) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance_records
		WHERE employee_id = ? AND work_date >= ? AND work_date < ?
		ORDER BY work_date
	`, employeeID, start.Format(dateLayout), start.AddDate(0, 1, 0).Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
