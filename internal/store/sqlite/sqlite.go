// Package sqlite persists payroll and attendance records in a SQLite file.
// It backs the CLI when no DATABASE_URL is configured. The confirmed guard
// is part of every UPDATE and DELETE statement, as in the Postgres stores.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"hrpay/internal/domain/payroll"
)

const timeLayout = time.RFC3339Nano

type DB struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema. Use
// ":memory:" for a throwaway database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	store := &DB{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Payroll(sealer payroll.Sealer) *PayrollStore {
	return &PayrollStore{db: d.db, sealer: sealer}
}

func (d *DB) Attendance() *AttendanceStore {
	return &AttendanceStore{db: d.db}
}

func (d *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payroll_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		status TEXT NOT NULL,
		confirmed INTEGER NOT NULL DEFAULT 0,
		snapshot BLOB NOT NULL,
		total_gross INTEGER NOT NULL,
		total_taxable INTEGER NOT NULL,
		income_tax INTEGER NOT NULL,
		local_income_tax INTEGER NOT NULL,
		net_salary INTEGER NOT NULL,
		confirmed_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (employee_id, year, month)
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_records_year
		ON payroll_records(year, month);

	CREATE TABLE IF NOT EXISTS attendance_records (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		work_date TEXT NOT NULL,
		clock_in TEXT NOT NULL,
		clock_out TEXT NOT NULL,
		break_minutes INTEGER NOT NULL,
		work_type TEXT NOT NULL,
		work_minutes INTEGER NOT NULL,
		overtime_minutes INTEGER NOT NULL,
		night_work_minutes INTEGER NOT NULL,
		confirmed INTEGER NOT NULL DEFAULT 0,
		confirmed_at TEXT,
		UNIQUE (employee_id, work_date)
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(timeLayout, value)
}

func parseTimePtr(value sql.NullString) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	t, err := parseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
