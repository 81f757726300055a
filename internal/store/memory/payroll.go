// Package memory holds mutex-guarded StoreAPI implementations for tests and
// one-shot CLI runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrpay/internal/domain/payroll"
)

type periodKey struct {
	employeeID string
	year       int
	month      time.Month
}

type PayrollStore struct {
	mu       sync.Mutex
	byID     map[string]payroll.Record
	byPeriod map[periodKey]string
}

func NewPayrollStore() *PayrollStore {
	return &PayrollStore{
		byID:     make(map[string]payroll.Record),
		byPeriod: make(map[periodKey]string),
	}
}

func keyOf(r payroll.Record) periodKey {
	return periodKey{employeeID: r.EmployeeID, year: r.Year, month: r.Month}
}

func (s *PayrollStore) Create(_ context.Context, record payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byPeriod[keyOf(record)]; exists {
		return payroll.ErrDuplicatePayroll
	}
	s.byID[record.ID] = record
	s.byPeriod[keyOf(record)] = record.ID
	return nil
}

func (s *PayrollStore) Get(_ context.Context, id string) (payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok {
		return payroll.Record{}, payroll.ErrNotFound
	}
	return record, nil
}

func (s *PayrollStore) Find(_ context.Context, employeeID string, year int, month time.Month) (payroll.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byPeriod[periodKey{employeeID: employeeID, year: year, month: month}]
	if !ok {
		return payroll.Record{}, payroll.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *PayrollStore) Update(_ context.Context, record payroll.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[record.ID]
	if !ok {
		return payroll.ErrNotFound
	}
	if current.Confirmed() {
		return payroll.ErrRecordConfirmed
	}
	record.EmployeeID, record.Year, record.Month = current.EmployeeID, current.Year, current.Month
	record.Status, record.ConfirmedAt = current.Status, current.ConfirmedAt
	record.CreatedAt = current.CreatedAt
	record.UpdatedAt = time.Now().UTC()
	s.byID[record.ID] = record
	return nil
}

func (s *PayrollStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[id]
	if !ok {
		return payroll.ErrNotFound
	}
	if current.Confirmed() {
		return payroll.ErrRecordConfirmed
	}
	delete(s.byID, id)
	delete(s.byPeriod, keyOf(current))
	return nil
}

func (s *PayrollStore) Confirm(_ context.Context, id string, at time.Time) (payroll.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok {
		return payroll.Record{}, false, payroll.ErrNotFound
	}
	if record.Confirmed() {
		return record, false, nil
	}
	record.Status = payroll.StatusConfirmed
	record.ConfirmedAt = &at
	record.UpdatedAt = at
	s.byID[id] = record
	return record, true, nil
}

func (s *PayrollStore) ListYear(_ context.Context, year int) ([]payroll.Record, error) {
	return s.filter(func(r payroll.Record) bool { return r.Year == year }), nil
}

func (s *PayrollStore) ListEmployee(_ context.Context, employeeID string) ([]payroll.Record, error) {
	return s.filter(func(r payroll.Record) bool { return r.EmployeeID == employeeID }), nil
}

func (s *PayrollStore) filter(keep func(payroll.Record) bool) []payroll.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []payroll.Record
	for _, record := range s.byID {
		if keep(record) {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.EmployeeID < b.EmployeeID
	})
	return records
}
