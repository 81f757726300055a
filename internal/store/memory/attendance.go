package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"hrpay/internal/domain/attendance"
)

type AttendanceStore struct {
	mu      sync.Mutex
	records map[string]attendance.Record
}

func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{records: make(map[string]attendance.Record)}
}

func (s *AttendanceStore) Save(_ context.Context, record attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.records[record.ID]; ok {
		if current.Confirmed {
			return attendance.ErrRecordConfirmed
		}
		record.Confirmed, record.ConfirmedAt = false, nil
		s.records[record.ID] = record
		return nil
	}
	for _, other := range s.records {
		if other.EmployeeID == record.EmployeeID && other.Date.Equal(record.Date) {
			return attendance.ErrDuplicateRecord
		}
	}
	s.records[record.ID] = record
	return nil
}

func (s *AttendanceStore) Get(_ context.Context, id string) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (s *AttendanceStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if record.Confirmed {
		return attendance.ErrRecordConfirmed
	}
	delete(s.records, id)
	return nil
}

func (s *AttendanceStore) Confirm(_ context.Context, id string, at time.Time) (attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	record.Confirm(at)
	s.records[id] = record
	return record, nil
}

func (s *AttendanceStore) ListMonth(_ context.Context, employeeID string, year int, month time.Month) ([]attendance.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var records []attendance.Record
	for _, record := range s.records {
		if record.EmployeeID == employeeID && record.Date.Year() == year && record.Date.Month() == month {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}
