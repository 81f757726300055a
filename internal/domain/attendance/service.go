package attendance

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

type RecordInput struct {
	EmployeeID   string
	Date         time.Time
	ClockIn      string
	ClockOut     string
	BreakMinutes int
	WorkType     WorkType
}

func (s *Service) Record(ctx context.Context, input RecordInput) (Record, error) {
	record, err := NewRecord(input.EmployeeID, input.Date, input.ClockIn, input.ClockOut, input.BreakMinutes, input.WorkType)
	if err != nil {
		return Record{}, err
	}
	if err := s.store.Save(ctx, record); err != nil {
		return Record{}, fmt.Errorf("save attendance: %w", err)
	}
	return record, nil
}

func (s *Service) Amend(ctx context.Context, id, clockIn, clockOut string, breakMinutes int) (Record, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if err := record.Amend(clockIn, clockOut, breakMinutes); err != nil {
		return Record{}, err
	}
	if err := s.store.Save(ctx, record); err != nil {
		return Record{}, fmt.Errorf("save attendance: %w", err)
	}
	return record, nil
}

func (s *Service) Confirm(ctx context.Context, id string) (Record, error) {
	return s.store.Confirm(ctx, id, s.now())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ConfirmedMonth returns only the confirmed records of a month, which is
// what payroll generation consumes.
func (s *Service) ConfirmedMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Record, error) {
	records, err := s.store.ListMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	confirmed := records[:0]
	for _, record := range records {
		if record.Confirmed {
			confirmed = append(confirmed, record)
		}
	}
	return confirmed, nil
}
