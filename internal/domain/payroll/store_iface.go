package payroll

import (
	"context"
	"time"
)

// StoreAPI persists payroll records. Create must reject a second record for
// the same (employee, year, month) atomically. Update and Delete must apply
// the confirmed check and the mutation in a single statement. Confirm reports
// whether this call performed the transition.
type StoreAPI interface {
	Create(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	Find(ctx context.Context, employeeID string, year int, month time.Month) (Record, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string, at time.Time) (Record, bool, error)
	ListYear(ctx context.Context, year int) ([]Record, error)
	ListEmployee(ctx context.Context, employeeID string) ([]Record, error)
}
