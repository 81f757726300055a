package attendance

import (
	"context"
	"time"
)

// StoreAPI persists attendance records. Implementations must reject Save and
// Delete on a confirmed record in the same statement that mutates it.
type StoreAPI interface {
	Save(ctx context.Context, record Record) error
	Get(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	Confirm(ctx context.Context, id string, at time.Time) (Record, error)
	ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]Record, error)
}
