// Package audit keeps a trail of payroll state changes.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"hrpay/internal/platform/querier"
)

const (
	ActionGenerate    = "payroll.generate"
	ActionRecalculate = "payroll.recalculate"
	ActionConfirm     = "payroll.confirm"
	ActionDelete      = "payroll.delete"

	EntityPayroll = "payroll"
)

type Event struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	EmployeeID string          `json:"employeeId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
}

type Filter struct {
	Action     string
	EntityType string
	EmployeeID string
}

// NewEvent marshals before and after; either may be nil.
func NewEvent(action, entityType, entityID, employeeID string, before, after any) (Event, error) {
	evt := Event{Action: action, EntityType: entityType, EntityID: entityID, EmployeeID: employeeID}
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return Event{}, err
		}
		evt.Before = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return Event{}, err
		}
		evt.After = payload
	}
	return evt, nil
}

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, evt Event) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (action, entity_type, entity_id, employee_id, before_json, after_json)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, evt.Action, evt.EntityType, evt.EntityID, evt.EmployeeID, []byte(evt.Before), []byte(evt.After))
	return err
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	selectCols := "id::text, action, entity_type, entity_id, employee_id, created_at"
	if includeDetails {
		selectCols += ", before_json, after_json"
	}
	query, args := buildBaseQuery("SELECT "+selectCols, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			evt           Event
			before, after []byte
		)
		dest := []any{&evt.ID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.EmployeeID, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &before, &after)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		evt.Before, evt.After = before, after
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	var args []any
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	return query, args
}

// Log writes events to the structured log when no database is configured.
type Log struct{}

func (Log) Record(_ context.Context, evt Event) error {
	slog.Info("audit", "action", evt.Action, "entityType", evt.EntityType, "entityId", evt.EntityID, "employeeId", evt.EmployeeID)
	return nil
}
