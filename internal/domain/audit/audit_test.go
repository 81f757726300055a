package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventMarshalsSnapshots(t *testing.T) {
	evt, err := NewEvent(ActionConfirm, EntityPayroll, "p-1", "emp-1", map[string]string{"status": "DRAFT"}, map[string]string{"status": "CONFIRMED"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"DRAFT"}`, string(evt.Before))
	assert.JSONEq(t, `{"status":"CONFIRMED"}`, string(evt.After))

	evt, err = NewEvent(ActionDelete, EntityPayroll, "p-1", "emp-1", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, evt.Before)
	assert.Nil(t, evt.After)
}

func TestBuildBaseQueryNumbersFilters(t *testing.T) {
	query, args := buildBaseQuery("SELECT COUNT(1)", Filter{Action: ActionConfirm, EmployeeID: "emp-1"})
	assert.Equal(t, "SELECT COUNT(1) FROM audit_events WHERE 1=1 AND action = $1 AND employee_id = $2", query)
	assert.Equal(t, []any{ActionConfirm, "emp-1"}, args)

	query, args = buildBaseQuery("SELECT COUNT(1)", Filter{})
	assert.Equal(t, "SELECT COUNT(1) FROM audit_events WHERE 1=1", query)
	assert.Empty(t, args)
}

func TestLogRecorderNeverFails(t *testing.T) {
	evt, err := NewEvent(ActionGenerate, EntityPayroll, "p-1", "emp-1", nil, map[string]int{"net": 1})
	require.NoError(t, err)
	assert.NoError(t, Log{}.Record(context.Background(), evt))
}
