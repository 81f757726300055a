package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpay/internal/domain/apperr"
	"hrpay/internal/domain/attendance"
	"hrpay/internal/store/memory"
)

func TestServiceRecordConfirmAndList(t *testing.T) {
	svc := attendance.NewService(memory.NewAttendanceStore())
	ctx := context.Background()

	first, err := svc.Record(ctx, attendance.RecordInput{
		EmployeeID: "emp-1", Date: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		ClockIn: "09:00", ClockOut: "23:00", BreakMinutes: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.WorkTypeNormal, first.WorkType)
	assert.Equal(t, 780, first.WorkMinutes)

	second, err := svc.Record(ctx, attendance.RecordInput{
		EmployeeID: "emp-1", Date: time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC),
		ClockIn: "10:00", ClockOut: "20:00", BreakMinutes: 60, WorkType: attendance.WorkTypeHoliday,
	})
	require.NoError(t, err)

	_, err = svc.Record(ctx, attendance.RecordInput{
		EmployeeID: "emp-1", Date: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
		ClockIn: "09:00", ClockOut: "18:00",
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)

	_, err = svc.Confirm(ctx, first.ID)
	require.NoError(t, err)

	confirmed, err := svc.ConfirmedMonth(ctx, "emp-1", 2024, time.May)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, first.ID, confirmed[0].ID)

	amended, err := svc.Amend(ctx, second.ID, "10:00", "22:00", 60)
	require.NoError(t, err)
	assert.Equal(t, 660, amended.WorkMinutes)

	_, err = svc.Amend(ctx, first.ID, "09:00", "18:00", 60)
	assert.ErrorIs(t, err, attendance.ErrRecordConfirmed)
	assert.True(t, apperr.IsConsistency(err))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), attendance.ErrRecordConfirmed)
	require.NoError(t, svc.Delete(ctx, second.ID))
}

func TestServiceRejectsMalformedPunches(t *testing.T) {
	svc := attendance.NewService(memory.NewAttendanceStore())
	_, err := svc.Record(context.Background(), attendance.RecordInput{
		EmployeeID: "emp-1", Date: time.Now(), ClockIn: "9:00", ClockOut: "18:00",
	})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Amend(context.Background(), "missing", "09:00", "18:00", 0)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsConsistency(err))
}
