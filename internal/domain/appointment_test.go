package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   AppointmentStatus
		to     AppointmentStatus
		want   bool
	}{
		{"SCHEDULED -> CONFIRMED", StatusScheduled, StatusConfirmed, true},
		{"SCHEDULED -> CANCELLED", StatusScheduled, StatusCancelled, true},
		{"SCHEDULED -> COMPLETED", StatusScheduled, StatusCompleted, true},
		{"CONFIRMED -> CANCELLED", StatusConfirmed, StatusCancelled, true},
		{"CONFIRMED -> COMPLETED", StatusConfirmed, StatusCompleted, true},
		{"CONFIRMED -> SCHEDULED запрещен", StatusConfirmed, StatusScheduled, false},
		{"CONFIRMED -> CONFIRMED запрещен", StatusConfirmed, StatusConfirmed, false},
		{"CANCELLED терминальный", StatusCancelled, StatusScheduled, false},
		{"CANCELLED -> COMPLETED запрещен", StatusCancelled, StatusCompleted, false},
		{"COMPLETED терминальный", StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, a.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusScheduled}).IsActive())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).IsActive())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsActive())
	// Отмененная запись не занимает время мастера
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
}

func TestParseAppointmentStatus(t *testing.T) {
	got, ok := ParseAppointmentStatus("CONFIRMED")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, got)

	_, ok = ParseAppointmentStatus("confirmed")
	assert.False(t, ok)

	_, ok = ParseAppointmentStatus("UNKNOWN")
	assert.False(t, ok)
}
