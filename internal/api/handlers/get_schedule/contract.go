package get_schedule

import (
	"context"

	"github.com/avelsk/NSD-SchedulingService/internal/service/appointments"
	"github.com/avelsk/NSD-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetSchedule(ctx context.Context, rng *appointments.ScheduleRange) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
