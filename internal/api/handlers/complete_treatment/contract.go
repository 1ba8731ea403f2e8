package complete_treatment

import (
	"context"

	completeTreatment "github.com/avelsk/NSD-SchedulingService/internal/usecase/complete_treatment"
)

type CompleteTreatmentUseCase interface {
	Execute(ctx context.Context, req *completeTreatment.Request) (*completeTreatment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
